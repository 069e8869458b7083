package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
)

type State string

const (
	StateStart               State = "START"
	StateDependenciesChecked State = "DEPENDENCIES_CHECKED"
	StateRepoSynced          State = "REPO_SYNCED"
	StateTargetSelected      State = "TARGET_SELECTED"
	StateCheckedOut          State = "CHECKED_OUT"
	StateLeftAsIs            State = "LEFT_AS_IS"
)

type RunResult struct {
	State    State
	Location RepositoryLocation
	Cloned   bool
	Remotes  []string
	Target   CheckoutTarget
	Head     *Head
}

type PlanResult struct {
	Location RepositoryLocation
	Target   CheckoutTarget
	Head     *Head
}

// ReleaseGraceCloner keeps a working copy of one remote and moves it to the
// newest release tag while that tag is inside the grace period.
type ReleaseGraceCloner struct {
	location RepositoryLocation
	deps     *CheckDependenciesUseCase
	sync     *SyncRepositoryUseCase
	tags     *ListTagsUseCase
	target   *SelectTargetUseCase
	apply    *ApplyTargetUseCase
}

func NewReleaseGraceCloner(
	location RepositoryLocation,
	checker *DependencyChecker,
	policy GracePeriodPolicy,
	checkouter Checkouter,
) *ReleaseGraceCloner {
	return &ReleaseGraceCloner{
		location: location,
		deps:     NewCheckDependenciesUseCase(checker),
		sync:     NewSyncRepositoryUseCase(),
		tags:     NewListTagsUseCase(),
		target:   NewSelectTargetUseCase(policy),
		apply:    NewApplyTargetUseCase(checkouter),
	}
}

// NewReleaseGraceClonerFromConfig wires a cloner from validated config. A nil
// checker probes the real environment.
func NewReleaseGraceClonerFromConfig(cfg *Config, resolver *LocationResolver, checker *DependencyChecker, now func() time.Time) (*ReleaseGraceCloner, error) {
	loc, err := resolver.Resolve(cfg)
	if err != nil {
		return nil, err
	}
	checkouter, err := NewCheckouter(cfg.CheckoutMode)
	if err != nil {
		return nil, err
	}
	if checker == nil {
		checker = NewDependencyChecker()
	}
	return NewReleaseGraceCloner(
		loc,
		checker,
		NewGracePeriodPolicy(cfg.GraceDays, now),
		checkouter,
	), nil
}

func (c *ReleaseGraceCloner) Location() RepositoryLocation {
	return c.location
}

func (c *ReleaseGraceCloner) CheckDependencies(ctx context.Context) ([]Capability, error) {
	return c.deps.Execute(ctx)
}

// Run makes one pass: check dependencies, sync, select, apply. Any failure
// stops the pass; nothing already written to disk is undone.
func (c *ReleaseGraceCloner) Run(ctx context.Context) (*RunResult, error) {
	res := &RunResult{State: StateStart, Location: c.location}
	log := clog.FromContext(ctx).With("path", c.location.LocalPath)

	if _, err := c.deps.Execute(ctx); err != nil {
		return res, err
	}
	res.State = StateDependenciesChecked
	log.With("state", res.State).Debug("Dependencies available")

	synced, err := c.sync.Execute(ctx, c.location)
	if err != nil {
		return res, err
	}
	res.State = StateRepoSynced
	res.Cloned = synced.Cloned
	res.Remotes = synced.Remotes
	log.With("state", res.State).With("cloned", synced.Cloned).Info("Repository synced")

	target, err := c.target.Execute(ctx, synced.Repo)
	if err != nil {
		return res, fmt.Errorf("select checkout target: %w", err)
	}
	res.State = StateTargetSelected
	res.Target = target

	applied, err := c.apply.Execute(ctx, synced.Repo, target)
	if err != nil {
		return res, err
	}
	res.State = applied.State
	res.Head = applied.Head
	log.With("state", res.State).With("head", applied.Head.Hash).Info("Done")

	return res, nil
}

// Plan opens the existing working copy without fetching and reports the
// target a run would pick right now.
func (c *ReleaseGraceCloner) Plan(ctx context.Context) (*PlanResult, error) {
	repo, err := OpenRepository(c.location.LocalPath)
	if err != nil {
		return nil, err
	}

	target, err := c.target.Execute(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("select checkout target: %w", err)
	}

	head, err := repo.Head(ctx)
	if err != nil {
		return nil, err
	}

	return &PlanResult{Location: c.location, Target: target, Head: head}, nil
}

// Tags lists the working copy's tags newest first without fetching.
func (c *ReleaseGraceCloner) Tags(ctx context.Context) ([]Tag, error) {
	repo, err := OpenRepository(c.location.LocalPath)
	if err != nil {
		return nil, err
	}
	return c.tags.Execute(ctx, repo)
}
