package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"
)

// Use case input/output DTOs

type SyncOutput struct {
	Repo    *GitRepository
	Cloned  bool
	Remotes []string // remotes fetched, empty after a fresh clone
}

type ApplyOutput struct {
	State State
	Head  *Head
}

// Use cases

type CheckDependenciesUseCase struct {
	checker *DependencyChecker
}

func NewCheckDependenciesUseCase(checker *DependencyChecker) *CheckDependenciesUseCase {
	return &CheckDependenciesUseCase{checker: checker}
}

func (uc *CheckDependenciesUseCase) Execute(ctx context.Context) ([]Capability, error) {
	caps := uc.checker.Check(ctx)
	return caps, RequireAll(caps)
}

type SyncRepositoryUseCase struct {
	clone func(context.Context, RepositoryLocation) (*GitRepository, error)
	open  func(string) (*GitRepository, error)
}

func NewSyncRepositoryUseCase() *SyncRepositoryUseCase {
	return &SyncRepositoryUseCase{
		clone: CloneRepository,
		open:  OpenRepository,
	}
}

// Execute clones loc when its local path is absent, otherwise opens it and
// fetches every remote.
func (uc *SyncRepositoryUseCase) Execute(ctx context.Context, loc RepositoryLocation) (*SyncOutput, error) {
	_, err := os.Stat(loc.LocalPath)
	if os.IsNotExist(err) {
		repo, err := uc.clone(ctx, loc)
		if err != nil {
			return nil, err
		}
		return &SyncOutput{Repo: repo, Cloned: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrSyncFailure, loc.LocalPath, err)
	}

	repo, err := uc.open(loc.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyncFailure, err)
	}

	remotes, err := repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	clog.FromContext(ctx).With("remotes", remotes).Info("Fetched remotes")

	return &SyncOutput{Repo: repo, Remotes: remotes}, nil
}

type ListTagsUseCase struct{}

func NewListTagsUseCase() *ListTagsUseCase {
	return &ListTagsUseCase{}
}

// Execute returns the tags newest first.
func (uc *ListTagsUseCase) Execute(ctx context.Context, repo TagRepository) ([]Tag, error) {
	tags, err := repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	SortTags(tags)
	return tags, nil
}

type SelectTargetUseCase struct {
	policy GracePeriodPolicy
}

func NewSelectTargetUseCase(policy GracePeriodPolicy) *SelectTargetUseCase {
	return &SelectTargetUseCase{policy: policy}
}

func (uc *SelectTargetUseCase) Execute(ctx context.Context, repo TagRepository) (CheckoutTarget, error) {
	tags, err := repo.Tags(ctx)
	if err != nil {
		return CheckoutTarget{}, err
	}

	target, err := uc.policy.Select(tags)
	if err != nil {
		return CheckoutTarget{}, err
	}

	clog.FromContext(ctx).
		With("tag", target.Tag.Name).
		With("age_days", target.Age).
		With("grace_days", uc.policy.Days).
		Infof("Selected target: %s", target)
	return target, nil
}

type ApplyTargetUseCase struct {
	checkouter Checkouter
}

func NewApplyTargetUseCase(checkouter Checkouter) *ApplyTargetUseCase {
	return &ApplyTargetUseCase{checkouter: checkouter}
}

// Execute checks out a tag target and leaves the working copy alone for a
// no-op target.
func (uc *ApplyTargetUseCase) Execute(ctx context.Context, repo *GitRepository, target CheckoutTarget) (*ApplyOutput, error) {
	state := StateLeftAsIs
	if target.IsCheckout() {
		if err := uc.checkouter.Checkout(ctx, repo.Path(), target.Tag); err != nil {
			return nil, err
		}
		state = StateCheckedOut
	}

	// Reopen so HEAD reflects changes made outside go-git.
	reopened, err := OpenRepository(repo.Path())
	if err != nil {
		return nil, err
	}
	head, err := reopened.Head(ctx)
	if err != nil {
		return nil, err
	}

	return &ApplyOutput{State: state, Head: head}, nil
}
