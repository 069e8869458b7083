package v1

import (
	"context"

	"github.com/4thel00z/graceclone/internal"
)

// Client keeps one working copy on the newest release inside its grace
// period.
type Client struct {
	cloner *internal.ReleaseGraceCloner
}

// New creates a new Client with the given options. Settings are layered as
// defaults < config file < GRACECLONE_* environment < options, the same order
// the graceclone command uses.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	settings, err := internal.LoadConfig(cfg.configPath)
	if err != nil {
		return nil, err
	}
	if err := internal.ApplyEnv(context.Background(), settings, cfg.lookuper); err != nil {
		return nil, err
	}
	if cfg.remoteURL != "" {
		settings.RemoteURL = cfg.remoteURL
	}
	if cfg.localPath != "" {
		settings.LocalPath = cfg.localPath
	}
	if cfg.graceDays != 0 {
		settings.GraceDays = cfg.graceDays
	}
	if cfg.checkout != "" {
		settings.CheckoutMode = cfg.checkout
	}

	if cfg.baseDir != "" {
		settings.BaseDir = cfg.baseDir
	}

	cloner, err := internal.NewReleaseGraceClonerFromConfig(settings, internal.NewLocationResolver(), nil, cfg.now)
	if err != nil {
		return nil, err
	}

	return &Client{cloner: cloner}, nil
}

// Path returns the absolute path of the working copy.
func (c *Client) Path() string {
	return c.cloner.Location().LocalPath
}

// Run clones or fetches the working copy and checks out the newest tag if
// it is inside the grace period.
func (c *Client) Run(ctx context.Context) (*Result, error) {
	res, err := c.cloner.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:     res.Location.LocalPath,
		Cloned:   res.Cloned,
		Remotes:  res.Remotes,
		Target:   toTarget(res.Target),
		Head:     res.Head.Hash,
		Detached: res.Head.Detached,
	}, nil
}

// Plan reports the decision a run would make, using only local state.
func (c *Client) Plan(ctx context.Context) (Target, error) {
	plan, err := c.cloner.Plan(ctx)
	if err != nil {
		return Target{}, err
	}
	return toTarget(plan.Target), nil
}

// Tags lists the working copy's tags newest first.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := c.cloner.Tags(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTag(t))
	}
	return out, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}
