package v1

import (
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	remoteURL  string
	localPath  string
	baseDir    string
	graceDays  int
	checkout   string
	configPath string
	now        func() time.Time
	lookuper   envconfig.Lookuper
}

// WithRemoteURL sets the repository to clone.
func WithRemoteURL(url string) Option {
	return func(c *clientConfig) {
		c.remoteURL = url
	}
}

// WithLocalPath sets where the working copy lives. Relative paths are
// resolved against the base directory.
func WithLocalPath(path string) Option {
	return func(c *clientConfig) {
		c.localPath = path
	}
}

// WithBaseDir sets the directory relative local paths resolve against.
// Defaults to the directory of the running executable.
func WithBaseDir(dir string) Option {
	return func(c *clientConfig) {
		c.baseDir = dir
	}
}

// WithGracePeriodDays sets how many whole days a release stays preferred.
func WithGracePeriodDays(days int) Option {
	return func(c *clientConfig) {
		c.graceDays = days
	}
}

// WithCheckoutBackend selects "cli" or "native" checkout.
func WithCheckoutBackend(backend string) Option {
	return func(c *clientConfig) {
		c.checkout = backend
	}
}

// WithConfigFile loads settings from a YAML file before other options apply.
func WithConfigFile(path string) Option {
	return func(c *clientConfig) {
		c.configPath = path
	}
}

// WithClock overrides the time source used for the grace period.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.now = now
	}
}

// WithLookuper replaces the process environment as the source of
// GRACECLONE_* overrides.
func WithLookuper(l envconfig.Lookuper) Option {
	return func(c *clientConfig) {
		c.lookuper = l
	}
}
