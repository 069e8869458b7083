package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the settings. BaseDir anchors a relative LocalPath; empty
// means the executable's directory.
type Config struct {
	RemoteURL     string `yaml:"remote_url" env:"GRACECLONE_REMOTE_URL,overwrite"`
	LocalPath     string `yaml:"local_path" env:"GRACECLONE_LOCAL_PATH,overwrite"`
	DefaultBranch string `yaml:"default_branch" env:"GRACECLONE_DEFAULT_BRANCH,overwrite"`
	GraceDays     int    `yaml:"grace_period_days" env:"GRACECLONE_GRACE_DAYS,overwrite"`
	CheckoutMode  string `yaml:"checkout_backend" env:"GRACECLONE_CHECKOUT,overwrite"`
	LogLevel      string `yaml:"log_level" env:"GRACECLONE_LOG_LEVEL,overwrite"`
	BaseDir       string `yaml:"base_dir,omitempty" env:"GRACECLONE_BASE_DIR,overwrite"`
}

func DefaultConfig() *Config {
	return &Config{
		RemoteURL:     DefaultRemoteURL,
		LocalPath:     DefaultLocalPath,
		DefaultBranch: DefaultBranch,
		GraceDays:     DefaultGracePeriodDays,
		CheckoutMode:  DefaultCheckoutMode,
		LogLevel:      "info",
	}
}

// LoadConfig reads path over the defaults. An empty path or a missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// ApplyEnv overlays GRACECLONE_* variables found by lookuper. A nil lookuper
// reads the process environment.
func ApplyEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("process env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.RemoteURL == "":
		return fmt.Errorf("%w: remote_url cannot be empty", ErrInvalidConfig)
	case c.LocalPath == "":
		return fmt.Errorf("%w: local_path cannot be empty", ErrInvalidConfig)
	case c.DefaultBranch == "":
		return fmt.Errorf("%w: default_branch cannot be empty", ErrInvalidConfig)
	case c.GraceDays <= 0:
		return fmt.Errorf("%w: grace_period_days must be positive, got %d", ErrInvalidConfig, c.GraceDays)
	case c.CheckoutMode != DefaultCheckoutMode && c.CheckoutMode != NativeCheckoutMode:
		return fmt.Errorf("%w: checkout_backend must be %q or %q, got %q",
			ErrInvalidConfig, DefaultCheckoutMode, NativeCheckoutMode, c.CheckoutMode)
	}
	return nil
}
