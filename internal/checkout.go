package internal

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chainguard-dev/clog"
)

// CLICheckouter runs `git checkout <tag>` in the working copy, the way a user
// would from a shell.
type CLICheckouter struct {
	GitPath string
}

func NewCLICheckouter() *CLICheckouter {
	return &CLICheckouter{GitPath: "git"}
}

func (c *CLICheckouter) Checkout(ctx context.Context, path string, tag Tag) error {
	args := []string{"-C", path, "checkout", "--quiet", tag.Name}
	clog.FromContext(ctx).With("args", args).Debug("Running git")

	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: git checkout %s: %v: %s", ErrCheckoutFailure, tag.Name, err, msg)
		}
		return fmt.Errorf("%w: git checkout %s: %w", ErrCheckoutFailure, tag.Name, err)
	}
	return nil
}

// NativeCheckouter detaches HEAD at the tag's commit through go-git.
type NativeCheckouter struct{}

func (NativeCheckouter) Checkout(ctx context.Context, path string, tag Tag) error {
	repo, err := OpenRepository(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCheckoutFailure, err)
	}
	if err := repo.CheckoutHash(ctx, tag.Hash); err != nil {
		return fmt.Errorf("%w: tag %s: %w", ErrCheckoutFailure, tag.Name, err)
	}
	return nil
}

func NewCheckouter(mode string) (Checkouter, error) {
	switch mode {
	case DefaultCheckoutMode:
		return NewCLICheckouter(), nil
	case NativeCheckoutMode:
		return NativeCheckouter{}, nil
	}
	return nil, fmt.Errorf("%w: unknown checkout backend %q", ErrInvalidConfig, mode)
}
