package internal

import (
	"context"
	"fmt"
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/chainguard-dev/clog"
)

const goGitModule = "github.com/go-git/go-git/v5"

type CapabilityStatus string

const (
	Available CapabilityStatus = "available"
	Missing   CapabilityStatus = "missing"
)

type Capability struct {
	Name   string
	Status CapabilityStatus
	Detail string
}

// DependencyChecker probes for the git executable and the go-git binding.
// Probes are swappable so absence can be simulated.
type DependencyChecker struct {
	LookPath  func(string) (string, error)
	BuildInfo func() (*debug.BuildInfo, bool)
}

func NewDependencyChecker() *DependencyChecker {
	return &DependencyChecker{
		LookPath:  exec.LookPath,
		BuildInfo: debug.ReadBuildInfo,
	}
}

func (c *DependencyChecker) Check(ctx context.Context) []Capability {
	caps := []Capability{c.checkExecutable(), c.checkBinding()}
	for _, cp := range caps {
		clog.FromContext(ctx).With("dependency", cp.Name).With("status", cp.Status).Debug(cp.Detail)
	}
	return caps
}

func (c *DependencyChecker) checkExecutable() Capability {
	path, err := c.LookPath("git")
	if err != nil {
		return Capability{Name: "git", Status: Missing, Detail: "program 'git' not found in PATH"}
	}
	return Capability{Name: "git", Status: Available, Detail: path}
}

func (c *DependencyChecker) checkBinding() Capability {
	info, ok := c.BuildInfo()
	if !ok {
		// Without module data the binding is still statically linked.
		return Capability{Name: "go-git", Status: Available, Detail: "linked"}
	}
	for _, dep := range info.Deps {
		if dep.Path == goGitModule {
			return Capability{Name: "go-git", Status: Available, Detail: dep.Version}
		}
	}
	return Capability{Name: "go-git", Status: Missing, Detail: "module " + goGitModule + " not linked"}
}

// RequireAll reports every missing capability in one error.
func RequireAll(caps []Capability) error {
	var missing []string
	for _, cp := range caps {
		if cp.Status == Missing {
			missing = append(missing, cp.Detail)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingDependency, strings.Join(missing, "; "))
}
