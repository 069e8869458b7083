package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4thel00z/graceclone/internal"
	"github.com/charmbracelet/fang"
	"github.com/sethvargo/go-envconfig"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := NewRootCmd(version, newApp())
	if err := fang.Execute(ctx, rootCmd); err != nil {
		cancel()
		os.Exit(1)
	}
}

type app struct {
	resolver *internal.LocationResolver
	checker  *internal.DependencyChecker
	lookuper envconfig.Lookuper
	now      func() time.Time
}

func newApp() *app {
	return &app{
		resolver: internal.NewLocationResolver(),
		checker:  internal.NewDependencyChecker(),
		lookuper: envconfig.OsLookuper(),
		now:      time.Now,
	}
}
