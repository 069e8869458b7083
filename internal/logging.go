package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chainguard-dev/clog"
)

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}

// WithLogger attaches a text logger writing to w at the given level.
func WithLogger(ctx context.Context, w io.Writer, level slog.Level) context.Context {
	logger := clog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return clog.WithLogger(ctx, logger)
}
