// Package ctxlog carries a slog.Logger through context.Context so action
// handlers and middleware log with the invocation's attributes.
package ctxlog

import (
	"context"
	"log/slog"

	"github.com/daryltucker/fubard/internal/output"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context, falling back to
// output.Logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return output.Logger
}
