/*
PURPOSE:
  Cross-cutting wrappers applied to every action when the Dispatcher seals.

USAGE:
  d.Use(dispatch.WithLogging(), dispatch.WithArgsDebug())
*/

package dispatch

import (
	"context"
	"time"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/ctxlog"
	"github.com/daryltucker/fubard/internal/model"
)

// WithLogging logs the start and outcome of every action at debug level.
func WithLogging() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			logger := ctxlog.FromContext(ctx)
			start := time.Now()
			if cfg != nil {
				logger = logger.With("config", cfg.Fingerprint())
			}
			logger.Debug("Running action...", "args", len(args))

			value, err := next.Run(ctx, cfg, args)
			if err != nil {
				logger.Debug("Action failed", "kind", model.KindOf(err).String(), "duration", time.Since(start), "error", err)
				return value, err
			}
			logger.Debug("Action finished", "duration", time.Since(start))
			return value, nil
		})
	}
}

// WithArgsDebug logs the positional arguments handed to the action.
func WithArgsDebug() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			ctxlog.FromContext(ctx).Debug("Action arguments", "args", args)
			return next.Run(ctx, cfg, args)
		})
	}
}
