package dispatch

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/ctxlog"
)

func TestMiddleware_Order(t *testing.T) {
	t.Parallel()

	var trace []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
				trace = append(trace, name+":before")
				v, err := next.Run(ctx, cfg, args)
				trace = append(trace, name+":after")
				return v, err
			})
		}
	}

	d := New()
	require.NoError(t, d.Use(mark("outer"), mark("inner")))
	require.NoError(t, d.Register(ActionSpec{
		Name: "act",
		Handler: HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			trace = append(trace, "handler")
			return nil, nil
		}),
	}))

	d.Dispatch(context.Background(), "act", emptyConfig(t), nil)

	require.Equal(t, []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}, trace)
}

func TestWithLogging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	d := New()
	require.NoError(t, d.Use(WithLogging(), WithArgsDebug()))
	require.NoError(t, d.Register(ActionSpec{Name: "ok", Handler: okHandler("done")}))

	res := d.Dispatch(ctx, "ok", emptyConfig(t), []string{"x"})

	require.True(t, res.OK())
	out := logs.String()
	require.Contains(t, out, "Running action...")
	require.Contains(t, out, "Action arguments")
	require.Contains(t, out, "Action finished")
	require.Contains(t, out, "invocation="+res.ID.String())
}
