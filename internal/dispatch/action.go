/*
PURPOSE:
  Types an application uses to declare actions: the Handler contract, its
  middleware shape and the ActionSpec registered with a Dispatcher.

IMPLEMENTATION RULES:
  - Handlers write their own output; the returned value is for callers/tests.
  - Return *model.Error (or wrap one) to choose the failure kind.
*/

package dispatch

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/daryltucker/fubard/internal/config"
)

// Handler runs one action against the resolved configuration and the
// positional arguments that followed the action name.
type Handler interface {
	Run(ctx context.Context, cfg *config.Resolved, args []string) (any, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, cfg *config.Resolved, args []string) (any, error)

// Run calls f.
func (f HandlerFunc) Run(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
	return f(ctx, cfg, args)
}

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// ActionSpec is one registry entry.
type ActionSpec struct {
	// Name is the subcommand token.
	Name string
	// Summary is the one-line help text.
	Summary string
	// Usage describes the positional arguments, e.g. "<target> [files...]".
	Usage   string
	Handler Handler
	// Flags declares the action's options. Flags the user sets become the
	// highest-priority configuration source for that invocation.
	Flags func(fs *pflag.FlagSet)
}

// HelpEntry is one line of help output.
type HelpEntry struct {
	Name    string
	Summary string
	Usage   string
}
