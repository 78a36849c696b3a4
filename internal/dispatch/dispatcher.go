/*
PURPOSE:
  Routes a runtime-selected action name to its handler and turns whatever the
  handler does into a Result with a kind, an exit code and a message.

REQUIREMENTS:
  User-specified:
  - Actions are registered by name; duplicate names are rejected.
  - Unknown names never run a handler.
  - Every failure becomes a stable exit code and a single-line message.

  Implementation-discovered:
  - The registry is frozen (sealed) at the first dispatch so that concurrent
    dispatches read it without locks.
  - Middleware is composed once, at seal time.
  - Handler panics are programming errors; they are recovered into
    KindInternal so the process still exits cleanly.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Depends on: internal/config (Resolved), internal/model (errors), internal/ctxlog

ERROR HANDLING:
  - Registration errors are returned (startup must abort on them).
  - Dispatch errors are captured in Result, never returned or panicked.

IMPLEMENTATION RULES:
  - No retries. No timeouts; cancellation is the caller's context.
  - Never write d.actions or d.chains after sealed is set.

USAGE:
  d := dispatch.New()
  d.MustRegister(dispatch.ActionSpec{Name: "build", Summary: "Build it", Handler: h})
  res := d.Dispatch(ctx, "build", cfg, args)
  os.Exit(res.ExitCode())

RELATED FILES:
  - internal/dispatch/result.go
  - internal/dispatch/middleware.go
*/

package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/ctxlog"
	"github.com/daryltucker/fubard/internal/model"
)

// Dispatcher owns the action registry.
//
// It starts in the Building state, where Register and Use are allowed, and
// moves irreversibly to Sealed on Seal or the first Dispatch. A sealed
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	mu         sync.Mutex
	once       sync.Once
	sealed     atomic.Bool
	actions    map[string]ActionSpec
	middleware []Middleware
	chains     map[string]Handler
}

// New creates an empty dispatcher in the Building state.
func New() *Dispatcher {
	return &Dispatcher{
		actions: make(map[string]ActionSpec),
	}
}

// Register adds an action.
func (d *Dispatcher) Register(spec ActionSpec) error {
	if spec.Name == "" {
		return model.Errorf(model.KindInternal, "cannot register action: empty name")
	}
	if spec.Handler == nil {
		return &model.Error{
			Kind:  model.KindInternal,
			Brief: fmt.Sprintf("cannot register action %q: nil handler", spec.Name),
			Key:   spec.Name,
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return &model.Error{
			Kind:  model.KindInternal,
			Brief: fmt.Sprintf("cannot register action %q: registry is sealed", spec.Name),
			Key:   spec.Name,
		}
	}
	if _, exists := d.actions[spec.Name]; exists {
		return &model.Error{
			Kind:  model.KindDuplicateAction,
			Brief: fmt.Sprintf("action %q is already registered", spec.Name),
			Key:   spec.Name,
		}
	}
	d.actions[spec.Name] = spec
	return nil
}

// MustRegister registers specs and panics on the first failure.
// Use it for static wiring at startup.
func (d *Dispatcher) MustRegister(specs ...ActionSpec) {
	for _, spec := range specs {
		if err := d.Register(spec); err != nil {
			panic(err)
		}
	}
}

// Use appends middleware. The first middleware added is the outermost.
func (d *Dispatcher) Use(mws ...Middleware) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed.Load() {
		return model.Errorf(model.KindInternal, "cannot add middleware: registry is sealed")
	}
	d.middleware = append(d.middleware, mws...)
	return nil
}

// Seal freezes the registry. It is idempotent.
func (d *Dispatcher) Seal() {
	d.once.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		chains := make(map[string]Handler, len(d.actions))
		for name, spec := range d.actions {
			chains[name] = applyMiddleware(spec.Handler, d.middleware)
		}
		d.chains = chains
		d.sealed.Store(true)
	})
}

// Sealed reports whether the registry is frozen.
func (d *Dispatcher) Sealed() bool {
	return d.sealed.Load()
}

// Lookup returns the ActionSpec registered under name.
func (d *Dispatcher) Lookup(name string) (ActionSpec, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	spec, ok := d.actions[name]
	return spec, ok
}

// HelpText lists the registered actions sorted by name.
func (d *Dispatcher) HelpText() []HelpEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := make([]HelpEntry, 0, len(d.actions))
	for _, spec := range d.actions {
		entries = append(entries, HelpEntry{Name: spec.Name, Summary: spec.Summary, Usage: spec.Usage})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Dispatch runs the action registered under name exactly once and reports
// the outcome. It seals the registry on first use.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, cfg *config.Resolved, args []string) Result {
	d.Seal()

	res := Result{
		ID:      uuid.New(),
		Action:  name,
		Started: time.Now(),
	}

	handler, ok := d.chains[name]
	if !ok {
		brief := fmt.Sprintf("unknown action: %s", name)
		if name == "" {
			brief = "missing action"
		}
		res.Err = &model.Error{Kind: model.KindUnknownAction, Brief: brief, Key: name}
		return res
	}

	logger := ctxlog.FromContext(ctx).With("action", name, "invocation", res.ID.String())
	ctx = ctxlog.WithLogger(ctx, logger)

	value, failure := invoke(ctx, name, handler, cfg, args)
	res.Duration = time.Since(res.Started)
	if failure != nil {
		res.Err = failure
		return res
	}
	res.Value = value
	return res
}

// invoke runs h and classifies its outcome. Panics raised by the handler or
// while classifying are recovered as internal errors.
func invoke(ctx context.Context, name string, h Handler, cfg *config.Resolved, args []string) (value any, failure *model.Error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.FromContext(ctx).Error("Action panicked", "panic", r, "stack", string(debug.Stack()))
			value = nil
			failure = model.Errorf(model.KindInternal, "action panicked: %v", r)
		}
	}()

	var err error
	value, err = h.Run(ctx, cfg, args)
	// A nil *model.Error stored in the error interface still means success.
	if me, ok := err.(*model.Error); ok && me == nil {
		err = nil
	}
	if err != nil {
		return nil, classify(name, err)
	}
	return value, nil
}

// classify keeps the kind of a *model.Error anywhere in err's chain; any other
// failure is a handler error.
func classify(name string, err error) *model.Error {
	if me, ok := err.(*model.Error); ok && me != nil && me.Kind != model.KindNone {
		return me
	}
	kind := model.KindOf(err)
	if kind == model.KindNone {
		kind = model.KindHandler
	}
	return &model.Error{Kind: kind, Key: name, Err: err}
}

func applyMiddleware(h Handler, mws []Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
