/*
PURPOSE:
  Defines the error taxonomy shared by the configuration resolver, the action
  dispatcher and the CLI front end.
  Every failure the application can report is a *model.Error with a Kind.

REQUIREMENTS:
  User-specified:
  - Every failure kind maps to a stable process exit code.
  - Users see a single-line "<category> error: <brief>" message, never a trace.

  Implementation-discovered:
  - Callers branch on Kind with errors.Is / errors.As instead of type switches.
  - Joined errors (several schema violations) report the first Kind in the chain.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config, internal/dispatch, internal/cli, internal/actions
  - Leaf package, no internal imports.

ERROR HANDLING:
  - This IS the error handling.

IMPLEMENTATION RULES:
  - Keep Kind values append-only; exit codes are part of the public contract.
  - Message() must never contain a newline.

USAGE:
  return model.Errorf(model.KindUsage, "expected 1 argument, got %d", len(args))
  os.Exit(model.ExitCode(err))

RELATED FILES:
  - internal/dispatch/result.go

MAINTENANCE:
  - Update Category/ExitCode when adding kinds.
*/

package model

import (
	"errors"
	"fmt"
	"strings"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitHandler  = 1
	ExitUsage    = 2
	ExitConfig   = 3
	ExitInternal = 70
)

// Kind classifies a failure.
type Kind uint8

const (
	// KindNone means no failure.
	KindNone Kind = iota
	// KindDuplicatePriority: two config sources declared the same priority.
	KindDuplicatePriority
	// KindMissingRequiredKey: a schema-required key is absent after merging.
	KindMissingRequiredKey
	// KindTypeMismatch: a value disagrees with its declared type.
	KindTypeMismatch
	// KindMissingKey: lookup of a key no source defines.
	KindMissingKey
	// KindConfigLoad: a config file could not be read or parsed.
	KindConfigLoad
	// KindDuplicateAction: two actions registered under one name.
	KindDuplicateAction
	// KindUnknownAction: the requested action is not registered.
	KindUnknownAction
	// KindUsage: bad arguments or options.
	KindUsage
	// KindHandler: any other failure reported by an action.
	KindHandler
	// KindInternal: programming errors (sealed registry, recovered panics).
	KindInternal
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDuplicatePriority:
		return "duplicate_priority"
	case KindMissingRequiredKey:
		return "missing_required_key"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindMissingKey:
		return "missing_key"
	case KindConfigLoad:
		return "config_load"
	case KindDuplicateAction:
		return "duplicate_action"
	case KindUnknownAction:
		return "unknown_action"
	case KindUsage:
		return "usage"
	case KindHandler:
		return "handler"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Category is the user-facing prefix of the kind's message.
func (k Kind) Category() string {
	switch k {
	case KindNone:
		return ""
	case KindDuplicatePriority, KindMissingRequiredKey, KindTypeMismatch, KindMissingKey, KindConfigLoad:
		return "config"
	case KindUnknownAction, KindUsage:
		return "usage"
	case KindHandler:
		return "action"
	default:
		return "internal"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindNone:
		return ExitOK
	case KindUnknownAction, KindUsage:
		return ExitUsage
	case KindDuplicatePriority, KindMissingRequiredKey, KindTypeMismatch, KindMissingKey, KindConfigLoad:
		return ExitConfig
	case KindHandler:
		return ExitHandler
	default:
		return ExitInternal
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Brief is the one-line description shown to users.
	Brief string
	// Key names the config key or action involved, if any.
	Key string
	// Err is the underlying cause.
	Err error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrDuplicatePriority  = &Error{Kind: KindDuplicatePriority}
	ErrMissingRequiredKey = &Error{Kind: KindMissingRequiredKey}
	ErrTypeMismatch       = &Error{Kind: KindTypeMismatch}
	ErrMissingKey         = &Error{Kind: KindMissingKey}
	ErrConfigLoad         = &Error{Kind: KindConfigLoad}
	ErrDuplicateAction    = &Error{Kind: KindDuplicateAction}
	ErrUnknownAction      = &Error{Kind: KindUnknownAction}
	ErrUsage              = &Error{Kind: KindUsage}
	ErrHandler            = &Error{Kind: KindHandler}
	ErrInternal           = &Error{Kind: KindInternal}
)

// Errorf builds a classified error.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Brief: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind with a brief description.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Brief: fmt.Sprintf(format, args...), Err: err}
}

// Usage builds a KindUsage error. Action handlers return it for bad arguments.
func Usage(format string, args ...any) error {
	return Errorf(KindUsage, format, args...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Brief != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Brief, e.Err)
	case e.Brief != "":
		return e.Brief
	case e.Err != nil:
		return e.Err.Error()
	default:
		return strings.ReplaceAll(e.Kind.String(), "_", " ")
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels (an Error with only Kind set).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Brief == "" && t.Err == nil && t.Key == "" && t.Kind == e.Kind
}

// Message renders the single-line user-facing text.
func (e *Error) Message() string {
	return Message(e)
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors are KindHandler.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var me *Error
	if errors.As(err, &me) && me != nil {
		return me.Kind
	}
	return KindHandler
}

// ExitCode maps any error to a process exit code.
func ExitCode(err error) int {
	return KindOf(err).ExitCode()
}

// Message renders err as "<category> error: <text>" on one line.
func Message(err error) string {
	if err == nil {
		return ""
	}
	text := strings.Join(strings.Fields(strings.ReplaceAll(err.Error(), "\n", "; ")), " ")
	return fmt.Sprintf("%s error: %s", KindOf(err).Category(), text)
}
