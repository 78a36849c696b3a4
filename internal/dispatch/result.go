package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/fubard/internal/model"
)

// Result is the outcome of one dispatch: a success value or a classified failure.
type Result struct {
	// ID identifies this invocation in logs.
	ID      uuid.UUID
	Action  string
	Value   any
	Err     *model.Error
	Started time.Time
	// Duration is zero when no handler ran.
	Duration time.Duration
}

// OK reports whether the action succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the failure kind, or KindNone on success.
func (r Result) Kind() model.Kind {
	if r.Err == nil {
		return model.KindNone
	}
	return r.Err.Kind
}

// ExitCode returns the process exit code for the outcome.
func (r Result) ExitCode() int {
	return r.Kind().ExitCode()
}

// Message returns the single-line failure message, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message()
}

// Failure returns the failure as an error, or nil on success.
func (r Result) Failure() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}
