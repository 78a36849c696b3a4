// Package actions holds the built-in actions every fubard-based application
// ships with (configure, options, version) and the demo actions an adopter
// replaces with their own (foo, bar).
package actions

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/dispatch"
)

// Deps is what the built-in actions need from the host process.
type Deps struct {
	Name    string
	Version string
	Stdout  io.Writer
	WorkDir string
	HomeDir string
	// Schema documents the options written to new options files.
	Schema config.Schema
	// Getenv reads the process environment (EDITOR).
	Getenv func(string) string
	// RunEditor opens path in editor and waits for it to exit.
	RunEditor func(ctx context.Context, editor, path string) error
}

// Builtin returns the configure, options and version actions.
func Builtin(deps Deps) []dispatch.ActionSpec {
	deps = deps.withDefaults()
	return []dispatch.ActionSpec{
		configureAction(deps),
		optionsAction(deps),
		versionAction(deps),
	}
}

// Demo returns the example foo and bar actions.
func Demo(deps Deps) []dispatch.ActionSpec {
	deps = deps.withDefaults()
	return []dispatch.ActionSpec{
		fooAction(deps),
		barAction(deps),
	}
}

// Register adds the built-in and demo actions to d.
func Register(d *dispatch.Dispatcher, deps Deps) error {
	specs := append(Builtin(deps), Demo(deps)...)
	for _, spec := range specs {
		if err := d.Register(spec); err != nil {
			return err
		}
	}
	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.RunEditor == nil {
		d.RunEditor = RunEditor
	}
	return d
}

// RunEditor launches editor (which may carry arguments, e.g. "code -w") on
// path, attached to the terminal.
func RunEditor(ctx context.Context, editor, path string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return exec.ErrNotFound
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
