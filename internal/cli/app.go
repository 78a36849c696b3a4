/*
PURPOSE:
  Wires configuration resolution, the action dispatcher and the cobra command
  tree into one runnable application.

REQUIREMENTS:
  User-specified:
  - Options come from defaults, user and project files, an explicit
    --config file, FUBARD_* environment variables and command-line flags.
  - The process exits with the code mapped from the outcome's error kind.

  Implementation-discovered:
  - All process state (args, environment, directories, streams) is injected so
    tests can run the whole CLI in-process.
  - Configuration errors abort before any action runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/fubard/main.go (Execute)
  - Calls: internal/config (sources, Resolver), internal/dispatch,
    internal/actions (built-in and demo actions)

ERROR HANDLING:
  - Every failure is reported as one line on stderr:
    "<category> error: <message>".
  - Errors from cobra itself (unknown flags, bad flag values) are usage errors.

IMPLEMENTATION RULES:
  - No package-level mutable state; each App owns its dispatcher.
  - Only the process entry point (Execute) replaces output.Logger.

USAGE:
  os.Exit(cli.Execute())

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/schema.go

MAINTENANCE:
  - Register new actions in NewApp.
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/daryltucker/fubard/internal/actions"
	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/ctxlog"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
	"github.com/daryltucker/fubard/internal/output"
	"github.com/spf13/cobra"
)

const (
	// AppName names the binary, its options files and its env prefix.
	AppName = "fubard"
	// AppVersion is printed by the version action.
	AppVersion  = "1.0.0"
	description = "Configuration-driven command-line application skeleton"
)

// Options injects process state into an App. Zero fields fall back to the
// running process.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Environ is used instead of os.Environ() when non-nil.
	Environ []string
	WorkDir string
	HomeDir string
	// RunEditor replaces the editor launcher of 'configure'.
	RunEditor func(ctx context.Context, editor, path string) error
}

// App is one fubard command-line application.
type App struct {
	Name      string
	Version   string
	EnvPrefix string
	Defaults  map[string]any
	Schema    config.Schema

	Dispatcher *dispatch.Dispatcher

	stdout  io.Writer
	stderr  io.Writer
	environ []string
	workDir string
	homeDir string

	// globalLogger makes Run replace output.Logger with the configured logger.
	globalLogger bool
}

// NewApp builds an App with the built-in and demo actions registered.
func NewApp(opts Options) (*App, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, model.Wrap(model.KindInternal, err, "cannot determine working directory")
		}
		opts.WorkDir = wd
	}
	if opts.HomeDir == "" {
		// A missing home directory only disables the user-global file.
		opts.HomeDir, _ = os.UserHomeDir()
	}

	a := &App{
		Name:       AppName,
		Version:    AppVersion,
		EnvPrefix:  "FUBARD",
		Defaults:   Defaults,
		Schema:     Schema,
		Dispatcher: dispatch.New(),
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		environ:    opts.Environ,
		workDir:    opts.WorkDir,
		homeDir:    opts.HomeDir,
	}

	if err := a.Dispatcher.Use(dispatch.WithLogging(), dispatch.WithArgsDebug()); err != nil {
		return nil, err
	}
	err := actions.Register(a.Dispatcher, actions.Deps{
		Name:      a.Name,
		Version:   a.Version,
		Stdout:    a.stdout,
		WorkDir:   a.workDir,
		HomeDir:   a.homeDir,
		Schema:    a.Schema,
		Getenv:    a.getenv,
		RunEditor: opts.RunEditor,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Execute runs fubard against the current process and returns its exit code.
func Execute() int {
	a, err := NewApp(Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, model.Message(err))
		return model.ExitCode(err)
	}
	a.globalLogger = true
	return a.Run(context.Background(), os.Args[1:])
}

// Run parses args, resolves configuration, dispatches the selected action and
// returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return model.ExitOK
	}

	var me *model.Error
	if !errors.As(err, &me) {
		err = &model.Error{Kind: model.KindUsage, Err: err}
	}
	fmt.Fprintln(a.stderr, model.Message(err))
	return model.ExitCode(err)
}

// runAction resolves configuration for cmd and dispatches name.
func (a *App) runAction(cmd *cobra.Command, name string, args []string) error {
	cfg, err := a.resolve(cmd)
	if err != nil {
		return err
	}

	logger := a.newLogger(cfg)
	if a.globalLogger {
		output.SetLogger(logger)
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	res := a.Dispatcher.Dispatch(ctx, name, cfg, args)
	return res.Failure()
}

// resolve layers every configuration source and validates the result.
func (a *App) resolve(cmd *cobra.Command) (*config.Resolved, error) {
	sources := []config.Source{config.Defaults(a.Defaults)}

	explicit, _ := cmd.Flags().GetString("config")
	if explicit != "" {
		src, err := config.FromFile(explicit, explicit, config.PriorityExplicit)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	} else {
		user, hasUser := config.FindUserFile(a.Name, a.homeDir)
		if hasUser {
			src, err := config.FromFile(user, user, config.PriorityUser)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
		// Working inside the home directory finds the user file twice.
		if project, ok := config.FindProjectFile(a.Name, a.workDir); ok && project != user {
			src, err := config.FromFile(project, project, config.PriorityProject)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
	}

	sources = append(sources,
		config.FromEnv(a.EnvPrefix, a.environ),
		config.FromFlags(cmd.Flags(), "config", "help"),
	)

	r := config.NewResolver()
	for _, src := range sources {
		if err := r.AddSource(src); err != nil {
			return nil, err
		}
	}
	return r.Resolve(a.Schema)
}

func (a *App) newLogger(cfg *config.Resolved) *slog.Logger {
	level, _ := cfg.String("log_level")
	if verbose, _ := cfg.Bool("verbose"); verbose {
		level = "debug"
	}
	format, _ := cfg.String("log_format")
	return output.NewLogger(level, format, a.stderr)
}

func (a *App) getenv(key string) string {
	for i := len(a.environ) - 1; i >= 0; i-- {
		if name, value, ok := strings.Cut(a.environ[i], "="); ok && name == key {
			return value
		}
	}
	return ""
}
