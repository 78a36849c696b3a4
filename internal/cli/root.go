/*
PURPOSE:
  Defines the root Cobra command for fubard.
  Handles global flags and generates one subcommand per registered action.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface: fubard [global flags] <action> [args].
  - Support global flags like --config and --verbose.
  - An unknown or missing action is a usage error.

  Implementation-discovered:
  - Subcommands are generated from Dispatcher.HelpText() so --help lists
    exactly the registered actions.
  - Names cobra cannot route still reach the dispatcher, which reports them
    as unknown actions.

ARCHITECTURE INTEGRATION:
  - Called by: App.Run
  - Calls: App.runAction for every action, Dispatcher.Dispatch for unknown names

ERROR HANDLING:
  - Flag parse errors are wrapped as usage errors.
  - SilenceErrors/SilenceUsage: App.Run prints the single error line.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all actions.
  - Action-specific flags come from ActionSpec.Flags.

USAGE:
  fubard --help
  fubard -v bar --baz qux

RELATED FILES:
  - internal/cli/app.go

MAINTENANCE:
  - Update when adding global configuration options (and Schema).
*/

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
)

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     a.Name + " [flags] <action> [args]",
		Short:   description,
		Long:    description + ".\n\nOptions are read from defaults, ~/." + a.Name + ".yaml, the nearest ." + a.Name + ".yaml,\n" + strings.ToUpper(a.EnvPrefix) + "_* environment variables and command-line flags, in that order.",
		Version: a.Version,
		Args:    cobra.ArbitraryArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return model.Usage("missing action")
			}
			// Registered names are routed to their own subcommand, so this
			// name is unknown; the dispatcher reports it without resolving
			// configuration.
			res := a.Dispatcher.Dispatch(cmd.Context(), args[0], nil, args[1:])
			return res.Failure()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &model.Error{Kind: model.KindUsage, Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "options file to use instead of the user and project files")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	for _, entry := range a.Dispatcher.HelpText() {
		root.AddCommand(a.newActionCmd(entry))
	}
	return root
}

func (a *App) newActionCmd(entry dispatch.HelpEntry) *cobra.Command {
	name := entry.Name
	cmd := &cobra.Command{
		Use:   strings.TrimSpace(name + " " + entry.Usage),
		Short: entry.Summary,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, name, args)
		},
	}
	if spec, ok := a.Dispatcher.Lookup(name); ok && spec.Flags != nil {
		spec.Flags(cmd.Flags())
	}
	return cmd
}
