/*
PURPOSE:
  Entry point for the fubard application.
  Builds the CLI and exits with the code of the dispatched action.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Exit codes: 0 ok, 1 action failure, 2 usage, 3 configuration,
    70 internal error.

  Implementation-discovered:
  - cli.Execute already prints the error line; main only exits.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()
  - Depends on: internal/cli package

ERROR HANDLING:
  - None here; the exit code carries the outcome.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.
  - Do not use global variables for state here.

USAGE:
  go build -o fubard ./cmd/fubard
  ./fubard [flags] <action> [args]

RELATED FILES:
  - internal/cli/app.go - Execute and the App wiring.
  - internal/cli/root.go - The root command definition.
*/

package main

import (
	"os"

	"github.com/daryltucker/fubard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
