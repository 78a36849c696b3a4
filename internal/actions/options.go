/*
PURPOSE:
  Defines the 'options' action.
  Shows every resolved option, its value and the source that supplied it.

REQUIREMENTS:
  User-specified:
  - Display app options as a table.

  Implementation-discovered:
  - Knowing WHERE a value came from (defaults, file, env, flag) is what makes
    layered configuration debuggable.
  - Scripts want machine-readable output (json, yaml, csv) and single values.

ARCHITECTURE INTEGRATION:
  - Uses: internal/output writers, config.Resolved (Keys, Origin, Lookup)

ERROR HANDLING:
  - Unknown --format or stray arguments are usage errors.
  - --get on an unset path is a missing-key config error.

USAGE:
  fubard options
  fubard options --format json
  fubard options --get server.port
*/

package actions

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
	"github.com/daryltucker/fubard/internal/output"
)

func optionsAction(deps Deps) dispatch.ActionSpec {
	return dispatch.ActionSpec{
		Name:    "options",
		Summary: "Display resolved options and where they came from",
		Flags: func(fs *pflag.FlagSet) {
			fs.StringP("format", "f", "", "output format: table, json, yaml or csv")
			fs.String("get", "", "print a single value by dotted path (e.g. server.port)")
		},
		Handler: dispatch.HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			if len(args) > 0 {
				return nil, model.Usage("options takes no arguments")
			}

			if path, err := cfg.String("get"); err == nil && path != "" {
				v, err := cfg.Lookup(path)
				if err != nil {
					return nil, err
				}
				if _, err := fmt.Fprintln(deps.Stdout, output.FormatValue(v)); err != nil {
					return nil, fmt.Errorf("failed to write option: %w", err)
				}
				return v, nil
			}

			opts := make([]output.Option, 0, len(cfg.Keys()))
			for _, key := range cfg.Keys() {
				v, err := cfg.Get(key)
				if err != nil {
					return nil, err
				}
				opts = append(opts, output.Option{Key: key, Value: v, Origin: cfg.Origin(key)})
			}

			format := "table"
			if f, err := cfg.String("format"); err == nil && f != "" {
				format = f
			}
			if err := writeOptions(deps, format, opts); err != nil {
				return nil, err
			}
			return opts, nil
		}),
	}
}

func writeOptions(deps Deps, format string, opts []output.Option) error {
	switch format {
	case "table":
		return output.WriteTable(deps.Stdout, opts)
	case "yaml":
		return output.WriteYAML(deps.Stdout, opts)
	case "json":
		w := output.NewJSONWriter(deps.Stdout)
		for _, o := range opts {
			if err := w.Write(o); err != nil {
				return fmt.Errorf("failed to write option %s: %w", o.Key, err)
			}
		}
		return nil
	case "csv":
		w, err := output.NewCSVWriter(deps.Stdout)
		if err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, o := range opts {
			if err := w.Write(o); err != nil {
				return fmt.Errorf("failed to write option %s: %w", o.Key, err)
			}
		}
		return nil
	default:
		return model.Usage("unknown format %q (want table, json, yaml or csv)", format)
	}
}
