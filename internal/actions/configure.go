/*
PURPOSE:
  Defines the 'configure' action.
  Edits a persistent options file, creating it on demand.

REQUIREMENTS:
  User-specified:
  - Open the nearest project options file in the user's editor.
  - --global edits the user-global file in the home directory instead.
  - New files start from a commented template listing every known option.

  Implementation-discovered:
  - Editor precedence: --editor / editor option, then $EDITOR, then vi.

ARCHITECTURE INTEGRATION:
  - Uses: config.FindProjectFile, config.FindUserFile, deps.RunEditor

ERROR HANDLING:
  - Failure to create the file or launch the editor is an action error.

USAGE:
  fubard configure
  fubard configure --global --editor "code -w"
*/

package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/ctxlog"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
)

const defaultEditor = "vi"

func configureAction(deps Deps) dispatch.ActionSpec {
	return dispatch.ActionSpec{
		Name:    "configure",
		Summary: "Edit the options file, creating it on demand",
		Flags: func(fs *pflag.FlagSet) {
			fs.StringP("editor", "e", "", "editor command (default $EDITOR, then vi)")
			fs.BoolP("global", "g", false, "edit the user-global options file")
		},
		Handler: dispatch.HandlerFunc(func(ctx context.Context, cfg *config.Resolved, args []string) (any, error) {
			if len(args) > 0 {
				return nil, model.Usage("configure takes no arguments")
			}

			global, err := optionalBool(cfg, "global")
			if err != nil {
				return nil, err
			}
			path, err := optionsFilePath(deps, global)
			if err != nil {
				return nil, err
			}

			if err := createOptionsFile(ctx, deps, path); err != nil {
				return nil, err
			}

			editor := editorFor(deps, cfg)
			if err := deps.RunEditor(ctx, editor, path); err != nil {
				return nil, model.Wrap(model.KindHandler, err, "cannot launch editor %s", editor)
			}
			return path, nil
		}),
	}
}

func optionalBool(cfg *config.Resolved, key string) (bool, error) {
	v, err := cfg.Bool(key)
	if errors.Is(err, model.ErrMissingKey) {
		return false, nil
	}
	return v, err
}

func optionsFilePath(deps Deps, global bool) (string, error) {
	if global {
		if path, ok := config.FindUserFile(deps.Name, deps.HomeDir); ok {
			return path, nil
		}
		if deps.HomeDir == "" {
			return "", model.Errorf(model.KindHandler, "cannot locate home directory")
		}
		return filepath.Join(deps.HomeDir, config.FileName(deps.Name, ".yaml")), nil
	}
	if path, ok := config.FindProjectFile(deps.Name, deps.WorkDir); ok {
		return path, nil
	}
	return filepath.Join(deps.WorkDir, config.FileName(deps.Name, ".yaml")), nil
}

func editorFor(deps Deps, cfg *config.Resolved) string {
	if editor, err := cfg.String("editor"); err == nil && editor != "" {
		return editor
	}
	if editor := deps.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return defaultEditor
}

func createOptionsFile(ctx context.Context, deps Deps, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat options file %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(Template(deps.Name, deps.Schema)), 0644); err != nil {
		return fmt.Errorf("failed to create options file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Created new configuration", "path", path)
	return nil
}

// Template renders a commented YAML options file listing every schema key.
func Template(name string, schema config.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s configuration. Uncomment and edit as desired.\n", name)

	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := schema[key]
		b.WriteString("\n")
		if field.Description != "" {
			fmt.Fprintf(&b, "# %s (%s)\n", field.Description, field.Type)
		}
		line := key + ":"
		if field.Default != nil {
			if data, err := yaml.Marshal(map[string]any{key: field.Default}); err == nil {
				line = strings.TrimSpace(string(data))
			}
		}
		fmt.Fprintf(&b, "#%s\n", line)
	}
	return b.String()
}
