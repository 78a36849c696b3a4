package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/fubard/internal/config"
	"github.com/daryltucker/fubard/internal/dispatch"
	"github.com/daryltucker/fubard/internal/model"
)

type editorCall struct {
	editor string
	path   string
}

func newDispatcher(t *testing.T, deps Deps) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.New()
	require.NoError(t, Register(d, deps))
	return d
}

func resolved(t *testing.T, sources ...config.Source) *config.Resolved {
	t.Helper()
	r := config.NewResolver()
	for _, src := range sources {
		require.NoError(t, r.AddSource(src))
	}
	cfg, err := r.Resolve(nil)
	require.NoError(t, err)
	return cfg
}

func TestRegister_AllActions(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t, Deps{Name: "app", Version: "1.0.0", Stdout: &bytes.Buffer{}})

	var names []string
	for _, entry := range d.HelpText() {
		names = append(names, entry.Name)
		require.NotEmpty(t, entry.Summary, entry.Name)
	}
	require.Empty(t, cmp.Diff([]string{"bar", "configure", "foo", "options", "version"}, names))

	// Registering the same set twice is a build-time error.
	err := Register(d, Deps{})
	require.ErrorIs(t, err, model.ErrDuplicateAction)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	d := newDispatcher(t, Deps{Name: "fubard", Version: "1.0.0", Stdout: &out})

	res := d.Dispatch(context.Background(), "version", resolved(t), nil)
	require.True(t, res.OK(), res.Message())
	require.Equal(t, "fubard-1.0.0\n", out.String())
	require.Equal(t, "fubard-1.0.0", res.Value)

	res = d.Dispatch(context.Background(), "version", resolved(t), []string{"extra"})
	require.Equal(t, model.KindUsage, res.Kind())
	require.Equal(t, model.ExitUsage, res.ExitCode())
}

func TestDemoActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		action   string
		values   map[string]any
		wantOut  string
		wantKind model.Kind
	}{
		{name: "foo", action: "foo", wantOut: "performing foo\n"},
		{name: "bar with baz", action: "bar", values: map[string]any{"baz": "qux"}, wantOut: "performing bar with baz qux\n"},
		{name: "bar without baz", action: "bar", wantKind: model.KindUsage},
		{name: "bar with non-string baz", action: "bar", values: map[string]any{"baz": []any{1}}, wantKind: model.KindTypeMismatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
			cfg := resolved(t, config.NewSource("test", 1, tt.values))

			res := d.Dispatch(context.Background(), tt.action, cfg, nil)

			require.Equal(t, tt.wantKind, res.Kind(), res.Message())
			require.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestOptions_Formats(t *testing.T) {
	t.Parallel()

	sources := []config.Source{
		config.Defaults(map[string]any{"verbose": false, "name": "demo"}),
		config.NewSource("env", config.PriorityEnv, map[string]any{"name": "prod"}),
	}

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		d := newDispatcher(t, Deps{Name: "app", Stdout: &out})

		res := d.Dispatch(context.Background(), "options", resolved(t, sources...), nil)

		require.True(t, res.OK(), res.Message())
		require.Contains(t, out.String(), "| option  | value | origin   |")
		require.Contains(t, out.String(), "| name    | prod  | env      |")
		require.Contains(t, out.String(), "| verbose | false | defaults |")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
		cfg := resolved(t, append(sources, config.NewSource("flags", config.PriorityFlags, map[string]any{"format": "json"}))...)

		res := d.Dispatch(context.Background(), "options", cfg, nil)
		require.True(t, res.OK(), res.Message())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		var first map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.Equal(t, map[string]any{"option": "format", "value": "json", "origin": "flags"}, first)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
		cfg := resolved(t, append(sources, config.NewSource("flags", config.PriorityFlags, map[string]any{"format": "yaml"}))...)

		res := d.Dispatch(context.Background(), "options", cfg, nil)
		require.True(t, res.OK(), res.Message())

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
		require.Equal(t, "prod", doc["name"])
		require.Equal(t, false, doc["verbose"])
	})

	t.Run("csv", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
		cfg := resolved(t, append(sources, config.NewSource("flags", config.PriorityFlags, map[string]any{"format": "csv"}))...)

		res := d.Dispatch(context.Background(), "options", cfg, nil)
		require.True(t, res.OK(), res.Message())
		require.Equal(t, "option,value,origin\nformat,csv,flags\nname,prod,env\nverbose,false,defaults\n", out.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
		cfg := resolved(t, append(sources, config.NewSource("flags", config.PriorityFlags, map[string]any{"format": "xml"}))...)

		res := d.Dispatch(context.Background(), "options", cfg, nil)
		require.Equal(t, model.KindUsage, res.Kind())
		require.Contains(t, res.Message(), `unknown format "xml"`)
	})
}

func TestOptions_Get(t *testing.T) {
	t.Parallel()

	base := config.Defaults(map[string]any{
		"server": map[string]any{"host": "localhost", "port": 8080},
	})

	tests := []struct {
		name     string
		path     string
		wantOut  string
		wantKind model.Kind
	}{
		{name: "nested scalar", path: "server.port", wantOut: "8080\n"},
		{name: "whole map", path: "server", wantOut: `{"host":"localhost","port":8080}` + "\n"},
		{name: "missing", path: "server.tls", wantKind: model.KindMissingKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			d := newDispatcher(t, Deps{Name: "app", Stdout: &out})
			cfg := resolved(t, base, config.NewSource("flags", config.PriorityFlags, map[string]any{"get": tt.path}))

			res := d.Dispatch(context.Background(), "options", cfg, nil)

			require.Equal(t, tt.wantKind, res.Kind(), res.Message())
			require.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestConfigure_CreatesProjectFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work := t.TempDir()
	var calls []editorCall
	deps := Deps{
		Name:    "app",
		WorkDir: work,
		HomeDir: t.TempDir(),
		Schema: config.Schema{
			"verbose": {Type: config.TypeBool, Default: false, Description: "Enable debug logging"},
			"baz":     {Type: config.TypeString},
		},
		Getenv: func(string) string { return "nano" },
		RunEditor: func(ctx context.Context, editor, path string) error {
			calls = append(calls, editorCall{editor, path})
			return nil
		},
	}
	d := newDispatcher(t, deps)

	// --- Act ---
	res := d.Dispatch(context.Background(), "configure", resolved(t), nil)

	// --- Assert ---
	require.True(t, res.OK(), res.Message())
	want := filepath.Join(work, ".app.yaml")
	require.Equal(t, want, res.Value)
	require.Equal(t, []editorCall{{"nano", want}}, calls)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	require.Equal(t, Template("app", deps.Schema), string(data))

	// The template is valid YAML with every option commented out.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Empty(t, doc)
}

func TestConfigure_EditorAndTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		values     map[string]any
		env        string
		existing   string // "home", "work" or ""
		wantEditor string
		wantDir    string // "home" or "work"
	}{
		{name: "fallback editor", wantEditor: "vi", wantDir: "work"},
		{name: "EDITOR", env: "emacs", wantEditor: "emacs", wantDir: "work"},
		{name: "editor option beats EDITOR", values: map[string]any{"editor": "code -w"}, env: "emacs", wantEditor: "code -w", wantDir: "work"},
		{name: "global", values: map[string]any{"global": true}, wantEditor: "vi", wantDir: "home"},
		{name: "existing global file kept", values: map[string]any{"global": true}, existing: "home", wantEditor: "vi", wantDir: "home"},
		{name: "existing project file kept", existing: "work", wantEditor: "vi", wantDir: "work"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dirs := map[string]string{"home": t.TempDir(), "work": t.TempDir()}
			const existingContent = "baz: keep\n"
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dirs[tt.existing], ".app.yaml"), []byte(existingContent), 0644))
			}

			var calls []editorCall
			d := newDispatcher(t, Deps{
				Name:    "app",
				WorkDir: dirs["work"],
				HomeDir: dirs["home"],
				Getenv:  func(string) string { return tt.env },
				RunEditor: func(ctx context.Context, editor, path string) error {
					calls = append(calls, editorCall{editor, path})
					return nil
				},
			})

			res := d.Dispatch(context.Background(), "configure", resolved(t, config.NewSource("test", 1, tt.values)), nil)

			require.True(t, res.OK(), res.Message())
			wantPath := filepath.Join(dirs[tt.wantDir], ".app.yaml")
			require.Equal(t, []editorCall{{tt.wantEditor, wantPath}}, calls)
			if tt.existing != "" {
				data, err := os.ReadFile(wantPath)
				require.NoError(t, err)
				require.Equal(t, existingContent, string(data))
			}
		})
	}
}

func TestConfigure_EditorFailure(t *testing.T) {
	t.Parallel()

	launchErr := errors.New("exec: \"nope\": executable file not found in $PATH")
	d := newDispatcher(t, Deps{
		Name:    "app",
		WorkDir: t.TempDir(),
		HomeDir: t.TempDir(),
		Getenv:  func(string) string { return "nope" },
		RunEditor: func(ctx context.Context, editor, path string) error {
			return launchErr
		},
	})

	res := d.Dispatch(context.Background(), "configure", resolved(t), nil)

	require.Equal(t, model.KindHandler, res.Kind())
	require.Equal(t, model.ExitHandler, res.ExitCode())
	require.ErrorIs(t, res.Failure(), launchErr)
	require.Contains(t, res.Message(), "cannot launch editor nope")
}

func TestTemplate(t *testing.T) {
	t.Parallel()

	got := Template("app", config.Schema{
		"log_level": {Type: config.TypeString, Default: "warn", Description: "Log level"},
		"baz":       {Type: config.TypeString},
	})

	want := "# app configuration. Uncomment and edit as desired.\n" +
		"\n" +
		"#baz:\n" +
		"\n" +
		"# Log level (string)\n" +
		"#log_level: warn\n"
	require.Empty(t, cmp.Diff(want, got))
}
