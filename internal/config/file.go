/*
PURPOSE:
  Builds configuration sources from options files and locates those files.

REQUIREMENTS:
  User-specified:
  - Options may be persisted in an options file, searched from the working
    directory up through every parent directory; the nearest one wins.
  - A user-global options file lives in the home directory.

  Implementation-discovered:
  - Adopters want to pick a format; the extension selects the decoder:
    .yaml/.yml, .toml, .json (comments allowed), .hcl.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (source assembly), internal/actions (configure)
  - Dependencies: gopkg.in/yaml.v3, github.com/pelletier/go-toml/v2,
    github.com/tidwall/jsonc, github.com/hashicorp/hcl/v2, github.com/zclconf/go-cty

ERROR HANDLING:
  - Read or parse failures return *model.Error with KindConfigLoad.

IMPLEMENTATION RULES:
  - HCL files are flat attribute files; blocks are rejected by JustAttributes.

USAGE:
  src, err := config.FromFile("/home/me/.fubard.yaml", "user", config.PriorityUser)

RELATED FILES:
  - internal/config/config.go

MAINTENANCE:
  - Add new formats to Extensions and Decode together.
*/

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/fubard/internal/model"
)

// Extensions lists the supported options file extensions in search order.
var Extensions = []string{".yaml", ".yml", ".toml", ".json", ".hcl"}

// FileName returns the options file name for app with the given extension.
func FileName(app, ext string) string {
	return "." + app + ext
}

// FromFile loads an options file into a source.
func FromFile(path, name string, priority int) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, model.Wrap(model.KindConfigLoad, err, "cannot load options file %s", path)
	}

	values, err := Decode(path, data)
	if err != nil {
		return Source{}, model.Wrap(model.KindConfigLoad, err, "cannot parse options file %s", path)
	}

	src := NewSource(name, priority, values)
	src.Origin = path
	return src, nil
}

// Decode parses data according to the extension of path.
func Decode(path string, data []byte) (map[string]any, error) {
	values := make(map[string]any)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), &values); err != nil {
			return nil, err
		}
	case ".hcl":
		return decodeHCL(path, data)
	default:
		return nil, fmt.Errorf("unsupported options file format %q", ext)
	}

	// An empty YAML document decodes to a nil map.
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

func decodeHCL(path string, data []byte) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

// FindProjectFile searches dir and each of its parents for an options file of
// app and returns the nearest one.
func FindProjectFile(app, dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		if path, ok := findIn(app, dir); ok {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FindUserFile returns the user-global options file of app in home.
func FindUserFile(app, home string) (string, bool) {
	if home == "" {
		return "", false
	}
	return findIn(app, home)
}

func findIn(app, dir string) (string, bool) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, FileName(app, ext))
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, true
		}
	}
	return "", false
}
