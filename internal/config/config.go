/*
PURPOSE:
  Defines configuration sources: named, prioritized, immutable key/value
  providers that the Resolver merges into one Resolved configuration.

REQUIREMENTS:
  User-specified:
  - Defaults, config files, environment variables and command-line flags all
    contribute options; later (higher priority) sources win.

  Implementation-discovered:
  - File decoders hand back different map/number shapes (yaml, toml, hcl);
    values are normalized to map[string]any / []any on construction.
  - Sources are copied on construction so callers cannot mutate them later.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli (builds sources), Resolver (merges them)
  - Dependencies: see file.go, env.go, flags.go for the constructors.

ERROR HANDLING:
  - Constructors that do I/O return *model.Error with KindConfigLoad.

IMPLEMENTATION RULES:
  - No I/O in this file.
  - Priorities are plain ints; the Std* constants leave room between layers.

USAGE:
  src := config.Defaults(map[string]any{"timeout": 30})

RELATED FILES:
  - internal/config/resolver.go

MAINTENANCE:
  - Update normalize() if a new decoder produces another container type.
*/

package config

import (
	"fmt"
)

// Standard priority levels. Higher values override lower values.
const (
	PriorityDefaults = 0
	PriorityUser     = 100
	PriorityProject  = 200
	PriorityExplicit = 300
	PriorityEnv      = 500
	PriorityFlags    = 600
)

// OriginSchema is reported by Resolved.Origin for values filled from schema defaults.
const OriginSchema = "schema"

// Source is one ordered provider of configuration values.
type Source struct {
	// Name identifies the source in diagnostics (e.g. "defaults", "env").
	Name string
	// Priority orders sources; higher overrides lower.
	Priority int
	// Origin is where the values came from, such as a file path.
	Origin string
	// Values maps top-level keys to scalars, slices or nested maps.
	Values map[string]any
	// Text marks sources whose string values are untyped text (environment
	// variables). The Resolver keeps them as strings for string keys and
	// parses them as YAML scalars otherwise.
	Text bool
}

// NewSource creates a source holding a normalized copy of values.
func NewSource(name string, priority int, values map[string]any) Source {
	return Source{
		Name:     name,
		Priority: priority,
		Origin:   name,
		Values:   normalizeMap(values),
	}
}

// Defaults creates the built-in defaults source.
func Defaults(values map[string]any) Source {
	return NewSource("defaults", PriorityDefaults, values)
}

// String describes the source for logs.
func (s Source) String() string {
	if s.Origin != "" && s.Origin != s.Name {
		return fmt.Sprintf("%s(%s)@%d", s.Name, s.Origin, s.Priority)
	}
	return fmt.Sprintf("%s@%d", s.Name, s.Priority)
}

func (s Source) clone() Source {
	s.Values = normalizeMap(s.Values)
	return s
}

// normalizeMap deep-copies m, converting every nested container to
// map[string]any or []any.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeMap(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
