package config

import (
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromEnv builds a source from environment entries ("KEY=value") that start
// with prefix. The prefix is stripped and the rest lower-cased, so with prefix
// "FUBARD" the variable FUBARD_LOG_LEVEL sets key "log_level".
//
// Values stay raw text; the Resolver types them against the schema.
func FromEnv(prefix string, environ []string) Source {
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}

	values := make(map[string]any)
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if key == "" {
			continue
		}
		values[key] = value
	}

	src := NewSource("env", PriorityEnv, values)
	src.Origin = prefix + "*"
	src.Text = true
	return src
}

// parseScalar decodes s as a YAML scalar so "60" becomes 60 and "true" becomes
// true. Anything that is not a plain scalar, and ".inf"/".nan", stays a string.
func parseScalar(s string) any {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil || len(node.Content) != 1 {
		return s
	}
	scalar := node.Content[0]
	if scalar.Kind != yaml.ScalarNode || scalar.Tag == "!!null" {
		return s
	}
	var v any
	if err := scalar.Decode(&v); err != nil {
		return s
	}
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return s
	}
	return v
}
