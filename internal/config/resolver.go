/*
PURPOSE:
  Merges prioritized sources into one Resolved configuration and validates it
  against an optional schema.

REQUIREMENTS:
  User-specified:
  - Higher-priority sources override lower ones; two sources may not share a
    priority.
  - Required keys must be set and values must match their declared type.

  Implementation-discovered:
  - Environment values arrive as text and are typed against the schema here,
    so FUBARD_NAME=42 stays "42" for a string key.
  - Every violation is reported at once, sorted by key.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (App.resolve)
  - Produces: *Resolved (resolved.go)

ERROR HANDLING:
  - DuplicatePriority from AddSource; MissingRequiredKey and TypeMismatch,
    joined, from Resolve.

IMPLEMENTATION RULES:
  - Shallow merge only. Nil values never override.
*/

package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/daryltucker/fubard/internal/model"
)

// Resolver merges sources into a Resolved configuration.
// It is single-shot and not safe for concurrent use.
type Resolver struct {
	sources    []Source
	byPriority map[int]string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{byPriority: make(map[int]string)}
}

// AddSource registers a source. Two sources may not share a priority.
func (r *Resolver) AddSource(src Source) error {
	if other, ok := r.byPriority[src.Priority]; ok {
		return &model.Error{
			Kind:  model.KindDuplicatePriority,
			Brief: fmt.Sprintf("sources %q and %q both declare priority %d", other, src.Name, src.Priority),
			Key:   src.Name,
		}
	}
	r.byPriority[src.Priority] = src.Name
	r.sources = append(r.sources, src.clone())
	return nil
}

// Sources returns the registered sources in ascending priority.
func (r *Resolver) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Resolve merges all sources, lowest priority first, and validates the result
// against schema when it is non-nil.
//
// The merge is shallow: a higher-priority value replaces the whole value of the
// same top-level key, nested maps included. Nil values never override.
func (r *Resolver) Resolve(schema Schema) (*Resolved, error) {
	values := make(map[string]any)
	origins := make(map[string]string)
	text := make(map[string]bool)

	for _, src := range r.Sources() {
		for key, val := range src.Values {
			if val == nil {
				continue
			}
			values[key] = normalize(val)
			origins[key] = src.Name
			text[key] = src.Text
		}
	}

	for key, isText := range text {
		if !isText {
			continue
		}
		s, ok := values[key].(string)
		if !ok {
			continue
		}
		if field, declared := schema[key]; declared && field.Type == TypeString {
			continue
		}
		values[key] = parseScalar(s)
	}

	if schema != nil {
		if err := applySchema(schema, values, origins); err != nil {
			return nil, err
		}
	}

	return newResolved(values, origins)
}

func applySchema(schema Schema, values map[string]any, origins map[string]string) error {
	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		field := schema[key]
		val, ok := values[key]
		if !ok && field.Default != nil {
			val = normalize(field.Default)
			values[key] = val
			origins[key] = OriginSchema
			ok = true
		}
		if !ok {
			if field.Required {
				errs = append(errs, &model.Error{
					Kind:  model.KindMissingRequiredKey,
					Brief: fmt.Sprintf("required key %q is not set", key),
					Key:   key,
				})
			}
			continue
		}
		if !field.Type.Accepts(val) {
			errs = append(errs, &model.Error{
				Kind:  model.KindTypeMismatch,
				Brief: fmt.Sprintf("key %q from %s: expected %s, got %s", key, origins[key], field.Type, describe(val)),
				Key:   key,
			})
		}
	}
	return errors.Join(errs...)
}
