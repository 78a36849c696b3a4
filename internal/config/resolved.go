/*
PURPOSE:
  The read side of configuration: typed accessors, dotted-path lookup, per-key
  origins and a content fingerprint over the merged values.

REQUIREMENTS:
  User-specified:
  - Reading an unset key is a MissingKey error, never a zero value.

  Implementation-discovered:
  - A canonical JSON snapshot backs Lookup (gjson) and Fingerprint (xxh3).
  - JSON has no Inf/NaN; the snapshot carries them as text.

ARCHITECTURE INTEGRATION:
  - Built by: Resolver.Resolve, FromMap
  - Used by: every action handler, the options action, dispatch logging

ERROR HANDLING:
  - MissingKey for unset keys and paths, TypeMismatch for wrong accessor types.
*/

package config

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/zeebo/xxh3"

	"github.com/daryltucker/fubard/internal/model"
)

// Resolved is the merged, immutable configuration.
// It is safe for concurrent use.
type Resolved struct {
	values  map[string]any
	origins map[string]string
	keys    []string
	raw     []byte // canonical JSON snapshot
}

func newResolved(values map[string]any, origins map[string]string) (*Resolved, error) {
	raw, err := json.Marshal(snapshot(values))
	if err != nil {
		return nil, model.Wrap(model.KindConfigLoad, err, "cannot encode resolved configuration")
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Resolved{
		values:  values,
		origins: origins,
		keys:    keys,
		raw:     raw,
	}, nil
}

// snapshot copies v for JSON encoding. Non-finite floats, which JSON cannot
// represent, become their strconv text ("+Inf", "NaN").
func snapshot(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = snapshot(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = snapshot(e)
		}
		return out
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
	case float32:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return strconv.FormatFloat(f, 'g', -1, 32)
		}
	}
	return v
}

// FromMap builds a Resolved directly from values, bypassing any sources.
// Useful for tests and for actions invoked programmatically.
func FromMap(values map[string]any) (*Resolved, error) {
	values = normalizeMap(values)
	origins := make(map[string]string, len(values))
	for key := range values {
		origins[key] = "map"
	}
	return newResolved(values, origins)
}

func missingKey(key string) error {
	return &model.Error{
		Kind:  model.KindMissingKey,
		Brief: fmt.Sprintf("option %q is not set", key),
		Key:   key,
	}
}

func mismatch(key string, want Type, v any) error {
	return &model.Error{
		Kind:  model.KindTypeMismatch,
		Brief: fmt.Sprintf("option %q: expected %s, got %s", key, want, describe(v)),
		Key:   key,
	}
}

// Get returns the value of a top-level key.
func (r *Resolved) Get(key string) (any, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, missingKey(key)
	}
	return normalize(v), nil
}

// Has reports whether key is set.
func (r *Resolved) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// String returns a string option.
func (r *Resolved) String(key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", missingKey(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", mismatch(key, TypeString, v)
	}
	return s, nil
}

// Int returns an integer option.
func (r *Resolved) Int(key string) (int, error) {
	v, ok := r.values[key]
	if !ok {
		return 0, missingKey(key)
	}
	n, ok := asInt(v)
	if !ok || n != int64(int(n)) {
		return 0, mismatch(key, TypeInt, v)
	}
	return int(n), nil
}

// Float returns a numeric option.
func (r *Resolved) Float(key string) (float64, error) {
	v, ok := r.values[key]
	if !ok {
		return 0, missingKey(key)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, mismatch(key, TypeFloat, v)
	}
	return f, nil
}

// Bool returns a boolean option.
func (r *Resolved) Bool(key string) (bool, error) {
	v, ok := r.values[key]
	if !ok {
		return false, missingKey(key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(key, TypeBool, v)
	}
	return b, nil
}

// Duration returns a duration option given as time.Duration or a "90s" style string.
func (r *Resolved) Duration(key string) (time.Duration, error) {
	v, ok := r.values[key]
	if !ok {
		return 0, missingKey(key)
	}
	d, ok := asDuration(v)
	if !ok {
		return 0, mismatch(key, TypeDuration, v)
	}
	return d, nil
}

// StringSlice returns a list-of-strings option.
func (r *Resolved) StringSlice(key string) ([]string, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, missingKey(key)
	}
	s, ok := asStringSlice(v)
	if !ok {
		return nil, mismatch(key, TypeList, v)
	}
	return s, nil
}

// Lookup evaluates a dotted path ("server.port", "urls.0") against the
// merged values. Numbers come back as float64 and objects as map[string]any.
func (r *Resolved) Lookup(path string) (any, error) {
	res := gjson.GetBytes(r.raw, path)
	if !res.Exists() {
		return nil, missingKey(path)
	}
	return res.Value(), nil
}

// Keys returns the set keys in sorted order.
func (r *Resolved) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Origin returns the name of the source that supplied key, or "" if unset.
func (r *Resolved) Origin(key string) string {
	return r.origins[key]
}

// All returns a deep copy of the merged values.
func (r *Resolved) All() map[string]any {
	return normalizeMap(r.values)
}

// JSON returns the canonical JSON encoding of the merged values.
func (r *Resolved) JSON() []byte {
	out := make([]byte, len(r.raw))
	copy(out, r.raw)
	return out
}

// Fingerprint identifies the merged content; equal configurations hash equal.
func (r *Resolved) Fingerprint() string {
	return strconv.FormatUint(xxh3.Hash(r.raw), 16)
}
