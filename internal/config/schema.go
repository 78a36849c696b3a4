/*
PURPOSE:
  Declares the expected options: type, required flag, default, description.

IMPLEMENTATION RULES:
  - Numbers are loose: integral floats are ints, ints are floats.
  - Durations accept time.Duration and Go duration strings ("1m30s").
*/

package config

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Type is the declared kind of a schema field.
type Type string

// Schema field types.
const (
	TypeAny      Type = "any"
	TypeString   Type = "string"
	TypeInt      Type = "int"
	TypeFloat    Type = "float"
	TypeBool     Type = "bool"
	TypeDuration Type = "duration"
	TypeList     Type = "list"
	TypeMap      Type = "map"
)

// Field declares one configuration key.
type Field struct {
	Type        Type
	Required    bool
	Default     any
	Description string
}

// Schema maps top-level keys to their declarations.
type Schema map[string]Field

// Accepts reports whether v satisfies t.
func (t Type) Accepts(v any) bool {
	switch t {
	case TypeAny, "":
		return true
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInt:
		_, ok := asInt(v)
		return ok
	case TypeFloat:
		_, ok := asFloat(v)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeDuration:
		_, ok := asDuration(v)
		return ok
	case TypeList:
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Slice
	case TypeMap:
		_, ok := v.(map[string]any)
		return ok
	default:
		return false
	}
}

// describe names the dynamic type of v in schema vocabulary.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return string(TypeString)
	case bool:
		return string(TypeBool)
	case time.Duration:
		return string(TypeDuration)
	case map[string]any:
		return string(TypeMap)
	}
	if _, ok := asInt(v); ok {
		return string(TypeInt)
	}
	if _, ok := asFloat(v); ok {
		return string(TypeFloat)
	}
	if reflect.TypeOf(v).Kind() == reflect.Slice {
		return string(TypeList)
	}
	return fmt.Sprintf("%T", v)
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, false
	}
}

// floatToInt accepts integral floats, which is how JSON and HCL numbers decode.
func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func asDuration(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, true
	case string:
		parsed, err := time.ParseDuration(d)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
