package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// FromFlags builds a source from the flags the user actually set on fs.
// Flags left at their defaults contribute nothing, so they never mask lower
// layers. Flag names map to keys with '-' replaced by '_'.
func FromFlags(fs *pflag.FlagSet, exclude ...string) Source {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	values := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		if skip[f.Name] {
			return
		}
		values[FlagKey(f.Name)] = flagValue(fs, f)
	})

	src := NewSource("flags", PriorityFlags, values)
	src.Origin = "command line"
	return src
}

// FlagKey maps a flag name to its configuration key.
func FlagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func flagValue(fs *pflag.FlagSet, f *pflag.Flag) any {
	var (
		v   any
		err error
	)
	switch f.Value.Type() {
	case "bool":
		v, err = fs.GetBool(f.Name)
	case "int":
		v, err = fs.GetInt(f.Name)
	case "int64":
		v, err = fs.GetInt64(f.Name)
	case "count":
		v, err = fs.GetCount(f.Name)
	case "float64":
		v, err = fs.GetFloat64(f.Name)
	case "duration":
		v, err = fs.GetDuration(f.Name)
	default:
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return sv.GetSlice()
		}
		return f.Value.String()
	}
	if err != nil {
		return f.Value.String()
	}
	return v
}
