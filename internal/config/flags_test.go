package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFromFlags_OnlyChanged(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("timeout", 10, "")
	fs.String("log-level", "info", "")
	fs.Bool("verbose", false, "")
	fs.StringSlice("tags", nil, "")
	fs.Duration("delay", 0, "")
	fs.String("config", "", "")

	require.NoError(t, fs.Parse([]string{"--timeout=5", "--tags=a,b", "--delay=2s", "--config=x.yaml", "pos"}))

	src := FromFlags(fs, "config")

	want := map[string]any{
		"timeout": 5,
		"tags":    []string{"a", "b"},
		"delay":   2 * time.Second,
	}
	if diff := cmp.Diff(want, src.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, PriorityFlags, src.Priority)
}

func TestFlagKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "log_level", FlagKey("log-level"))
	require.Equal(t, "baz", FlagKey("baz"))
}
