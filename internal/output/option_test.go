package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var sampleOptions = []Option{
	{Key: "timeout", Value: 60, Origin: "project"},
	{Key: "verbose", Value: false, Origin: "defaults"},
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleOptions))

	want := strings.Join([]string{
		"+---------+-------+----------+",
		"| option  | value | origin   |",
		"+---------+-------+----------+",
		"| timeout | 60    | project  |",
		"| verbose | false | defaults |",
		"+---------+-------+----------+",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestWriteTable_WideRunes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []Option{
		{Key: "greeting", Value: "日本語", Origin: "env"},
		{Key: "long", Value: "a value well beyond thirty characters wide", Origin: "defaults"},
	}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[3], "| 日本語 ")
	// Every line has the same display width (CJK runes are two cells wide).
	width := displayWidth(lines[0])
	for _, line := range lines {
		require.Equal(t, width, displayWidth(line), line)
	}
}

func TestWriteTable_WriteError(t *testing.T) {
	t.Parallel()

	err := WriteTable(failingWriter{}, sampleOptions)

	require.ErrorIs(t, err, errDiskFull)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errDiskFull }

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x2E80 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	for _, o := range sampleOptions {
		require.NoError(t, w.Write(o))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"option":"timeout","value":60,"origin":"project"}`, lines[0])
	require.JSONEq(t, `{"option":"verbose","value":false,"origin":"defaults"}`, lines[1])
}

func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	require.NoError(t, err)
	for _, o := range sampleOptions {
		require.NoError(t, w.Write(o))
	}
	require.NoError(t, w.Write(Option{Key: "tags", Value: []string{"a", "b"}, Origin: "flags"}))

	require.Equal(t, "option,value,origin\ntimeout,60,project\nverbose,false,defaults\ntags,\"[\"\"a\"\",\"\"b\"\"]\",flags\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleOptions))
	require.Equal(t, "timeout: 60\nverbose: false\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plain", FormatValue("plain"))
	require.Equal(t, "1m30s", FormatValue(90*time.Second))
	require.Equal(t, `{"port":8080}`, FormatValue(map[string]any{"port": 8080}))
	require.Equal(t, "null", FormatValue(nil))
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"key":"value"`)
}
