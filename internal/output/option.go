package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Option is one resolved option as presented to users.
type Option struct {
	Key    string `json:"option" yaml:"option"`
	Value  any    `json:"value" yaml:"value"`
	Origin string `json:"origin" yaml:"origin"`
}

// FormatValue renders v for table and CSV cells: strings verbatim,
// everything else as compact JSON.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// WriteYAML writes options as a YAML mapping of key to value.
func WriteYAML(w io.Writer, opts []Option) error {
	doc := make(map[string]any, len(opts))
	for _, o := range opts {
		doc[o.Key] = o.Value
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTable writes options as a psql-style table:
//
//	+---------+-------+----------+
//	| option  | value | origin   |
//	+---------+-------+----------+
//	| verbose | false | defaults |
//	+---------+-------+----------+
func WriteTable(w io.Writer, opts []Option) error {
	ew := &errWriter{w: w}

	table := tablewriter.NewWriter(ew)
	table.SetHeader([]string{"option", "value", "origin"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, o := range opts {
		table.Append([]string{o.Key, FormatValue(o.Value), o.Origin})
	}
	table.Render()

	return ew.err
}

// errWriter keeps the first write error; tablewriter does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
