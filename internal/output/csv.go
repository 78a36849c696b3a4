/*
PURPOSE:
  Writes resolved options to CSV.
  Flushes after every record.

REQUIREMENTS:
  User-specified:
  - Output to CSV for spreadsheets.

ARCHITECTURE INTEGRATION:
  - Called by: internal/actions (options --format csv)
  - Consumes: output.Option

ERROR HANDLING:
  - Returns error on header or record write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.
  - Mutex-guarded.

USAGE:
  w, err := output.NewCSVWriter(os.Stdout)
  w.Write(opt)

RELATED FILES:
  - internal/output/option.go

MAINTENANCE:
  - Update header and Write() together when Option changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"sync"
)

// CSVWriter handles writing options as CSV.
type CSVWriter struct {
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)

	header := []string{"option", "value", "origin"}
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return &CSVWriter{writer: cw}, nil
}

// Write writes a single option. It is thread-safe.
func (cw *CSVWriter) Write(o Option) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{o.Key, FormatValue(o.Value), o.Origin}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}
