/*
PURPOSE:
  Writes resolved options as JSON Lines (one object per option).
  Optimized for machine parsing (jq, vecq).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines keeps the option/value/origin triple together per line.

ARCHITECTURE INTEGRATION:
  - Called by: internal/actions (options --format json)
  - Consumes: output.Option

ERROR HANDLING:
  - Returns the encoder error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w := output.NewJSONWriter(os.Stdout)
  w.Write(opt)

RELATED FILES:
  - internal/output/option.go
*/

package output

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONWriter handles writing options as JSON lines.
type JSONWriter struct {
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// Write writes a single option as a JSON line.
func (jw *JSONWriter) Write(o Option) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(o)
}
