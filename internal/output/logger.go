/*
PURPOSE:
  Provides the structured logger for fubard.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - --verbose shows debug detail.

  Implementation-discovered:
  - Log level and format come from resolved options (log_level, log_format),
    which are only known after configuration resolution.
  - Logs go to stderr so action output on stdout stays pipeable.

ARCHITECTURE INTEGRATION:
  - Used everywhere. internal/cli reconfigures it once options are resolved.

ERROR HANDLING:
  - Unknown levels fall back to info; unknown formats fall back to text.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")
  output.SetLogger(output.NewLogger("debug", "json", os.Stderr))

RELATED FILES:
  - internal/ctxlog/ctxlog.go

MAINTENANCE:
  - Keep level names in sync with the log_level schema description.
*/

package output

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger writing to w. Format is "text" or "json".
// It does not replace Logger.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
