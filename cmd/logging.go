package cmd

import (
	"io"
	"log/slog"
)

// newLogger builds the CLI's operational logger: a text handler by
// default, or JSON when the invocation's own output format is JSON, so
// log lines don't interleave two incompatible formats on the same
// stream. This logger is for CLI-level concerns (file read failures,
// config load failures) only; the parser itself never logs.
func newLogger(w io.Writer, jsonMode bool) *slog.Logger {
	var handler slog.Handler
	if jsonMode {
		handler = slog.NewJSONHandler(w, nil)
	} else {
		handler = slog.NewTextHandler(w, nil)
	}
	return slog.New(handler)
}
