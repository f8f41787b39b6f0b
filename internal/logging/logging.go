// Package logging builds the structured logger used by the sync engine.
//
// There is no package-level logger: the CLI builds one from the -v count
// and passes it down explicitly.
package logging

import (
	"io"
	"log/slog"
)

// LevelForVerbosity maps the number of -v flags to a log level:
// none shows warnings and errors, -v adds progress, -vv adds debug detail.
func LevelForVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// New returns a text logger writing to w at the level implied by
// verbosity. Timestamps are omitted; the output is meant for a terminal.
func New(w io.Writer, verbosity int) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: LevelForVerbosity(verbosity),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
