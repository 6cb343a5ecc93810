// Package logging configures slog output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Runtime bundles a logger with the file it writes to.
type Runtime struct {
	Logger *slog.Logger
	Path   string
	closer io.Closer
}

// Close closes the log file, if any.
func (r Runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// NewFile appends JSON lines to path. The TUI owns the terminal while it
// runs, so practice sessions log here instead of stderr.
func NewFile(path string, level slog.Level) (Runtime, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Runtime{}, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Runtime{}, err
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return Runtime{Logger: slog.New(h), Path: path, closer: f}, nil
}

// NewText logs human-readable lines to w.
func NewText(w io.Writer, level slog.Level) Runtime {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return Runtime{Logger: slog.New(h)}
}

// Discard returns a logger that drops everything.
func Discard() Runtime {
	return Runtime{Logger: slog.New(slog.DiscardHandler)}
}
