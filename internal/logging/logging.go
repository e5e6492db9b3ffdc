// Package logging builds the application logger. The TUI owns the terminal,
// so log output goes to a file next to the database.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "kubeprep",
		Level:           lvl,
		ReportTimestamp: true,
	})
}

// Discard returns a logger that drops everything. Used by tests and by
// commands that have no log file.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile opens (appending) the log file at path and returns a logger on it
// together with the file's closer.
func OpenFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// DefaultPath places kubeprep.log beside the database file.
func DefaultPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "kubeprep.log")
}
