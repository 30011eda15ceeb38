// Package logging builds the application logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// New creates a [log.Logger] writing to w with timestamps and caller
// reporting enabled. The writer defaults to [os.Stderr].
func New(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true, Level: level}
	return log.NewWithOptions(w, opts)
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(s string) log.Level {
	l, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// DefaultFile returns the log file path under the XDG state directory.
func DefaultFile() (string, error) {
	return xdg.StateFile(filepath.Join("dreamster", "dreamster.log"))
}

// OpenFile opens path for appending, creating parent directories.
// The TUI owns the terminal, so logs go to a file while it runs.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
