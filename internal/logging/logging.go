// Package logging builds the charmbracelet loggers shared by the CLI,
// the SSH server and the game logic.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// stateRel is the log file location relative to the XDG state dir.
const stateRel = "pang/pang.log"

// New returns a logger writing to w with timestamps and the given prefix.
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps a CLI string (debug, info, warn, error) to a level.
func ParseLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// DefaultFile returns the default log file path, creating its parent
// directory under $XDG_STATE_HOME.
func DefaultFile() (string, error) {
	path, err := xdg.StateFile(stateRel)
	if err != nil {
		return "", fmt.Errorf("logging: resolve state file: %w", err)
	}
	return path, nil
}

// OpenFile opens path for appending, creating parent directories as needed.
// An empty path resolves to DefaultFile.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		path, err = DefaultFile()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //#nosec G304 -- user-provided log path
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return f, nil
}
