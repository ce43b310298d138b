// Package logging configures apex/log for the application. The terminal UI
// owns stdout, so logs go to a file unless asked otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/text"
)

// Stderr is the path value that sends logs to standard error.
const Stderr = "stderr"

// Setup installs a text handler writing to path at the given level and
// returns the logger plus a function closing the log file.
func Setup(level, path string) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if path != "" && path != Stderr {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := New(lvl, out)
	log.SetHandler(logger.Handler)
	log.SetLevel(lvl)
	return logger, closeFn, nil
}

// New returns a logger writing text lines to out.
func New(level log.Level, out io.Writer) *log.Logger {
	return &log.Logger{Handler: text.New(out), Level: level}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return &log.Logger{Handler: discard.Default, Level: log.FatalLevel}
}
