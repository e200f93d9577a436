package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a config level name onto a log level, defaulting to info
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetupLogger returns a timestamped logger writing to stderr
func SetupLogger(level string) *log.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger returns a timestamped logger writing to w
func NewLogger(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// SetupFileLogger appends to path so log output does not fight with a
// full-screen terminal UI. The returned close func must be called on exit.
func SetupFileLogger(path, level string) (*log.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewLogger(f, level), f.Close, nil
}
