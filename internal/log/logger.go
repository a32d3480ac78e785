package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     = zerolog.Nop()
	loggerLock sync.RWMutex
)

// Options configures the global logger.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// File receives JSON log lines. Empty means Console or nothing.
	File string
	// Console writes human-readable lines to stderr instead of a file.
	Console bool
}

// Setup replaces the global logger. The returned closer releases the log
// file, if any.
func Setup(opts Options) (io.Closer, error) {
	var (
		output io.Writer
		closer io.Closer = nopCloser{}
	)

	switch {
	case opts.Console:
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closer = f
	default:
		output = io.Discard
	}

	l := zerolog.New(output).
		Level(parseLogLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	loggerLock.Lock()
	logger = l
	loggerLock.Unlock()

	return closer, nil
}

// DefaultFile returns $XDG_STATE_HOME/focusflow/focusflow.log, falling back
// to ~/.local/state.
func DefaultFile() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "focusflow", "focusflow.log"), nil
}

// SetLevel sets the global log level at runtime
func SetLevel(levelStr string) {
	level := parseLogLevel(levelStr)
	loggerLock.Lock()
	logger = logger.Level(level)
	loggerLock.Unlock()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func current() *zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	l := logger
	return &l
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return current().Debug()
}

// Info logs an info message
func Info() *zerolog.Event {
	return current().Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return current().Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return current().Error()
}

// Logger returns the underlying zerolog.Logger
func Logger() zerolog.Logger {
	return *current()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
