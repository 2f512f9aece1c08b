// Package logger provides leveled logging for gate-discovery.
// Info, warnings and errors are always written; debug messages only
// appear once verbose mode is enabled via the --verbose flag.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "gate-discovery"

var (
	mu      sync.RWMutex
	verbose bool
	base    = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  log.InfoLevel,
	})
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base.SetLevel(log.DebugLevel)
	} else {
		base.SetLevel(log.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// Logger returns the underlying structured logger for key-value logging.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	Logger().Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	Logger().Debugf("=== %s ===", name)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	Logger().Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	Logger().Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	Logger().Errorf(format, args...)
}
