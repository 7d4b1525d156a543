// Package debug writes structured logs to a file so the TUI keeps the
// terminal to itself.
package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	logger  = newLogger()
	enabled bool
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// Enable starts logging to ~/.config/go-accompany/debug.log.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "go-accompany")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	logger.SetOutput(f)
	enabled = true
	logger.WithField("cat", "debug").Info("logging started")
	return nil
}

// Disable stops logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(io.Discard)
	enabled = false
}

// Log writes one categorized line. No-op unless Enable succeeded.
func Log(category, format string, args ...any) {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if !on {
		return
	}
	logger.WithField("cat", category).Debugf(format, args...)
}

// Error writes one categorized error line.
func Error(category, format string, args ...any) {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if !on {
		return
	}
	logger.WithField("cat", category).Errorf(format, args...)
}
