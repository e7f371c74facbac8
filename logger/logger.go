// Package logger provides prefixed, colored component loggers backed by logrus.
package logger

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

// Logger writes entries tagged with a component prefix.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named component. The level and format come from the
// LOG_LEVEL ("info" by default) and LOG_FORMAT ("json" or text) environment variables.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if out == nil {
		out = os.Stdout
	}

	base := logrus.New()
	base.SetOutput(out)

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	component := prefix
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if color != "" {
			component = color + prefix + colorReset
		}
	}

	return &Logger{entry: base.WithField("component", component)}, nil
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

// Warn logs msg at warning level.
func (l *Logger) Warn(msg string) {
	l.entry.Warn(msg)
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

// With returns a logger carrying an extra field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
