// Package logging defines the logging surface the library emits through.
// Implementations are injected by callers; the default everywhere is Noop.
package logging

import (
	"context"
)

// Classification is the severity attached to a log entry.
type Classification string

const (
	Warn  Classification = "WARN"
	Debug Classification = "DEBUG"
)

// Logger is an interface for logging entries at certain classifications.
type Logger interface {
	// Logf is expected to support the standard fmt package "verbs".
	Logf(classification Classification, format string, v ...interface{})
}

// ContextLogger is an optional interface a Logger implementation may expose
// that provides the ability to create context aware log entries.
type ContextLogger interface {
	WithContext(context.Context) Logger
}

// WithContext passes ctx to logger if it implements ContextLogger and returns
// the resulting logger; otherwise logger is returned as is.
func WithContext(ctx context.Context, logger Logger) Logger {
	cl, ok := logger.(ContextLogger)
	if !ok {
		return logger
	}
	return cl.WithContext(ctx)
}

// Noop is a Logger implementation that performs no logging.
type Noop struct{}

func (Noop) Logf(Classification, string, ...interface{}) {}
