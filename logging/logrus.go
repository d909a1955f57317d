package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus logger to the Logger interface. Debug entries
// map to logrus' Debug level and Warn entries to its Warn level; anything
// else logs at Info.
type LogrusLogger struct {
	logger logrus.FieldLogger
}

// NewLogrus returns a Logger backed by the given logrus logger.
func NewLogrus(logger logrus.FieldLogger) *LogrusLogger {
	return &LogrusLogger{logger: logger}
}

// Logf logs the entry at the level matching the classification.
func (l *LogrusLogger) Logf(classification Classification, format string, v ...interface{}) {
	switch classification {
	case Debug:
		l.logger.Debugf(format, v...)
	case Warn:
		l.logger.Warnf(format, v...)
	default:
		l.logger.Infof(format, v...)
	}
}

// WithContext returns a logger whose entries carry the context, satisfying
// ContextLogger.
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	if c, ok := l.logger.(interface {
		WithContext(context.Context) *logrus.Entry
	}); ok {
		return &LogrusLogger{logger: c.WithContext(ctx)}
	}
	return l
}
