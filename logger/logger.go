package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
type ZeroLogger struct {
	zlog     *zerolog.Logger
	redactor *CredentialRedactor
}

// Ensure ZeroLogger implements the interface
var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger with the specified log level. If pretty is true,
// output is formatted for human readability instead of JSON.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithRedactor(level, pretty, NewCredentialRedactor(DefaultRedactConfig()))
}

// NewWithRedactor creates a ZeroLogger with a custom credential redactor.
// A nil redactor disables redaction entirely.
func NewWithRedactor(level string, pretty bool, redactor *CredentialRedactor) *ZeroLogger {
	var l zerolog.Logger

	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l, redactor: redactor}
}

// Redactor exposes the logger's credential redactor so callers can register
// additional sensitive header names.
func (l *ZeroLogger) Redactor() *CredentialRedactor {
	return l.redactor
}

// WithContext returns a logger bound to a context-scoped zerolog logger when
// one is present; otherwise it returns the receiver unchanged.
func (l *ZeroLogger) WithContext(ctx any) Logger {
	if c, ok := ctx.(context.Context); ok {
		zl := zerolog.Ctx(c)
		if zl == nil || zl.GetLevel() == zerolog.Disabled {
			return l
		}
		return &ZeroLogger{zlog: zl, redactor: l.redactor}
	}
	return l
}

// WithFields returns a logger with additional fields attached to all entries.
// Sensitive field values are masked before attachment.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	if l.redactor != nil {
		fields = l.redactor.FilterFields(fields)
	}
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log, redactor: l.redactor}
}
