// Package log wraps logrus behind the small logging surface the rest of
// the application uses: printf-style level functions plus structured
// fields via F and LogWithFields.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var std = NewLogger()

// Logger wraps a logrus logger.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// NewLogger creates a logger with timestamped text output.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// SetDebug toggles debug-level output on the package logger.
func SetDebug(debug bool) {
	if debug {
		std.l.SetLevel(logrus.DebugLevel)
	} else {
		std.l.SetLevel(logrus.InfoLevel)
	}
}

// SetLevel sets the package logger level from a logrus level name
// ("debug", "info", "warn", "error"). Unknown names leave the level
// unchanged and return the parse error.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.l.SetLevel(parsed)
	return nil
}

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a structured logging field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// LogWithFields returns an entry carrying the given structured fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return std.l.WithFields(lf)
}

// Debug logs a formatted message at debug level
func Debug(format string, args ...interface{}) {
	std.l.Debugf(format, args...)
}

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	std.l.Infof(format, args...)
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	std.l.Warnf(format, args...)
}

// Error logs a formatted message at error level
func Error(format string, args ...interface{}) {
	std.l.Errorf(format, args...)
}

// Info logs a formatted message at info level
func (lg *Logger) Info(format string, args ...interface{}) {
	lg.l.Infof(format, args...)
}

// Warn logs a formatted message at warn level
func (lg *Logger) Warn(format string, args ...interface{}) {
	lg.l.Warnf(format, args...)
}

// Error logs a formatted message at error level
func (lg *Logger) Error(format string, args ...interface{}) {
	lg.l.Errorf(format, args...)
}

// Debug logs a formatted message at debug level
func (lg *Logger) Debug(format string, args ...interface{}) {
	lg.l.Debugf(format, args...)
}
