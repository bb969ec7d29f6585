// Package logging carries a logrus entry through a context.Context so that
// flows deep in the engine log with the fields their caller attached.
package logging

import (
	"context"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type loggerContextKey struct{}

// DefaultLevel keeps normal command output free of log noise.
const DefaultLevel = log.WarnLevel

var globalLogger *log.Entry

func init() {
	globalLogger = NewLogger(os.Stderr, DefaultLevel)
}

// NewLogger returns a text-formatted entry writing to w at the given level.
func NewLogger(w io.Writer, level log.Level) *log.Entry {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return log.NewEntry(l)
}

// NewDiscardLogger returns an entry that drops everything.
func NewDiscardLogger() *log.Entry {
	return NewLogger(io.Discard, log.PanicLevel)
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (log.Level, error) {
	return log.ParseLevel(s)
}

// ContextWithLogger returns a context.Context that has been augmented with
// the provided log.Entry.
func ContextWithLogger(ctx context.Context, logger *log.Entry) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts a *log.Entry from the provided context.Context and
// returns it. If no *log.Entry is found, the global warn-level entry is
// returned.
func LoggerFromContext(ctx context.Context) *log.Entry {
	if logger, ok := ctx.Value(loggerContextKey{}).(*log.Entry); ok && logger != nil {
		return logger
	}
	return globalLogger
}

// HasLogger reports whether ctx carries its own *log.Entry.
func HasLogger(ctx context.Context) bool {
	logger, ok := ctx.Value(loggerContextKey{}).(*log.Entry)
	return ok && logger != nil
}
