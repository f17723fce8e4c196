package log

import (
	"context"
	"io"
	"log"
	"os"
	"sync/atomic"
)

type ctxKey struct{}

// WithComponent tags every line logged with ctx by a CslLogger.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ctxKey{}, component)
}

type CslLogger struct {
	out   *log.Logger
	debug atomic.Bool
}

func NewCslLogger() *CslLogger {
	return NewCslLoggerTo(os.Stderr, false)
}

func NewCslLoggerTo(w io.Writer, debug bool) *CslLogger {
	l := &CslLogger{out: log.New(w, "", log.LstdFlags|log.Lmsgprefix)}
	l.debug.Store(debug)
	return l
}

// SetDebug toggles Debug output. Safe to call from a config reload.
func (l *CslLogger) SetDebug(debug bool) {
	l.debug.Store(debug)
}

func (l *CslLogger) printf(ctx context.Context, level, format string, args ...interface{}) {
	prefix := "[" + level + "] "
	if ctx != nil {
		if component, ok := ctx.Value(ctxKey{}).(string); ok && component != "" {
			prefix += "[" + component + "] "
		}
	}
	l.out.Printf(prefix+format, args...)
}

func (l *CslLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "INFO", format, args...)
}

func (l *CslLogger) Alert(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "ALERT", format, args...)
}

func (l *CslLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "ERROR", format, args...)
}

func (l *CslLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "WARN", format, args...)
}

func (l *CslLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	if !l.debug.Load() {
		return
	}
	l.printf(ctx, "DEBUG", format, args...)
}

func (l *CslLogger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "CRITICAL", format, args...)
}

func (l *CslLogger) Emergency(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "EMERGENCY", format, args...)
}

func (l *CslLogger) Notice(ctx context.Context, format string, args ...interface{}) {
	l.printf(ctx, "NOTICE", format, args...)
}
