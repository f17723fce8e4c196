package log

import "context"

type Logger interface {
	Info(ctx context.Context, format string, args ...interface{})
	Alert(ctx context.Context, format string, args ...interface{})
	Error(ctx context.Context, format string, args ...interface{})
	Warn(ctx context.Context, format string, args ...interface{})
	Debug(ctx context.Context, format string, args ...interface{})
	Notice(ctx context.Context, format string, args ...interface{})
	Critical(ctx context.Context, format string, args ...interface{})
	Emergency(ctx context.Context, format string, args ...interface{})
}

// Nop discards everything. Handy in tests.
type Nop struct{}

func (Nop) Info(context.Context, string, ...interface{})      {}
func (Nop) Alert(context.Context, string, ...interface{})     {}
func (Nop) Error(context.Context, string, ...interface{})     {}
func (Nop) Warn(context.Context, string, ...interface{})      {}
func (Nop) Debug(context.Context, string, ...interface{})     {}
func (Nop) Notice(context.Context, string, ...interface{})    {}
func (Nop) Critical(context.Context, string, ...interface{})  {}
func (Nop) Emergency(context.Context, string, ...interface{}) {}
