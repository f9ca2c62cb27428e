// Package slog adapts a log/slog Logger to the cache.Logger interface.
package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/slkit/slkit/cache"
)

type Adapter struct{ logger *stdslog.Logger }

var _ cache.Logger = Adapter{}

// New wraps l. A nil l falls back to slog.Default().
func New(l *stdslog.Logger) Adapter {
	if l == nil {
		l = stdslog.Default()
	}
	return Adapter{logger: l}
}

func (a Adapter) Debug(msg string, f cache.Fields) { a.log(stdslog.LevelDebug, msg, f) }
func (a Adapter) Info(msg string, f cache.Fields)  { a.log(stdslog.LevelInfo, msg, f) }
func (a Adapter) Warn(msg string, f cache.Fields)  { a.log(stdslog.LevelWarn, msg, f) }
func (a Adapter) Error(msg string, f cache.Fields) { a.log(stdslog.LevelError, msg, f) }

func (a Adapter) log(level stdslog.Level, msg string, f cache.Fields) {
	attrs := make([]stdslog.Attr, 0, len(f))
	for k, v := range f {
		attrs = append(attrs, stdslog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
