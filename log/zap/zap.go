// Package zap adapts a zap.Logger to the cache.Logger interface.
package zap

import (
	"go.uber.org/zap"

	"github.com/slkit/slkit/cache"
)

type Adapter struct{ logger *zap.Logger }

var _ cache.Logger = Adapter{}

// New wraps l. A nil l falls back to zap's global logger.
func New(l *zap.Logger) Adapter {
	if l == nil {
		l = zap.L()
	}
	return Adapter{logger: l}
}

func (a Adapter) Debug(msg string, f cache.Fields) { a.logger.Debug(msg, fields(f)...) }
func (a Adapter) Info(msg string, f cache.Fields)  { a.logger.Info(msg, fields(f)...) }
func (a Adapter) Warn(msg string, f cache.Fields)  { a.logger.Warn(msg, fields(f)...) }
func (a Adapter) Error(msg string, f cache.Fields) { a.logger.Error(msg, fields(f)...) }

func fields(f cache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
