// Package logrus adapts a logrus entry to the cache.Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/slkit/slkit/cache"
)

type Adapter struct{ entry *logrus.Entry }

var _ cache.Logger = Adapter{}

// New wraps e. A nil e falls back to the standard logrus logger.
func New(e *logrus.Entry) Adapter {
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	return Adapter{entry: e}
}

func (a Adapter) Debug(msg string, f cache.Fields) { a.entry.WithFields(logrus.Fields(f)).Debug(msg) }
func (a Adapter) Info(msg string, f cache.Fields)  { a.entry.WithFields(logrus.Fields(f)).Info(msg) }
func (a Adapter) Warn(msg string, f cache.Fields)  { a.entry.WithFields(logrus.Fields(f)).Warn(msg) }
func (a Adapter) Error(msg string, f cache.Fields) { a.entry.WithFields(logrus.Fields(f)).Error(msg) }
