// Package logadapter wraps a *logrus.Logger so it satisfies sonari.Logger,
// keeping the logrus import out of the realtime-adjacent packages'
// dependency surface.
package logadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/sonari-audio/engine/sonari"
)

type adapter struct {
	entry *logrus.Entry
}

// New wraps logger as a sonari.Logger.
func New(logger *logrus.Logger) sonari.Logger {
	return adapter{entry: logrus.NewEntry(logger)}
}

func (a adapter) WithFields(fields map[string]interface{}) sonari.Logger {
	return adapter{entry: a.entry.WithFields(logrus.Fields(fields))}
}

func (a adapter) Warn(args ...interface{}) {
	a.entry.Warn(args...)
}
