// Package rlog wires up the structured, per-rover logging every other
// package writes diagnostics through: one logrus.Entry per rover process,
// tagged with the rover's name so multi-rover output stays attributable.
package rlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus.Entry scoped to one rover, writing to out (os.Stdout
// if nil) at level.
func New(roverName string, level logrus.Level, out io.Writer) *logrus.Entry {
	if out == nil {
		out = os.Stdout
	}
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return base.WithField("rover", roverName)
}

// ParseLevel adapts logrus.ParseLevel, falling back to Info on an
// unrecognized name so a bad config value degrades instead of crashing a
// rover process.
func ParseLevel(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
