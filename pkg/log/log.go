// Package log builds the logrus-backed Logger that cmd/gbcore creates and
// passes down to the rest of the module as a logrus.FieldLogger.
package log

import "github.com/sirupsen/logrus"

// Logger is the structured logging surface the emulator core depends on.
type Logger = logrus.FieldLogger

// New returns a Logger configured for readable console output: plain
// text, no timestamps or color codes.
func New(level logrus.Level) Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	})
	return l
}

// ParseLevel resolves one of "debug", "info", "warn", or "error" to a
// logrus.Level, defaulting to Info on an unrecognized name.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
