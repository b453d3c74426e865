// Package logger wraps the shared logrus logger used for diagnostics.
// Run output goes to stdout; diagnostics always go to the logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

var rootLogger = newLogger(os.Stderr)

func newLogger(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return l
}

// Configure sets the output and verbosity of the root logger.
func Configure(out io.Writer, verbose bool) {
	if out == nil {
		out = os.Stderr
	}
	rootLogger.SetOutput(out)
	if verbose {
		rootLogger.SetLevel(logrus.DebugLevel)
	} else {
		rootLogger.SetLevel(logrus.WarnLevel)
	}
}

// Root returns the shared logger.
func Root() *Logger {
	return rootLogger
}

// SetRoot replaces the shared logger; nil restores a stderr logger.
func SetRoot(l *Logger) {
	if l == nil {
		l = newLogger(os.Stderr)
	}
	rootLogger = l
}

// Component returns an entry tagged with the component name.
func Component(name string) *LogEntry {
	return logrus.NewEntry(rootLogger).WithField("component", name)
}
