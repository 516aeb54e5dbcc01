// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log. The LOG_LEVEL and LOG_FORMAT environment variables
// override the given level and format when set; unknown levels fall back to
// info.
func Init(level, format string) {
	InitWithOutput(os.Stderr, level, format)
}

// InitWithOutput is Init writing to w.
func InitWithOutput(w io.Writer, level, format string) {
	Log = logrus.New()

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(w)
}
