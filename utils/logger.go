package utils

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})
}

// SetVerbose switches the process-wide log level. Verbose maps to debug so
// per-event traces only show up when asked for.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return log.GetLevel() >= logrus.DebugLevel
}

// Verbose logs per-event diagnostics, suppressed unless verbose mode is on.
func Verbose(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	log.Errorf(format, args...)
}
