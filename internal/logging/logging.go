package logging

import (
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel parses and applies a level name such as "debug" or "warn"
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// WithField starts an entry with one field
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

// WithFields starts an entry with several fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// Info logs
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Warnf logs with formatting
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Debugf logs with formatting
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
