package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. JSON output for log shippers,
// level from LOG_LEVEL (default info).
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
