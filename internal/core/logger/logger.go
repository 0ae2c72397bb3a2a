// internal/core/logger/logger.go
package logger

import (
	"os"

	"github.com/sirupsen/logrus" // Using logrus for structured logging
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	// Logs go to stderr; stdout is reserved for query results so the tool
	// stays pipeable (shodan-ai "..." -f json | jq).
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	})
	log.SetLevel(logrus.WarnLevel) // Quiet by default, --verbose raises it
}

// SetupLogger configures the logger based on the provided level string.
func SetupLogger(level string) {
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	return log
}
