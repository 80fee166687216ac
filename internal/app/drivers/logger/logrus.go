package logger

import (
	"os"

	"hims-service/internal/app/config"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger covers the bootstrap phase before the zap logger exists.
func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	if internalConfig.App.Env != "production" {
		logger.SetFormatter(&logrus.TextFormatter{})
		return logger
	}

	logger.SetFormatter(&logrus.JSONFormatter{})
	file, err := os.OpenFile("bootstrap.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logger.Info("Failed to log to file, using default stderr")
		return logger
	}
	logger.SetOutput(file)
	return logger
}
