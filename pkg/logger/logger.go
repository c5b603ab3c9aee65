package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// New builds the application logger. Production output is JSON; anything
// else gets the human-readable development encoder.
func New() *zap.Logger {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	return logger
}
