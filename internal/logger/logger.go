// Package logger configures the application-wide zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the application logger. Development mode (console
// encoding, debug level) is selected with APP_ENV=development.
func New() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
