package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/joy095/roomstay/logger"
)

// LoadEnv loads environment variables from a .env file when one is present.
// In deployed environments the variables come from the process environment
// and the missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			logger.ErrorLogger.Errorf("Failed to load .env file: %v", err)
		}
		return
	}
	logger.InfoLogger.Info("Loaded environment from .env file")
}
