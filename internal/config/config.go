package config

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger با APP_ENV=production لاگر JSON سطح Info، وگرنه development
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer Logger.Sync() // flush buffer

	Logger.Info("✅ Zap logger initialized")
}
