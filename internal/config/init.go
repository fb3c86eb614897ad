package config

import (
	"os"

	"github.com/joho/godotenv"
)

func Init() {
	// بارگذاری .env
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	// آدرس بک‌اند BhasaConnect
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		Logger.Fatal("API_BASE_URL is not set")
	}

	// مسیر فایل ذخیره‌سازی توکن‌ها (وقتی TOKEN_STORE=redis نیست)
	storagePath := os.Getenv("STORAGE_PATH")
	if storagePath == "" && os.Getenv("TOKEN_STORE") != "redis" {
		Logger.Fatal("STORAGE_PATH is not set")
	}
}
