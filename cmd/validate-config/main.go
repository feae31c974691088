package main

import (
	"fmt"
	"os"

	"github.com/bruvio/wellness-helper/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Validating configuration...")

	// Load the .env file if present
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration validation failed:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Configuration details:\n")
	fmt.Printf("  - Garmin Email: %s\n", maskValue(cfg.Garmin.Email))
	fmt.Printf("  - Garmin API Base URL: %s\n", cfg.Garmin.APIBaseURL)
	fmt.Printf("  - Garmin Token File: %s\n", cfg.Garmin.TokenFile)
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - Redis Host: %s\n", cfg.Redis.Host)
	fmt.Printf("  - Sync Days: %d\n", cfg.Sync.Days)
	fmt.Printf("  - Sync Smoothing: %s\n", cfg.Sync.Smoothing)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskValue(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
