package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bruvio/wellness-helper/internal/logger"
)

type Config struct {
	Garmin GarminConfig
	DB     DBConfig
	Redis  RedisConfig
	Sync   SyncConfig
	Logger LoggerConfig
}

type GarminConfig struct {
	APIBaseURL string
	TokenFile  string
	Email      string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host string
	Port string
}

type SyncConfig struct {
	Days      int
	Smoothing string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func Load() (*Config, error) {
	cfg := &Config{
		Garmin: GarminConfig{
			APIBaseURL: getEnvOrDefault("GARMIN_API_BASE_URL", "https://connectapi.garmin.com"),
			TokenFile:  getEnvOrDefault("GARMIN_TOKEN_FILE", "tokens/garmin.json"),
			Email:      os.Getenv("GARMIN_EMAIL"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "wellness_helper"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Sync: SyncConfig{
			Days:      getEnvIntOrDefault("SYNC_DAYS", 30),
			Smoothing: getEnvOrDefault("SYNC_SMOOTHING", "none"),
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var problems []string
	if c.Garmin.Email == "" {
		problems = append(problems, "GARMIN_EMAIL is required")
	}
	if c.Sync.Days <= 0 {
		problems = append(problems, "SYNC_DAYS must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
