package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bruvio/wellness-helper/internal/config"
	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/garmin"
	"github.com/bruvio/wellness-helper/internal/logger"
	"github.com/bruvio/wellness-helper/internal/repository"
	"github.com/bruvio/wellness-helper/internal/services"
	"github.com/bruvio/wellness-helper/internal/state"
	"github.com/bruvio/wellness-helper/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Wellness Helper sync...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully")

	appLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established and migrations completed")

	// Redis is optional; without it sessions are cached in process memory.
	var states state.Manager
	if cfg.Redis.Host != "" {
		redisStates, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			log.Printf("Warning: Redis unavailable, using in-memory sessions: %v", err)
			states = state.NewMemoryManager()
		} else {
			states = redisStates
		}
	} else {
		states = state.NewMemoryManager()
	}
	defer func() {
		if err := states.Close(); err != nil {
			appLogger.Warn("failed to close state manager", "error", err)
		}
	}()

	// Initialize services
	client := garmin.NewClient(cfg.Garmin, states, appLogger)
	wellnessRepo := repository.NewWellnessRepository(db, appLogger)
	sessionRepo := repository.NewSessionRepository(db, appLogger)
	wellnessService := services.NewWellnessDataService(wellnessRepo, appLogger)
	syncService := services.NewSyncService(client, wellnessService, sessionRepo, cfg.Garmin.Email, appLogger)
	log.Println("Services initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	end := utils.Midnight(time.Now())
	start := end.AddDate(0, 0, -(cfg.Sync.Days - 1))

	result := syncService.SyncWellnessRange(ctx, start, end, cfg.Sync.Smoothing)
	printJSON(result)
	if result.RequiresAuth {
		log.Fatalf("Authentication required: %s", result.Message)
	}
	if !result.Success {
		log.Fatalf("Sync failed: %s", result.Error)
	}

	summary := wellnessService.GetWellnessSummary(ctx, cfg.Sync.Days)
	printJSON(summary)
	log.Println("Sync finished")
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to render result: %v", err)
		return
	}
	os.Stdout.Write(append(data, '\n'))
}
