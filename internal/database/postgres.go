package database

import (
	"fmt"
	"log"

	"github.com/bruvio/wellness-helper/internal/config"
	"github.com/bruvio/wellness-helper/internal/database/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&DailySleep{},
		&DailySteps{},
		&DailyHeartRate{},
		&DailyBodyBattery{},
		&DailyStress{},
		&DailyTrainingReadiness{},
		&BloodPressureReading{},
		&PersonalRecord{},
		&SyncSession{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database connection established and migrations completed")
	return db, nil
}

func init() {
	// Supporting indexes that AutoMigrate does not derive from struct tags.
	migrations.Register("202508_supporting_indexes",
		func(db *gorm.DB) error {
			stmts := []string{
				"CREATE INDEX IF NOT EXISTS ix_bp_date ON blood_pressure_readings (date)",
				"CREATE INDEX IF NOT EXISTS ix_pr_achieved_date ON personal_records (achieved_date)",
				"CREATE INDEX IF NOT EXISTS ix_sync_session_valid ON sync_sessions (session_valid)",
			}
			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		func(db *gorm.DB) error {
			stmts := []string{
				"DROP INDEX IF EXISTS ix_bp_date",
				"DROP INDEX IF EXISTS ix_pr_achieved_date",
				"DROP INDEX IF EXISTS ix_sync_session_valid",
			}
			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		})
}
