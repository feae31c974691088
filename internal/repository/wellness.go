package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/domain"
	apperrors "github.com/bruvio/wellness-helper/internal/errors"
	"gorm.io/gorm"
)

// WellnessRepository handles wellness row persistence. Every batch method
// runs inside one transaction and upserts by the entity's natural key:
// an individual record failure is logged and skipped, the rest of the batch
// proceeds. Only transaction-level failures return an error.
type WellnessRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewWellnessRepository creates a new wellness repository
func NewWellnessRepository(db *gorm.DB, logger *slog.Logger) *WellnessRepository {
	return &WellnessRepository{db: db, logger: logger}
}

func (r *WellnessRepository) UpsertSleepBatch(ctx context.Context, rows []database.DailySleep) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailySleep
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up sleep record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist sleep record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

func (r *WellnessRepository) UpsertStepsBatch(ctx context.Context, rows []database.DailySteps) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailySteps
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up steps record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist steps record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

func (r *WellnessRepository) UpsertHeartRateBatch(ctx context.Context, rows []database.DailyHeartRate) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailyHeartRate
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up heart rate record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist heart rate record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

func (r *WellnessRepository) UpsertBodyBatteryBatch(ctx context.Context, rows []database.DailyBodyBattery) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailyBodyBattery
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up body battery record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist body battery record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

func (r *WellnessRepository) UpsertStressBatch(ctx context.Context, rows []database.DailyStress) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailyStress
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up stress record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist stress record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

func (r *WellnessRepository) UpsertTrainingReadinessBatch(ctx context.Context, rows []database.DailyTrainingReadiness) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.DailyTrainingReadiness
			err := tx.Where("date = ?", row.Date).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up training readiness record", "date", row.Date, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist training readiness record", "date", row.Date, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

// UpsertBloodPressureBatch upserts by reading timestamp rather than date:
// a single day can carry several readings.
func (r *WellnessRepository) UpsertBloodPressureBatch(ctx context.Context, rows []database.BloodPressureReading) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.BloodPressureReading
			err := tx.Where("reading_time = ?", row.ReadingTime).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up blood pressure reading", "reading_time", row.ReadingTime, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist blood pressure reading", "reading_time", row.ReadingTime, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

// UpsertPersonalRecordBatch upserts by (activity type, record type). Presence
// of a newer record overwrites the stored one; no "better than previous"
// comparison is made.
func (r *WellnessRepository) UpsertPersonalRecordBatch(ctx context.Context, rows []database.PersonalRecord) (int, error) {
	persisted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]
			var existing database.PersonalRecord
			err := tx.Where("activity_type = ? AND record_type = ?", row.ActivityType, row.RecordType).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Warn("failed to look up personal record",
					"activity_type", row.ActivityType, "record_type", row.RecordType, "error", err)
				continue
			}
			if err == nil {
				row.ID = existing.ID
			}
			if err := tx.Save(row).Error; err != nil {
				r.logger.Warn("failed to persist personal record",
					"activity_type", row.ActivityType, "record_type", row.RecordType, "error", err)
				continue
			}
			persisted++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return persisted, nil
}

// CountInRange counts rows for one metric type whose date falls within
// [start, end] inclusive.
func (r *WellnessRepository) CountInRange(ctx context.Context, metricType string, start, end time.Time) (int64, error) {
	var model any
	switch metricType {
	case domain.TypeSleep:
		model = &database.DailySleep{}
	case domain.TypeSteps:
		model = &database.DailySteps{}
	case domain.TypeHeartRate:
		model = &database.DailyHeartRate{}
	case domain.TypeBodyBattery:
		model = &database.DailyBodyBattery{}
	case domain.TypeStress:
		model = &database.DailyStress{}
	case domain.TypeTrainingReadiness:
		model = &database.DailyTrainingReadiness{}
	case domain.TypeBloodPressure:
		model = &database.BloodPressureReading{}
	default:
		return 0, fmt.Errorf("unknown metric type: %s", metricType)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(model).
		Where("date >= ? AND date <= ?", start, end).
		Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return count, nil
}
