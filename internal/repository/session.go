package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/domain"
	apperrors "github.com/bruvio/wellness-helper/internal/errors"
	"gorm.io/gorm"
)

// syncColumns maps a metric type to its per-type sync watermark column.
var syncColumns = map[string]string{
	domain.TypeSleep:             "last_sleep_sync",
	domain.TypeSteps:             "last_steps_sync",
	domain.TypeHeartRate:         "last_heart_rate_sync",
	domain.TypeBodyBattery:       "last_body_battery_sync",
	domain.TypeStress:            "last_stress_sync",
	domain.TypeTrainingReadiness: "last_training_readiness_sync",
	domain.TypeBloodPressure:     "last_blood_pressure_sync",
	domain.TypePersonalRecords:   "last_personal_records_sync",
}

// SessionRepository tracks sync progress per external account.
type SessionRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{db: db, logger: logger}
}

// GetOrCreateSession returns the tracking row for an account, creating it on
// first sight.
func (r *SessionRepository) GetOrCreateSession(ctx context.Context, email string) (*database.SyncSession, error) {
	var session database.SyncSession
	err := r.db.WithContext(ctx).
		Where(database.SyncSession{Email: email}).
		FirstOrCreate(&session).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &session, nil
}

// MarkTypeSynced advances the per-type watermark for an account and bumps the
// overall last sync time. Unknown metric types are logged and ignored.
func (r *SessionRepository) MarkTypeSynced(ctx context.Context, email, metricType string, day time.Time) error {
	column, ok := syncColumns[metricType]
	if !ok {
		r.logger.Warn("no sync watermark column for metric type", "type", metricType)
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&database.SyncSession{}).
		Where("email = ?", email).
		Updates(map[string]any{
			column:         day,
			"last_sync_at": time.Now(),
		}).Error
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// RecordSyncError stores the latest failure message and adds the number of
// failed days to the running error counter.
func (r *SessionRepository) RecordSyncError(ctx context.Context, email, message string, failures int) error {
	err := r.db.WithContext(ctx).
		Model(&database.SyncSession{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"last_error":  message,
			"error_count": gorm.Expr("error_count + ?", failures),
		}).Error
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
