package domain

import (
	"context"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
)

// WellnessClient is the external API collaborator. Authentication protocol
// details live behind this interface; the sync pipeline only needs to know
// whether a session exists and how to fetch one day's summary.
type WellnessClient interface {
	IsAuthenticated(ctx context.Context) bool
	LoadSession(ctx context.Context) (SessionInfo, error)
	WellnessSummaryForDay(ctx context.Context, day time.Time) (DailySummary, error)
}

// WellnessRepository persists normalized wellness rows. Each batch method
// upserts by the entity's natural key inside a single transaction and returns
// the number of records persisted; individual record failures are logged and
// skipped, only batch-level failures surface as an error.
type WellnessRepository interface {
	UpsertSleepBatch(ctx context.Context, rows []database.DailySleep) (int, error)
	UpsertStepsBatch(ctx context.Context, rows []database.DailySteps) (int, error)
	UpsertHeartRateBatch(ctx context.Context, rows []database.DailyHeartRate) (int, error)
	UpsertBodyBatteryBatch(ctx context.Context, rows []database.DailyBodyBattery) (int, error)
	UpsertStressBatch(ctx context.Context, rows []database.DailyStress) (int, error)
	UpsertTrainingReadinessBatch(ctx context.Context, rows []database.DailyTrainingReadiness) (int, error)
	UpsertBloodPressureBatch(ctx context.Context, rows []database.BloodPressureReading) (int, error)
	UpsertPersonalRecordBatch(ctx context.Context, rows []database.PersonalRecord) (int, error)

	CountInRange(ctx context.Context, metricType string, start, end time.Time) (int64, error)
}

// SessionRepository tracks sync progress per external account.
type SessionRepository interface {
	GetOrCreateSession(ctx context.Context, email string) (*database.SyncSession, error)
	MarkTypeSynced(ctx context.Context, email, metricType string, day time.Time) error
	RecordSyncError(ctx context.Context, email, message string, failures int) error
}
