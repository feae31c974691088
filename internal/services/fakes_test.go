package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// fakeWellnessRepo keeps rows in memory keyed by each entity's natural key so
// tests can observe upsert-not-duplicate behavior without a database.
type fakeWellnessRepo struct {
	sleep             map[string]database.DailySleep
	steps             map[string]database.DailySteps
	heartRate         map[string]database.DailyHeartRate
	bodyBattery       map[string]database.DailyBodyBattery
	stress            map[string]database.DailyStress
	trainingReadiness map[string]database.DailyTrainingReadiness
	bloodPressure     map[string]database.BloodPressureReading
	personalRecords   map[string]database.PersonalRecord

	failTypes map[string]bool
}

func newFakeWellnessRepo() *fakeWellnessRepo {
	return &fakeWellnessRepo{
		sleep:             make(map[string]database.DailySleep),
		steps:             make(map[string]database.DailySteps),
		heartRate:         make(map[string]database.DailyHeartRate),
		bodyBattery:       make(map[string]database.DailyBodyBattery),
		stress:            make(map[string]database.DailyStress),
		trainingReadiness: make(map[string]database.DailyTrainingReadiness),
		bloodPressure:     make(map[string]database.BloodPressureReading),
		personalRecords:   make(map[string]database.PersonalRecord),
		failTypes:         make(map[string]bool),
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (f *fakeWellnessRepo) UpsertSleepBatch(_ context.Context, rows []database.DailySleep) (int, error) {
	if f.failTypes[domain.TypeSleep] {
		return 0, errors.New("sleep batch rejected")
	}
	for _, row := range rows {
		f.sleep[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertStepsBatch(_ context.Context, rows []database.DailySteps) (int, error) {
	if f.failTypes[domain.TypeSteps] {
		return 0, errors.New("steps batch rejected")
	}
	for _, row := range rows {
		f.steps[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertHeartRateBatch(_ context.Context, rows []database.DailyHeartRate) (int, error) {
	if f.failTypes[domain.TypeHeartRate] {
		return 0, errors.New("heart rate batch rejected")
	}
	for _, row := range rows {
		f.heartRate[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertBodyBatteryBatch(_ context.Context, rows []database.DailyBodyBattery) (int, error) {
	if f.failTypes[domain.TypeBodyBattery] {
		return 0, errors.New("body battery batch rejected")
	}
	for _, row := range rows {
		f.bodyBattery[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertStressBatch(_ context.Context, rows []database.DailyStress) (int, error) {
	if f.failTypes[domain.TypeStress] {
		return 0, errors.New("stress batch rejected")
	}
	for _, row := range rows {
		f.stress[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertTrainingReadinessBatch(_ context.Context, rows []database.DailyTrainingReadiness) (int, error) {
	if f.failTypes[domain.TypeTrainingReadiness] {
		return 0, errors.New("training readiness batch rejected")
	}
	for _, row := range rows {
		f.trainingReadiness[dateKey(row.Date)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertBloodPressureBatch(_ context.Context, rows []database.BloodPressureReading) (int, error) {
	if f.failTypes[domain.TypeBloodPressure] {
		return 0, errors.New("blood pressure batch rejected")
	}
	for _, row := range rows {
		f.bloodPressure[row.ReadingTime.Format(time.RFC3339)] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) UpsertPersonalRecordBatch(_ context.Context, rows []database.PersonalRecord) (int, error) {
	if f.failTypes[domain.TypePersonalRecords] {
		return 0, errors.New("personal record batch rejected")
	}
	for _, row := range rows {
		f.personalRecords[row.ActivityType+"|"+row.RecordType] = row
	}
	return len(rows), nil
}

func (f *fakeWellnessRepo) CountInRange(_ context.Context, metricType string, start, end time.Time) (int64, error) {
	if f.failTypes[metricType] {
		return 0, errors.New("count rejected")
	}
	inRange := func(d time.Time) bool {
		return !d.Before(start) && !d.After(end)
	}
	var count int64
	switch metricType {
	case domain.TypeSleep:
		for _, row := range f.sleep {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeSteps:
		for _, row := range f.steps {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeHeartRate:
		for _, row := range f.heartRate {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeBodyBattery:
		for _, row := range f.bodyBattery {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeStress:
		for _, row := range f.stress {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeTrainingReadiness:
		for _, row := range f.trainingReadiness {
			if inRange(row.Date) {
				count++
			}
		}
	case domain.TypeBloodPressure:
		for _, row := range f.bloodPressure {
			if inRange(row.Date) {
				count++
			}
		}
	default:
		return 0, errors.New("unknown metric type: " + metricType)
	}
	return count, nil
}

// fakeClient serves canned daily summaries keyed by date string.
type fakeClient struct {
	authenticated bool
	summaries     map[string]domain.DailySummary
	dayErrors     map[string]error
	fetches       []string
}

func (c *fakeClient) IsAuthenticated(_ context.Context) bool {
	return c.authenticated
}

func (c *fakeClient) LoadSession(_ context.Context) (domain.SessionInfo, error) {
	if !c.authenticated {
		return domain.SessionInfo{}, errors.New("no session")
	}
	return domain.SessionInfo{Authenticated: true, Username: "tester"}, nil
}

func (c *fakeClient) WellnessSummaryForDay(_ context.Context, day time.Time) (domain.DailySummary, error) {
	key := day.Format("2006-01-02")
	c.fetches = append(c.fetches, key)
	if err, exists := c.dayErrors[key]; exists {
		return nil, err
	}
	if summary, exists := c.summaries[key]; exists {
		return summary, nil
	}
	return domain.DailySummary{}, nil
}

// fakeSessionRepo records watermark and error calls.
type fakeSessionRepo struct {
	session     database.SyncSession
	syncedTypes []string
	lastError   string
	errorCount  int
}

func (r *fakeSessionRepo) GetOrCreateSession(_ context.Context, email string) (*database.SyncSession, error) {
	r.session.Email = email
	return &r.session, nil
}

func (r *fakeSessionRepo) MarkTypeSynced(_ context.Context, _, metricType string, _ time.Time) error {
	r.syncedTypes = append(r.syncedTypes, metricType)
	return nil
}

func (r *fakeSessionRepo) RecordSyncError(_ context.Context, _, message string, failures int) error {
	r.lastError = message
	r.errorCount += failures
	return nil
}
