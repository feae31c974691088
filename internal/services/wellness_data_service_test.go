package services

import (
	"context"
	"testing"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/domain"
	"github.com/bruvio/wellness-helper/internal/utils"
)

func TestPersistSleepDataUpsertsByDate(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	first := []map[string]any{{
		"date":             "2025-03-01",
		"sleepTimeSeconds": float64(25200),
	}}
	res := svc.PersistSleepData(context.Background(), first)
	if !res.OK || res.Persisted != 1 {
		t.Fatalf("first write: got %+v", res)
	}

	second := []map[string]any{{
		"date":              "2025-03-01",
		"sleepTimeSeconds":  float64(28800),
		"overallSleepScore": float64(82),
	}}
	res = svc.PersistSleepData(context.Background(), second)
	if !res.OK || res.Persisted != 1 {
		t.Fatalf("second write: got %+v", res)
	}

	if len(repo.sleep) != 1 {
		t.Fatalf("expected one row after re-sync, got %d", len(repo.sleep))
	}
	row := repo.sleep["2025-03-01"]
	if row.TotalSleepTimeS != 28800 {
		t.Errorf("expected updated sleep time 28800, got %d", row.TotalSleepTimeS)
	}
	if row.SleepScore != 82 {
		t.Errorf("expected updated sleep score 82, got %d", row.SleepScore)
	}
	if row.DataSource != database.DataSourceGarmin {
		t.Errorf("expected data source %q, got %q", database.DataSourceGarmin, row.DataSource)
	}
	if row.RetrievedAt.IsZero() {
		t.Error("expected retrieved_at to be set")
	}
}

func TestPersistSleepDataUsesProviderCalendarDate(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{{
		"calendarDate":     "2025-03-01",
		"date":             "2025-02-28", // sync tag loses to the provider's own field
		"sleepTimeSeconds": float64(25200),
	}}
	res := svc.PersistSleepData(context.Background(), records)
	if !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if _, exists := repo.sleep["2025-03-01"]; !exists {
		t.Errorf("expected row keyed by calendarDate, stored keys: %v", mapKeys(repo.sleep))
	}
}

func TestPersistStressDataConvertsDurations(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{{
		"date":               "2025-03-02",
		"averageStressLevel": float64(31),
		"restStressDuration": float64(90), // 1.5 minutes floors to 1
		"lowStressDuration":  float64(59), // under a minute floors to 0
		"highStressDuration": float64(3600),
	}}
	res := svc.PersistStressData(context.Background(), records)
	if !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}

	row := repo.stress["2025-03-02"]
	if row.RestMinutes != 1 {
		t.Errorf("rest: got %d minutes, want 1", row.RestMinutes)
	}
	if row.LowMinutes != 0 {
		t.Errorf("low: got %d minutes, want 0", row.LowMinutes)
	}
	if row.HighMinutes != 60 {
		t.Errorf("high: got %d minutes, want 60", row.HighMinutes)
	}
}

func TestPersistBodyBatteryDerivesScore(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{{
		"date":    "2025-03-03",
		"charged": float64(70),
		"drained": float64(45),
	}}
	if res := svc.PersistBodyBatteryData(context.Background(), records); !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if got := repo.bodyBattery["2025-03-03"].BodyBatteryScore; got != 25 {
		t.Errorf("score: got %d, want 25", got)
	}
}

func TestPersistTrainingReadinessConvertsRecoveryTime(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{{
		"date":         "2025-03-03",
		"score":        float64(67),
		"recoveryTime": float64(150), // minutes, floors to 2 hours
	}}
	if res := svc.PersistTrainingReadinessData(context.Background(), records); !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if got := repo.trainingReadiness["2025-03-03"].RecoveryTimeHours; got != 2 {
		t.Errorf("recovery: got %d hours, want 2", got)
	}
}

func TestPersistSkipsUnparseableDates(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{
		{"date": "2025-03-04", "totalSteps": float64(9000)},
		{"date": "soon", "totalSteps": float64(1)},
		{"totalSteps": float64(2)},
	}
	res := svc.PersistStepsData(context.Background(), records)
	if !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if res.Attempted != 3 || res.Persisted != 1 || res.Skipped != 2 {
		t.Errorf("got %+v, want attempted=3 persisted=1 skipped=2", res)
	}
	if len(repo.steps) != 1 {
		t.Errorf("expected one stored row, got %d", len(repo.steps))
	}
}

func TestPersistBatchErrorReportsNotOK(t *testing.T) {
	repo := newFakeWellnessRepo()
	repo.failTypes[domain.TypeSleep] = true
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{{"date": "2025-03-01"}}
	res := svc.PersistSleepData(context.Background(), records)
	if res.OK {
		t.Error("expected OK=false on batch failure")
	}
	if res.Persisted != 0 || res.Skipped != 1 {
		t.Errorf("got %+v, want persisted=0 skipped=1", res)
	}
}

func TestPersistEmptyBatchNotOK(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	res := svc.PersistHeartRateData(context.Background(), nil)
	if res.OK {
		t.Error("expected OK=false for an empty batch")
	}
}

func TestPersistPersonalRecordsKeyedByActivityAndType(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{
		{"activityType": "running", "recordType": "5k", "value": float64(1200), "unit": "s"},
		{"activityType": "running", "recordType": "5k", "value": float64(1150), "unit": "s"},
		{"activityType": "cycling", "recordType": "max_power", "value": float64(840), "unit": "w"},
		{"recordType": "orphan"},
	}
	res := svc.PersistPersonalRecordData(context.Background(), records)
	if !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if len(repo.personalRecords) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(repo.personalRecords))
	}
	if got := repo.personalRecords["running|5k"].RecordValue; got != 1150 {
		t.Errorf("expected newest value 1150, got %v", got)
	}
}

func TestPersistBloodPressureKeyedByReadingTime(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())

	records := []map[string]any{
		{"measurementTimestamp": float64(1740839400000), "systolic": float64(120), "diastolic": float64(80)},
		{"measurementTimestamp": float64(1740843000000), "systolic": float64(118), "diastolic": float64(79)},
		{"systolic": float64(999)},
	}
	res := svc.PersistBloodPressureData(context.Background(), records)
	if !res.OK {
		t.Fatalf("persist failed: %+v", res)
	}
	if res.Persisted != 2 || res.Skipped != 1 {
		t.Errorf("got %+v, want persisted=2 skipped=1", res)
	}
	reading := repo.bloodPressure["2025-03-01T14:30:00Z"]
	if reading.Systolic != 120 {
		t.Errorf("systolic: got %d, want 120", reading.Systolic)
	}
	if !reading.Date.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date: got %v, want reading day at midnight", reading.Date)
	}
}

func TestGetWellnessSummaryCoverage(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())
	ctx := context.Background()

	// Today and yesterday fully covered across all five core types.
	today := utils.Midnight(time.Now())
	for offset := 0; offset < 2; offset++ {
		date := today.AddDate(0, 0, -offset).Format("2006-01-02")
		svc.PersistSleepData(ctx, []map[string]any{{"date": date}})
		svc.PersistStepsData(ctx, []map[string]any{{"date": date}})
		svc.PersistHeartRateData(ctx, []map[string]any{{"date": date}})
		svc.PersistBodyBatteryData(ctx, []map[string]any{{"date": date}})
		svc.PersistStressData(ctx, []map[string]any{{"date": date}})
	}

	summary := svc.GetWellnessSummary(ctx, 4)
	if summary.Error != "" {
		t.Fatalf("unexpected error: %s", summary.Error)
	}
	if summary.TotalRecords != 10 {
		t.Errorf("total: got %d, want 10", summary.TotalRecords)
	}
	// 10 of 20 expected records
	if summary.CoveragePercentage != 50 {
		t.Errorf("coverage: got %v, want 50", summary.CoveragePercentage)
	}

	full := svc.GetWellnessSummary(ctx, 1)
	if full.CoveragePercentage != 100 {
		t.Errorf("coverage should cap at 100, got %v", full.CoveragePercentage)
	}
}

func TestGetWellnessSummaryIncludesWindowStartBoundary(t *testing.T) {
	repo := newFakeWellnessRepo()
	svc := NewWellnessDataService(repo, testLogger())
	ctx := context.Background()

	// A row dated exactly N days ago sits on the window's start edge.
	boundary := utils.Midnight(time.Now()).AddDate(0, 0, -4).Format("2006-01-02")
	svc.PersistSleepData(ctx, []map[string]any{{"date": boundary}})

	summary := svc.GetWellnessSummary(ctx, 4)
	if summary.Error != "" {
		t.Fatalf("unexpected error: %s", summary.Error)
	}
	if got := summary.DataAvailability[domain.TypeSleep]; got != 1 {
		t.Errorf("row dated today-4 must be inside a 4-day lookback, got count %d", got)
	}
}

func TestGetWellnessSummaryErrorZeroesResult(t *testing.T) {
	repo := newFakeWellnessRepo()
	repo.failTypes[domain.TypeSleep] = true
	svc := NewWellnessDataService(repo, testLogger())

	summary := svc.GetWellnessSummary(context.Background(), 7)
	if summary.Error == "" {
		t.Fatal("expected an error message")
	}
	if summary.TotalRecords != 0 || summary.CoveragePercentage != 0 {
		t.Errorf("expected zeroed counts, got %+v", summary)
	}
	if summary.PeriodDays != 7 {
		t.Errorf("period: got %d, want 7", summary.PeriodDays)
	}
}
