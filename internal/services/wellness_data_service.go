package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bruvio/wellness-helper/internal/database"
	"github.com/bruvio/wellness-helper/internal/domain"
	"github.com/bruvio/wellness-helper/internal/utils"
)

// WellnessDataService maps raw provider records into normalized rows and
// persists them through the wellness repository. Each Persist method handles
// one metric type: records whose date cannot be parsed are logged and
// skipped, everything else goes to the repository as one batch.
type WellnessDataService struct {
	repo   domain.WellnessRepository
	logger *slog.Logger
}

// NewWellnessDataService creates a new wellness data service
func NewWellnessDataService(repo domain.WellnessRepository, logger *slog.Logger) *WellnessDataService {
	return &WellnessDataService{repo: repo, logger: logger}
}

func (s *WellnessDataService) result(attempted, persisted int, batchErr error) domain.PersistResult {
	if batchErr != nil {
		return domain.PersistResult{Attempted: attempted, Skipped: attempted, OK: false}
	}
	return domain.PersistResult{
		Attempted: attempted,
		Persisted: persisted,
		Skipped:   attempted - persisted,
		OK:        persisted > 0,
	}
}

// PersistSleepData persists a batch of sleep records.
func (s *WellnessDataService) PersistSleepData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailySleep, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping sleep record without a parseable date")
			continue
		}
		rows = append(rows, database.DailySleep{
			Date:                 date,
			TotalSleepTimeS:      p.intOr("sleepTimeSeconds", 0),
			DeepSleepS:           p.intOr("deepSleepSeconds", 0),
			LightSleepS:          p.intOr("lightSleepSeconds", 0),
			RemSleepS:            p.intOr("remSleepSeconds", 0),
			AwakeTimeS:           p.intOr("awakeDurationSeconds", 0),
			SleepScore:           p.intOr("overallSleepScore", 0),
			Restlessness:         p.floatOr("restlessMoments", 0),
			EfficiencyPercentage: p.floatOr("sleepEfficiency", 0),
			DataSource:           database.DataSourceGarmin,
			RetrievedAt:          now,
		})
	}
	persisted, err := s.repo.UpsertSleepBatch(ctx, rows)
	if err != nil {
		s.logger.Error("sleep batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistStepsData persists a batch of daily step records.
func (s *WellnessDataService) PersistStepsData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailySteps, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping steps record without a parseable date")
			continue
		}
		rows = append(rows, database.DailySteps{
			Date:           date,
			TotalSteps:     p.intOr("totalSteps", 0),
			StepGoal:       p.intOr("dailyStepGoal", 0),
			TotalDistanceM: p.floatOr("totalDistance", 0),
			CaloriesBurned: p.intOr("wellnessActiveKilocalories", 0),
			CaloriesBMR:    p.intOr("wellnessBmrKilocalories", 0),
			CaloriesActive: p.intOr("activeKilocalories", 0),
			FloorsClimbed:  p.intOr("floorsAscended", 0),
			FloorsGoal:     p.intOr("floorsAscendedGoal", 0),
			DataSource:     database.DataSourceGarmin,
			RetrievedAt:    now,
		})
	}
	persisted, err := s.repo.UpsertStepsBatch(ctx, rows)
	if err != nil {
		s.logger.Error("steps batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistHeartRateData persists a batch of daily heart rate records.
func (s *WellnessDataService) PersistHeartRateData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailyHeartRate, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping heart rate record without a parseable date")
			continue
		}
		rows = append(rows, database.DailyHeartRate{
			Date:        date,
			RestingHR:   p.intOr("restingHeartRate", 0),
			MaxHR:       p.intOr("maxHeartRate", 0),
			AvgHR:       p.intOr("averageHeartRate", 0),
			HRZone1Time: p.intOr("zone1TimeInMinutes", 0),
			HRZone2Time: p.intOr("zone2TimeInMinutes", 0),
			HRZone3Time: p.intOr("zone3TimeInMinutes", 0),
			HRZone4Time: p.intOr("zone4TimeInMinutes", 0),
			HRZone5Time: p.intOr("zone5TimeInMinutes", 0),
			HRVScore:    p.floatOr("hrvScore", 0),
			HRVStatus:   p.stringOr("hrvStatus", ""),
			DataSource:  database.DataSourceGarmin,
			RetrievedAt: now,
		})
	}
	persisted, err := s.repo.UpsertHeartRateBatch(ctx, rows)
	if err != nil {
		s.logger.Error("heart rate batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistBodyBatteryData persists a batch of Body Battery records. The score
// is derived as charged minus drained.
func (s *WellnessDataService) PersistBodyBatteryData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailyBodyBattery, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping body battery record without a parseable date")
			continue
		}
		charged := p.intOr("charged", 0)
		drained := p.intOr("drained", 0)
		rows = append(rows, database.DailyBodyBattery{
			Date:             date,
			BodyBatteryScore: charged - drained,
			ChargedValue:     charged,
			DrainedValue:     drained,
			HighestValue:     p.intOr("highestValue", 0),
			LowestValue:      p.intOr("lowestValue", 0),
			DataSource:       database.DataSourceGarmin,
			RetrievedAt:      now,
		})
	}
	persisted, err := s.repo.UpsertBodyBatteryBatch(ctx, rows)
	if err != nil {
		s.logger.Error("body battery batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistStressData persists a batch of daily stress records. Provider
// durations arrive in seconds and are stored as whole minutes.
func (s *WellnessDataService) PersistStressData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailyStress, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping stress record without a parseable date")
			continue
		}
		rows = append(rows, database.DailyStress{
			Date:            date,
			AvgStressLevel:  p.intOr("averageStressLevel", 0),
			MaxStressLevel:  p.intOr("maxStressLevel", 0),
			RestStressLevel: p.intOr("restStressLevel", 0),
			RestMinutes:     utils.SecondsToMinutes(p.intOr("restStressDuration", 0)),
			LowMinutes:      utils.SecondsToMinutes(p.intOr("lowStressDuration", 0)),
			MediumMinutes:   utils.SecondsToMinutes(p.intOr("mediumStressDuration", 0)),
			HighMinutes:     utils.SecondsToMinutes(p.intOr("highStressDuration", 0)),
			StressQualifier: p.stringOr("stressQualifier", ""),
			DataSource:      database.DataSourceGarmin,
			RetrievedAt:     now,
		})
	}
	persisted, err := s.repo.UpsertStressBatch(ctx, rows)
	if err != nil {
		s.logger.Error("stress batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistTrainingReadinessData persists a batch of training readiness
// records. Recovery time arrives in minutes and is stored as whole hours.
func (s *WellnessDataService) PersistTrainingReadinessData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.DailyTrainingReadiness, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		date, ok := p.recordDate()
		if !ok {
			s.logger.Warn("skipping training readiness record without a parseable date")
			continue
		}
		rows = append(rows, database.DailyTrainingReadiness{
			Date:                   date,
			TrainingReadinessScore: p.intOr("score", 0),
			HRVScore:               p.intOr("hrvWeeklyAverage", 0),
			SleepScore:             p.intOr("sleepScore", 0),
			RecoveryTimeHours:      utils.MinutesToHours(p.intOr("recoveryTime", 0)),
			HRVStatus:              p.stringOr("level", ""),
			SleepStatus:            p.stringOr("feedbackShort", ""),
			StressStatus:           p.stringOr("feedbackLong", ""),
			DataSource:             database.DataSourceGarmin,
			RetrievedAt:            now,
		})
	}
	persisted, err := s.repo.UpsertTrainingReadinessBatch(ctx, rows)
	if err != nil {
		s.logger.Error("training readiness batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistBloodPressureData persists a batch of blood pressure readings. The
// reading timestamp is the natural key; records without one are skipped.
func (s *WellnessDataService) PersistBloodPressureData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.BloodPressureReading, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		readingTime, ok := p.timestamp("measurementTimestamp")
		if !ok {
			s.logger.Warn("skipping blood pressure reading without a parseable timestamp")
			continue
		}
		rows = append(rows, database.BloodPressureReading{
			Date:        utils.Midnight(readingTime),
			ReadingTime: readingTime,
			Systolic:    p.intOr("systolic", 0),
			Diastolic:   p.intOr("diastolic", 0),
			Pulse:       p.intOr("pulse", 0),
			Notes:       p.stringOr("notes", ""),
			DataSource:  database.DataSourceGarmin,
			RetrievedAt: now,
		})
	}
	persisted, err := s.repo.UpsertBloodPressureBatch(ctx, rows)
	if err != nil {
		s.logger.Error("blood pressure batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistPersonalRecordData persists a batch of personal records.
func (s *WellnessDataService) PersistPersonalRecordData(ctx context.Context, records []map[string]any) domain.PersistResult {
	now := time.Now()
	rows := make([]database.PersonalRecord, 0, len(records))
	for _, rec := range records {
		p := payload(rec)
		activityType := p.stringOr("activityType", "")
		recordType := p.stringOr("recordType", "")
		if activityType == "" || recordType == "" {
			s.logger.Warn("skipping personal record without activity and record type")
			continue
		}
		achieved, _ := p.date("recordDate")
		rows = append(rows, database.PersonalRecord{
			ActivityType: activityType,
			RecordType:   recordType,
			RecordValue:  p.floatOr("value", 0),
			RecordUnit:   p.stringOr("unit", ""),
			ActivityID:   p.stringOr("activityId", ""),
			AchievedDate: achieved,
			ActivityName: p.stringOr("activityName", ""),
			Location:     p.stringOr("location", ""),
			DataSource:   database.DataSourceGarmin,
			RetrievedAt:  now,
		})
	}
	persisted, err := s.repo.UpsertPersonalRecordBatch(ctx, rows)
	if err != nil {
		s.logger.Error("personal record batch failed", "error", err)
	}
	return s.result(len(records), persisted, err)
}

// PersistBatch dispatches a batch of records to the persister for its metric
// type. Unknown types report a fully skipped batch.
func (s *WellnessDataService) PersistBatch(ctx context.Context, metricType string, records []map[string]any) domain.PersistResult {
	switch metricType {
	case domain.TypeSleep:
		return s.PersistSleepData(ctx, records)
	case domain.TypeSteps:
		return s.PersistStepsData(ctx, records)
	case domain.TypeHeartRate:
		return s.PersistHeartRateData(ctx, records)
	case domain.TypeBodyBattery:
		return s.PersistBodyBatteryData(ctx, records)
	case domain.TypeStress:
		return s.PersistStressData(ctx, records)
	case domain.TypeTrainingReadiness:
		return s.PersistTrainingReadinessData(ctx, records)
	case domain.TypeBloodPressure:
		return s.PersistBloodPressureData(ctx, records)
	case domain.TypePersonalRecords:
		return s.PersistPersonalRecordData(ctx, records)
	default:
		s.logger.Warn("no persister for metric type", "type", metricType)
		return domain.PersistResult{Attempted: len(records), Skipped: len(records)}
	}
}

// GetWellnessSummary reports stored data availability over a lookback window
// ending today. Coverage is the stored share of one record per core metric
// type per day, capped at 100.
func (s *WellnessDataService) GetWellnessSummary(ctx context.Context, days int) domain.WellnessSummary {
	summary := domain.WellnessSummary{
		PeriodDays:       days,
		DataAvailability: make(map[string]int64),
	}
	if days <= 0 {
		summary.Error = "period must be positive"
		return summary
	}

	// Window is [today-N, today], inclusive of both ends.
	end := utils.Midnight(time.Now())
	start := end.AddDate(0, 0, -days)

	for _, metricType := range domain.CoreMetricTypes {
		count, err := s.repo.CountInRange(ctx, metricType, start, end)
		if err != nil {
			s.logger.Error("failed to count stored records", "type", metricType, "error", err)
			return domain.WellnessSummary{
				PeriodDays:       days,
				DataAvailability: make(map[string]int64),
				Error:            err.Error(),
			}
		}
		summary.DataAvailability[metricType] = count
		summary.TotalRecords += count
	}

	expected := float64(days * len(domain.CoreMetricTypes))
	coverage := float64(summary.TotalRecords) / expected * 100
	if coverage > 100 {
		coverage = 100
	}
	summary.CoveragePercentage = coverage
	return summary
}
