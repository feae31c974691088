package domain

import "time"

// Metric type keys as they appear in the provider's daily summary payload.
const (
	TypeSleep             = "sleep"
	TypeSteps             = "steps"
	TypeHeartRate         = "heart_rate"
	TypeBodyBattery       = "body_battery"
	TypeStress            = "stress"
	TypeTrainingReadiness = "training_readiness"
	TypeBloodPressure     = "blood_pressure"
	TypePersonalRecords   = "personal_records"
)

// CoreMetricTypes are the five types counted by the wellness summary.
var CoreMetricTypes = []string{
	TypeSleep, TypeSteps, TypeHeartRate, TypeBodyBattery, TypeStress,
}

// KnownMetricTypes lists every metric key the sync pipeline persists,
// in processing order.
var KnownMetricTypes = []string{
	TypeSleep, TypeSteps, TypeHeartRate, TypeBodyBattery, TypeStress,
	TypeTrainingReadiness, TypeBloodPressure, TypePersonalRecords,
}

// DailySummary is one day's raw wellness payload keyed by metric type. Values
// are provider-specific JSON shapes: an object, a list of objects, or nil.
type DailySummary map[string]any

// SessionInfo describes the current authentication session.
type SessionInfo struct {
	Authenticated bool
	Username      string
	Email         string
	ExpiresAt     time.Time
}

// PersistResult reports the outcome of persisting one metric type's batch.
// OK preserves the original "at least one record persisted" contract; the
// counts expose what that boolean hides.
type PersistResult struct {
	Attempted int  `json:"attempted"`
	Persisted int  `json:"persisted"`
	Skipped   int  `json:"skipped"`
	OK        bool `json:"ok"`
}

// DayFailure records a single day the range sync could not fetch.
type DayFailure struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RangeSyncResult is the structured outcome of a range sync. The sync entry
// point never returns a Go error; failures are reported here.
type RangeSyncResult struct {
	Success      bool   `json:"success"`
	RequiresAuth bool   `json:"requires_auth,omitempty"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Smoothing string `json:"smoothing"`

	DaysRequested int `json:"days_requested"`
	DaysSynced    int `json:"days_synced"`
	RecordsSynced int `json:"records_synced"`

	Persistence map[string]PersistResult `json:"persistence,omitempty"`
	FailedDays  []DayFailure             `json:"failed_days,omitempty"`
}

// WellnessSummary reports how much data exists in a lookback window.
type WellnessSummary struct {
	PeriodDays         int              `json:"period_days"`
	DataAvailability   map[string]int64 `json:"data_availability"`
	TotalRecords       int64            `json:"total_records"`
	CoveragePercentage float64          `json:"coverage_percentage"`
	Error              string           `json:"error,omitempty"`
}
