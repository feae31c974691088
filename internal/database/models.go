package database

import "time"

// DataSourceGarmin is the provenance marker written to every row.
const DataSourceGarmin = "garminconnect"

// DailySleep holds one night of sleep analytics, one row per calendar date.
type DailySleep struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	TotalSleepTimeS      int
	DeepSleepS           int
	LightSleepS          int
	RemSleepS            int
	AwakeTimeS           int
	SleepScore           int
	Restlessness         float64
	EfficiencyPercentage float64

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// DailySteps holds daily step and calorie totals, one row per calendar date.
type DailySteps struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	TotalSteps     int
	StepGoal       int
	TotalDistanceM float64
	CaloriesBurned int
	CaloriesBMR    int
	CaloriesActive int
	FloorsClimbed  int
	FloorsGoal     int

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// DailyHeartRate holds daily heart rate and HRV metrics, one row per calendar date.
type DailyHeartRate struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	RestingHR int
	MaxHR     int
	AvgHR     int

	// Time in heart rate zones, minutes
	HRZone1Time int
	HRZone2Time int
	HRZone3Time int
	HRZone4Time int
	HRZone5Time int

	HRVScore  float64
	HRVStatus string `gorm:"size:50"`

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// DailyBodyBattery holds daily Body Battery energy metrics, one row per calendar date.
type DailyBodyBattery struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	BodyBatteryScore int
	ChargedValue     int
	DrainedValue     int
	HighestValue     int
	LowestValue      int

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// DailyStress holds daily stress levels and per-level durations, one row per
// calendar date. Duration fields are stored in minutes.
type DailyStress struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	AvgStressLevel  int
	MaxStressLevel  int
	RestStressLevel int

	RestMinutes   int
	LowMinutes    int
	MediumMinutes int
	HighMinutes   int

	StressQualifier string `gorm:"size:20"`

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// DailyTrainingReadiness holds daily training readiness scores, one row per
// calendar date.
type DailyTrainingReadiness struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`

	TrainingReadinessScore int
	HRVScore               int
	SleepScore             int
	RecoveryTimeHours      int

	HRVStatus    string `gorm:"size:50"`
	SleepStatus  string `gorm:"size:50"`
	StressStatus string `gorm:"size:50"`

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// BloodPressureReading holds a single blood pressure measurement. Unlike the
// per-day entities a date can carry multiple readings; the natural key is the
// reading timestamp.
type BloodPressureReading struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"type:date;index"`
	ReadingTime time.Time `gorm:"uniqueIndex"`

	Systolic  int
	Diastolic int
	Pulse     int
	Notes     string `gorm:"type:text"`

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// PersonalRecord holds an achieved best, keyed by (activity type, record type).
type PersonalRecord struct {
	ID           uint   `gorm:"primaryKey"`
	ActivityType string `gorm:"size:50;uniqueIndex:idx_pr_activity_record"`
	RecordType   string `gorm:"size:50;uniqueIndex:idx_pr_activity_record"`

	RecordValue  float64
	RecordUnit   string `gorm:"size:20"`
	ActivityID   string `gorm:"size:100"`
	AchievedDate time.Time
	ActivityName string `gorm:"size:255"`
	Location     string `gorm:"size:255"`

	DataSource  string `gorm:"size:50"`
	RetrievedAt time.Time
}

// SyncSession tracks sync progress and errors per external account email.
type SyncSession struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"size:255;uniqueIndex"`

	AuthenticatedAt time.Time
	LastSyncAt      time.Time
	SessionValid    bool `gorm:"default:true"`

	LastSleepSync             time.Time `gorm:"type:date"`
	LastStepsSync             time.Time `gorm:"type:date"`
	LastHeartRateSync         time.Time `gorm:"type:date"`
	LastBodyBatterySync       time.Time `gorm:"type:date"`
	LastStressSync            time.Time `gorm:"type:date"`
	LastTrainingReadinessSync time.Time `gorm:"type:date"`
	LastBloodPressureSync     time.Time `gorm:"type:date"`
	LastPersonalRecordsSync   time.Time `gorm:"type:date"`

	LastError  string `gorm:"type:text"`
	ErrorCount int    `gorm:"default:0"`
}
