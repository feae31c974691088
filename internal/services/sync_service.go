package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bruvio/wellness-helper/internal/domain"
	apperrors "github.com/bruvio/wellness-helper/internal/errors"
	"github.com/bruvio/wellness-helper/internal/utils"
)

// validSmoothing lists the accepted smoothing windows. Smoothing is a request
// attribute echoed back in the result; stored records are never smoothed.
var validSmoothing = map[string]bool{
	"none":  true,
	"day":   true,
	"week":  true,
	"month": true,
	"year":  true,
}

// SyncService orchestrates the day-by-day fetch and persist pipeline.
type SyncService struct {
	client   domain.WellnessClient
	wellness *WellnessDataService
	sessions domain.SessionRepository
	email    string
	logger   *slog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	client domain.WellnessClient,
	wellness *WellnessDataService,
	sessions domain.SessionRepository,
	email string,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		client:   client,
		wellness: wellness,
		sessions: sessions,
		email:    email,
		logger:   logger,
	}
}

// SyncWellnessRange fetches every day in [start, end] inclusive and persists
// whatever the provider returned. It never returns a Go error: fetch failures
// for individual days are recorded and the remaining days proceed, and
// authentication problems surface through the RequiresAuth flag.
func (s *SyncService) SyncWellnessRange(ctx context.Context, start, end time.Time, smoothing string) *domain.RangeSyncResult {
	start = utils.Midnight(start)
	end = utils.Midnight(end)

	result := &domain.RangeSyncResult{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		Smoothing:     smoothing,
		DaysRequested: utils.DaysBetween(start, end),
		Persistence:   make(map[string]domain.PersistResult),
	}

	if !validSmoothing[smoothing] {
		result.Error = fmt.Sprintf("invalid smoothing window: %q", smoothing)
		return result
	}
	if end.Before(start) {
		result.Error = "end date precedes start date"
		return result
	}

	if !s.client.IsAuthenticated(ctx) {
		result.RequiresAuth = true
		result.Message = "authentication required, run the login flow first"
		return result
	}

	if _, err := s.sessions.GetOrCreateSession(ctx, s.email); err != nil {
		// Progress tracking is best effort; the sync itself proceeds.
		s.logger.Warn("failed to load sync session", "email", s.email, "error", err)
	}

	batches := make(map[string][]map[string]any)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		summary, err := s.client.WellnessSummaryForDay(ctx, day)
		if err != nil {
			if apperrors.IsAuthError(err) {
				result.RequiresAuth = true
				result.Message = "session expired during sync, run the login flow again"
				break
			}
			s.logger.Warn("failed to fetch daily summary",
				"date", day.Format("2006-01-02"), "error", err)
			result.FailedDays = append(result.FailedDays, domain.DayFailure{
				Date:   day.Format("2006-01-02"),
				Reason: err.Error(),
			})
			continue
		}

		dayStr := day.Format("2006-01-02")
		for _, metricType := range domain.KnownMetricTypes {
			raw, exists := summary[metricType]
			if !exists || raw == nil {
				continue
			}
			for _, rec := range expandRecords(raw) {
				rec["date"] = dayStr
				batches[metricType] = append(batches[metricType], rec)
				result.RecordsSynced++
			}
		}
		result.DaysSynced++
	}

	for _, metricType := range domain.KnownMetricTypes {
		records, exists := batches[metricType]
		if !exists {
			continue
		}
		pr := s.wellness.PersistBatch(ctx, metricType, records)
		result.Persistence[metricType] = pr
		if pr.OK {
			if err := s.sessions.MarkTypeSynced(ctx, s.email, metricType, end); err != nil {
				s.logger.Warn("failed to advance sync watermark",
					"type", metricType, "error", err)
			}
		}
	}

	if len(result.FailedDays) > 0 {
		last := result.FailedDays[len(result.FailedDays)-1]
		if err := s.sessions.RecordSyncError(ctx, s.email, last.Reason, len(result.FailedDays)); err != nil {
			s.logger.Warn("failed to record sync error", "error", err)
		}
	}

	if result.RequiresAuth {
		return result
	}

	result.Success = true
	result.Message = fmt.Sprintf("synced %d of %d days, %d records",
		result.DaysSynced, result.DaysRequested, result.RecordsSynced)
	s.logger.Info("range sync finished",
		"start", result.StartDate, "end", result.EndDate,
		"days_synced", result.DaysSynced, "records", result.RecordsSynced,
		"failed_days", len(result.FailedDays))
	return result
}

// expandRecords normalizes one metric type's raw value into individual
// records. Objects become a single record, lists one record per object
// element. Empty objects and lists yield nothing: a provider key with no
// content carries no data and must not produce a fabricated zero row.
func expandRecords(raw any) []map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		return []map[string]any{v}
	case []any:
		records := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if rec, ok := item.(map[string]any); ok && len(rec) > 0 {
				records = append(records, rec)
			}
		}
		return records
	default:
		return nil
	}
}
