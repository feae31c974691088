package services

import (
	"strconv"
	"time"

	"github.com/bruvio/wellness-helper/internal/utils"
)

// payload is one raw record as decoded from the provider's JSON. Numeric
// values arrive as float64, but accessors tolerate the int variants produced
// by tests and future decoders.
type payload map[string]any

func (p payload) intOr(key string, fallback int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (p payload) floatOr(key string, fallback float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func (p payload) stringOr(key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// date extracts and parses the record's date field. The calendar-date string
// form is tried first, then a millisecond epoch; anything else means the
// record cannot be keyed and must be skipped.
func (p payload) date(key string) (time.Time, bool) {
	return parseDate(p[key])
}

// recordDate resolves a per-day record's date: the provider's own
// calendarDate field wins over the date tag attached during sync.
func (p payload) recordDate() (time.Time, bool) {
	if t, ok := parseDate(p["calendarDate"]); ok {
		return t, true
	}
	return parseDate(p["date"])
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return utils.Midnight(t), true
		}
		if ms, err := strconv.ParseInt(d, 10, 64); err == nil {
			return utils.Midnight(time.UnixMilli(ms).UTC()), true
		}
	case float64:
		return utils.Midnight(time.UnixMilli(int64(d)).UTC()), true
	case int64:
		return utils.Midnight(time.UnixMilli(d).UTC()), true
	case int:
		return utils.Midnight(time.UnixMilli(int64(d)).UTC()), true
	}
	return time.Time{}, false
}

// timestamp parses a full reading timestamp: millisecond epoch or RFC 3339.
func (p payload) timestamp(key string) (time.Time, bool) {
	switch v := p[key].(type) {
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case int64:
		return time.UnixMilli(v).UTC(), true
	case int:
		return time.UnixMilli(int64(v)).UTC(), true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC(), true
		}
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}
