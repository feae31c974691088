package utils

import "time"

// SecondsToMinutes converts a duration in seconds to whole minutes (floor).
func SecondsToMinutes(seconds int) int {
	return seconds / 60
}

// MinutesToHours converts a duration in minutes to whole hours (floor).
func MinutesToHours(minutes int) int {
	return minutes / 60
}

// Midnight truncates t to midnight UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from start to end, inclusive
// of both endpoints. Returns 0 if end is before start.
func DaysBetween(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
