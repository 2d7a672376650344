package dateutil

import (
	"fmt"
	"time"
)

// DateKeyLayout is the layout of holiday keys: zero-padded, 1-based month
const DateKeyLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month (00:00:00) in loc
func StartOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

// EndOfMonth returns the start of the last day of the month in loc
func EndOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

// DaysInMonth returns the number of calendar days in the month
func DaysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month, time.UTC).Day()
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// DateKey formats the local calendar date as YYYY-MM-DD
func DateKey(date time.Time) string {
	return date.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as a local date
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
