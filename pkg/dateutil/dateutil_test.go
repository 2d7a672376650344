package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	input := time.Date(2024, 3, 15, 0, 30, 0, 0, loc)

	got := StartOfDay(input)
	if !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, loc)) || got.Location() != loc {
		t.Errorf("StartOfDay(%v) = %v, want midnight in the same zone", input, got)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantLast int
	}{
		{"January has 31 days", 2025, time.January, 31},
		{"February leap year", 2024, time.February, 29},
		{"February common year", 2025, time.February, 28},
		{"April has 30 days", 2025, time.April, 30},
		{"December rolls over correctly", 2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := StartOfMonth(tt.year, tt.month, time.UTC)
			end := EndOfMonth(tt.year, tt.month, time.UTC)

			if start.Day() != 1 || start.Month() != tt.month {
				t.Errorf("StartOfMonth = %v, want day 1 of %v", start, tt.month)
			}
			if end.Day() != tt.wantLast || end.Month() != tt.month {
				t.Errorf("EndOfMonth = %v, want day %d of %v", end, tt.wantLast, tt.month)
			}
			if got := DaysInMonth(tt.year, tt.month); got != tt.wantLast {
				t.Errorf("DaysInMonth = %d, want %d", got, tt.wantLast)
			}
		})
	}
}

func TestIsWeekday(t *testing.T) {
	// 2024-03-04 is a Monday
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		want := i < 5
		if got := IsWeekday(day); got != want {
			t.Errorf("IsWeekday(%s) = %v, want %v", day.Format("2006-01-02 Mon"), got, want)
		}
		if IsWeekend(day) == want {
			t.Errorf("IsWeekend(%s) should be the negation of IsWeekday", day.Format("2006-01-02 Mon"))
		}
	}
}

func TestDateKey(t *testing.T) {
	input := time.Date(2024, 3, 5, 22, 10, 0, 0, time.UTC)
	if got := DateKey(input); got != "2024-03-05" {
		t.Errorf("DateKey(%v) = %q, want %q", input, got, "2024-03-05")
	}

	parsed, err := ParseDateKey("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDateKey() error = %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.March || parsed.Day() != 5 {
		t.Errorf("ParseDateKey() = %v, want 2024-03-05", parsed)
	}

	for _, bad := range []string{"", "2024-3-5", "05.03.2024", "2024-13-01"} {
		if _, err := ParseDateKey(bad); err == nil {
			t.Errorf("ParseDateKey(%q) expected error, got nil", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local),
			false,
		},
		{
			"Day-first with dots",
			"15.01.2025",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local),
			false,
		},
		{
			"ISO with time",
			"2025-01-15T10:30:00",
			time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local),
			false,
		},
		{
			"RFC3339 keeps its offset",
			"2024-03-15T12:00:00Z",
			time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Garbage",
			"yesterday",
			time.Time{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}
