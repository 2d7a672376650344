package calendar

import (
	"testing"
	"time"

	"github.com/username/hours-pulse/pkg/dateutil"
)

func countWeekdays(year int, month time.Month) int {
	n := 0
	for d := 1; d <= dateutil.DaysInMonth(year, month); d++ {
		if dateutil.IsWeekday(time.Date(year, month, d, 0, 0, 0, 0, time.UTC)) {
			n++
		}
	}
	return n
}

func TestWorkingDays_NoHolidays(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 0; month < 12; month++ {
			days := WorkingDaysIn(year, month, nil, time.UTC)
			want := countWeekdays(year, time.Month(month+1))

			if len(days) != want {
				t.Errorf("%d-%02d: got %d working days, want %d", year, month+1, len(days), want)
			}

			for i, day := range days {
				if dateutil.IsWeekend(day) {
					t.Errorf("%d-%02d: weekend %s included", year, month+1, dateutil.DateKey(day))
				}
				if i > 0 && !day.After(days[i-1]) {
					t.Errorf("%d-%02d: days not strictly ascending at index %d", year, month+1, i)
				}
			}
		}
	}
}

func TestWorkingDays_March2024(t *testing.T) {
	tests := []struct {
		name     string
		holidays []string
		want     int
	}{
		{"no holidays", nil, 21},
		{"weekday holiday excluded", []string{"2024-03-08"}, 20},
		{"weekend holiday has no effect", []string{"2024-03-09", "2024-03-10"}, 21},
		{"holiday in another month ignored", []string{"2024-04-01"}, 21},
		{"malformed keys never match", []string{"2024-3-8", "08.03.2024", "garbage", ""}, 21},
		{"duplicate keys", []string{"2024-03-08", "2024-03-08", "2024-03-11"}, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := WorkingDaysIn(2024, 2, NewHolidaySet(tt.holidays), time.UTC)
			if len(days) != tt.want {
				t.Errorf("WorkingDays(2024, 2) = %d days, want %d", len(days), tt.want)
			}
			for _, day := range days {
				for _, h := range tt.holidays {
					if dateutil.DateKey(day) == h {
						t.Errorf("holiday %s was not excluded", h)
					}
				}
			}
		})
	}
}

func TestWorkingDays_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"year too small", 1899, 0},
		{"year too large", 2101, 0},
		{"zero year", 0, 5},
		{"negative month", 2024, -1},
		{"month 12", 2024, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := WorkingDays(tt.year, tt.month, nil)
			if days == nil || len(days) != 0 {
				t.Errorf("WorkingDays(%d, %d) = %v, want empty non-nil slice", tt.year, tt.month, days)
			}
		})
	}

	if days := WorkingDaysIn(2024, 2, nil, nil); len(days) != 0 {
		t.Errorf("WorkingDaysIn with nil location = %d days, want 0", len(days))
	}
}

func TestWorkingDays_RangeBoundaries(t *testing.T) {
	if days := WorkingDaysIn(1900, 0, nil, time.UTC); len(days) == 0 {
		t.Error("January 1900 should be accepted")
	}
	if days := WorkingDaysIn(2100, 11, nil, time.UTC); len(days) == 0 {
		t.Error("December 2100 should be accepted")
	}
}

func TestWorkingDaysPassed(t *testing.T) {
	holidays := NewHolidaySet([]string{"2024-03-08"})

	tests := []struct {
		name string
		now  time.Time
		set  HolidaySet
		want int
	}{
		{"mid month friday counts today", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), nil, 11},
		{"late evening same day", time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), nil, 11},
		{"weekend after friday", time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC), nil, 11},
		{"first day of month", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil, 1},
		{"holiday reduces passed days", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), holidays, 10},
		{"before the month", time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC), nil, 0},
		{"after the month", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), nil, 21},
		{"zero clock", time.Time{}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed := WorkingDaysPassed(2024, 2, tt.set, tt.now)
			if len(passed) != tt.want {
				t.Errorf("WorkingDaysPassed() = %d days, want %d", len(passed), tt.want)
			}
		})
	}
}

func TestWorkingDaysPassed_IsPrefix(t *testing.T) {
	holidays := NewHolidaySet([]string{"2024-05-01", "2024-05-09", "2024-05-10"})
	all := WorkingDaysIn(2024, 4, holidays, time.UTC)

	for d := 1; d <= 31; d++ {
		now := time.Date(2024, 5, d, 13, 0, 0, 0, time.UTC)
		passed := WorkingDaysPassed(2024, 4, holidays, now)

		if len(passed) > len(all) {
			t.Fatalf("day %d: passed %d > total %d", d, len(passed), len(all))
		}
		for i := range passed {
			if !passed[i].Equal(all[i]) {
				t.Errorf("day %d: passed[%d] = %s, want %s", d, i,
					dateutil.DateKey(passed[i]), dateutil.DateKey(all[i]))
			}
		}
		if len(passed) > 0 && passed[len(passed)-1].After(now) {
			t.Errorf("day %d: last passed day lies in the future", d)
		}
	}
}

func TestMonth(t *testing.T) {
	m := MonthOf(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if m.Year != 2024 || m.Month != 2 {
		t.Errorf("MonthOf() = %+v, want {2024 2}", m)
	}
	if m.TimeMonth() != time.March {
		t.Errorf("TimeMonth() = %v, want March", m.TimeMonth())
	}
	if m.String() != "2024-03" {
		t.Errorf("String() = %q, want 2024-03", m.String())
	}
	if (Month{Year: 2024, Month: 12}).Valid() {
		t.Error("month index 12 should be invalid")
	}
}
