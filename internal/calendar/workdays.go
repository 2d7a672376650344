package calendar

import (
	"time"

	"github.com/username/hours-pulse/pkg/dateutil"
)

// WorkingDays returns the weekdays of the month that are not holidays, in the
// host's local calendar. Out-of-range input yields an empty slice.
func WorkingDays(year, month int, holidays HolidaySet) []time.Time {
	return WorkingDaysIn(year, month, holidays, time.Local)
}

// WorkingDaysIn is WorkingDays evaluated in loc
func WorkingDaysIn(year, month int, holidays HolidaySet, loc *time.Location) []time.Time {
	m := Month{Year: year, Month: month}
	if !m.Valid() || loc == nil {
		return []time.Time{}
	}

	start := dateutil.StartOfMonth(year, m.TimeMonth(), loc)
	end := dateutil.EndOfMonth(year, m.TimeMonth(), loc)

	days := make([]time.Time, 0, end.Day())
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if dateutil.IsWeekend(day) {
			continue
		}
		if holidays.Contains(dateutil.DateKey(day)) {
			continue
		}
		days = append(days, day)
	}

	return days
}

// WorkingDaysPassed returns the working days of the month up to and including
// the day of now. Day boundaries are taken in now's location.
func WorkingDaysPassed(year, month int, holidays HolidaySet, now time.Time) []time.Time {
	if now.IsZero() {
		return []time.Time{}
	}

	today := dateutil.StartOfDay(now)
	all := WorkingDaysIn(year, month, holidays, now.Location())

	passed := make([]time.Time, 0, len(all))
	for _, day := range all {
		if dateutil.StartOfDay(day).After(today) {
			break
		}
		passed = append(passed, day)
	}

	return passed
}
