package calendar

import (
	"time"

	"github.com/username/hours-pulse/pkg/dateutil"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

// Month identifies a calendar month. Month is zero-based (0 = January).
type Month struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month()) - 1}
}

// TimeMonth converts the zero-based index to time.Month
func (m Month) TimeMonth() time.Month {
	return time.Month(m.Month + 1)
}

// Valid reports whether the month lies within the supported range
func (m Month) Valid() bool {
	return m.Year >= MinYear && m.Year <= MaxYear && m.Month >= 0 && m.Month <= 11
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return dateutil.StartOfMonth(m.Year, m.TimeMonth(), time.UTC).Format("2006-01")
}

// HolidaySet is a lookup of YYYY-MM-DD keys
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from holiday keys. Keys are matched verbatim.
func NewHolidaySet(keys []string) HolidaySet {
	set := make(HolidaySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Contains checks whether key is declared as a holiday
func (h HolidaySet) Contains(key string) bool {
	_, ok := h[key]
	return ok
}
