package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/internal/settings"
)

// DefaultOnTrackTolerance is how far actual may drift from expected and still count as on track
const DefaultOnTrackTolerance = 30 * time.Minute

var (
	ErrInvalidClock      = errors.New("invalid current time")
	ErrInvalidDailyHours = errors.New("invalid daily hours")

	// ErrNotApplicable is returned when the viewed month is not the current one
	ErrNotApplicable = errors.New("progress is only tracked for the current month")
)

// ProgressData is the comparison of logged hours against the month-to-date pace
type ProgressData struct {
	ActualHours          TimeData `json:"actualHours" yaml:"actual_hours"`
	ExpectedHours        TimeData `json:"expectedHours" yaml:"expected_hours"`
	Difference           Delta    `json:"difference" yaml:"difference"`
	IsOnTrack            bool     `json:"isOnTrack" yaml:"is_on_track"`
	WorkingDaysPassed    int      `json:"workingDaysPassed" yaml:"working_days_passed"`
	TotalWorkingDays     int      `json:"totalWorkingDays" yaml:"total_working_days"`
	RemainingWorkingDays int      `json:"remainingWorkingDays" yaml:"remaining_working_days"`
	ProgressPercentage   float64  `json:"progressPercentage" yaml:"progress_percentage"`
}

// IsAhead reports whether actual hours are at or above expected
func (p *ProgressData) IsAhead() bool {
	return p.Difference.Ahead
}

// Calculator computes progress with a configurable on-track tolerance
type Calculator struct {
	OnTrackTolerance time.Duration
}

// NewCalculator creates a calculator. A negative tolerance falls back to the default.
func NewCalculator(tolerance time.Duration) *Calculator {
	if tolerance < 0 {
		tolerance = DefaultOnTrackTolerance
	}
	return &Calculator{OnTrackTolerance: tolerance}
}

// Compute calculates progress with DefaultOnTrackTolerance
func Compute(actualText string, s settings.Settings, view *calendar.Month, now time.Time) (*ProgressData, error) {
	return NewCalculator(DefaultOnTrackTolerance).Compute(actualText, s, view, now)
}

// Compute compares actualText against the pace expected by now.
//
// view is the calendar month being looked at; nil means the month of now.
// Progress is only defined for the current month; a view of any other month
// returns ErrNotApplicable. A zero clock or unusable daily hours are errors too.
func (c *Calculator) Compute(actualText string, s settings.Settings, view *calendar.Month, now time.Time) (*ProgressData, error) {
	if now.IsZero() {
		return nil, fmt.Errorf("compute progress: %w", ErrInvalidClock)
	}
	if math.IsNaN(s.DailyHours) || math.IsInf(s.DailyHours, 0) || s.DailyHours < 0 {
		return nil, fmt.Errorf("compute progress: %w: %v", ErrInvalidDailyHours, s.DailyHours)
	}

	current := calendar.MonthOf(now)
	month := current
	if view != nil {
		if *view != current {
			return nil, fmt.Errorf("compute progress for %s: %w", view, ErrNotApplicable)
		}
		month = *view
	}

	actual := ParseDuration(actualText)
	holidays := calendar.NewHolidaySet(s.Holidays)
	workingDays := calendar.WorkingDaysIn(month.Year, month.Month, holidays, now.Location())
	daysPassed := calendar.WorkingDaysPassed(month.Year, month.Month, holidays, now)

	expected := ExpectedDuration(len(daysPassed), s.DailyHours)
	diff := Difference(actual, expected)

	totalExpectedMinutes := float64(len(workingDays)) * s.DailyHours * 60
	percentage := 0.0
	if totalExpectedMinutes > 0 {
		percentage = math.Min(float64(ToMinutes(actual))/totalExpectedMinutes*100, 100)
	}

	tolerance := int(c.OnTrackTolerance / time.Minute)

	return &ProgressData{
		ActualHours:          actual,
		ExpectedHours:        expected,
		Difference:           diff,
		IsOnTrack:            ToMinutes(diff.Magnitude) <= tolerance,
		WorkingDaysPassed:    len(daysPassed),
		TotalWorkingDays:     len(workingDays),
		RemainingWorkingDays: len(workingDays) - len(daysPassed),
		ProgressPercentage:   percentage,
	}, nil
}
