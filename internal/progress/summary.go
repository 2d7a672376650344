package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/username/hours-pulse/internal/calendar"
)

// MonthData summarizes a month for display
type MonthData struct {
	Year        int      `json:"year" yaml:"year"`
	Month       int      `json:"month" yaml:"month"` // 0-11
	WorkingDays int      `json:"workingDays" yaml:"working_days"`
	Holidays    []string `json:"holidays" yaml:"holidays"`
}

// MonthSummary counts working days and picks the holidays that fall into the month.
// month is zero-based; holiday keys without three '-' separated parts are skipped.
func MonthSummary(year, month int, holidays []string) MonthData {
	days := calendar.WorkingDays(year, month, calendar.NewHolidaySet(holidays))

	inMonth := make([]string, 0)
	for _, h := range holidays {
		parts := strings.Split(h, "-")
		if len(parts) != 3 {
			continue
		}
		y, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if y == year && m-1 == month {
			inMonth = append(inMonth, h)
		}
	}

	return MonthData{
		Year:        year,
		Month:       month,
		WorkingDays: len(days),
		Holidays:    inMonth,
	}
}

// TargetStatus tracks logged time against an explicit monthly hours goal
type TargetStatus struct {
	Target           TimeData `json:"target" yaml:"target"`
	Remaining        TimeData `json:"remaining" yaml:"remaining"`
	RequiredPerDay   TimeData `json:"requiredPerDay" yaml:"required_per_day"`
	Reached          bool     `json:"reached" yaml:"reached"`
	TargetPercentage float64  `json:"targetPercentage" yaml:"target_percentage"`
}

// MonthlyTargetStatus returns nil when no target is configured. Time still
// missing is spread over the remaining working days; with none left the whole
// remainder is due.
func MonthlyTargetStatus(p *ProgressData, monthlyTarget *float64) *TargetStatus {
	if p == nil || monthlyTarget == nil || *monthlyTarget <= 0 {
		return nil
	}

	targetMinutes := int(math.Floor(*monthlyTarget * 60))
	remaining := targetMinutes - ToMinutes(p.ActualHours)
	if remaining < 0 {
		remaining = 0
	}

	perDay := remaining
	if p.RemainingWorkingDays > 0 {
		perDay = int(math.Ceil(float64(remaining) / float64(p.RemainingWorkingDays)))
	}

	percentage := 0.0
	if targetMinutes > 0 {
		percentage = math.Min(float64(ToMinutes(p.ActualHours))/float64(targetMinutes)*100, 100)
	}

	return &TargetStatus{
		Target:           FromMinutes(targetMinutes),
		Remaining:        FromMinutes(remaining),
		RequiredPerDay:   FromMinutes(perDay),
		Reached:          remaining == 0,
		TargetPercentage: percentage,
	}
}
