package settings

import (
	"fmt"
	"math"

	"github.com/username/hours-pulse/pkg/dateutil"
)

const DefaultDailyHours = 8

// Settings is the user-owned input snapshot for progress calculations
type Settings struct {
	DailyHours    float64  `json:"dailyHours" yaml:"daily_hours"`
	MonthlyTarget *float64 `json:"monthlyTarget,omitempty" yaml:"monthly_target,omitempty"`
	Holidays      []string `json:"holidays" yaml:"holidays"` // YYYY-MM-DD
}

// Default returns the settings used before anything is saved
func Default() Settings {
	return Settings{
		DailyHours: DefaultDailyHours,
		Holidays:   []string{},
	}
}

// Validate validates the settings
func (s Settings) Validate() error {
	if math.IsNaN(s.DailyHours) || s.DailyHours <= 0 || s.DailyHours > 24 {
		return fmt.Errorf("dailyHours must be in (0, 24], got %v", s.DailyHours)
	}
	if s.MonthlyTarget != nil {
		target := *s.MonthlyTarget
		if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
			return fmt.Errorf("monthlyTarget must be positive, got %v", target)
		}
	}
	for _, h := range s.Holidays {
		if _, err := dateutil.ParseDateKey(h); err != nil {
			return fmt.Errorf("holidays: %w", err)
		}
	}
	return nil
}
