package progress

import (
	"fmt"
	"strings"
)

const (
	OnTrackMessage = "✓ On track"
	minusSign      = "−"
)

// FormatTime renders t as "5h 30m", "2h", "30m" or "0m"
func FormatTime(t TimeData) string {
	parts := make([]string, 0, 2)
	if t.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", t.Hours))
	}
	if t.Minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", t.Minutes))
	}
	return strings.Join(parts, " ")
}

// FormatDelta renders a signed difference, e.g. "+1h 15m" or "−45m"
func FormatDelta(d Delta) string {
	sign := "+"
	if !d.Ahead {
		sign = minusSign
	}
	return sign + FormatTime(d.Magnitude)
}

// FormatProgressMessage renders the short badge text
func FormatProgressMessage(p *ProgressData) string {
	if p.IsOnTrack {
		return OnTrackMessage
	}
	if p.IsAhead() {
		return FormatDelta(p.Difference) + " ahead"
	}
	return FormatDelta(p.Difference) + " behind"
}

// FormatPercentage renders a percentage with one decimal, e.g. "53.6%"
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
