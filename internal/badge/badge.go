package badge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/internal/progress"
)

// Status classifies a progress result
type Status int

const (
	StatusOnTrack Status = iota + 1
	StatusAhead
	StatusBehind
)

var (
	pillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
	onTrackStyle = pillStyle.Background(lipgloss.Color("#2563EB"))
	aheadStyle   = pillStyle.Background(lipgloss.Color("#16A34A"))
	behindStyle  = pillStyle.Background(lipgloss.Color("#DC2626"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

// Classify maps a result to a status. On track wins over direction.
func Classify(p *progress.ProgressData) Status {
	switch {
	case p.IsOnTrack:
		return StatusOnTrack
	case p.IsAhead():
		return StatusAhead
	default:
		return StatusBehind
	}
}

// Icon returns the glyph shown next to the message
func Icon(s Status) string {
	switch s {
	case StatusAhead:
		return "🟢"
	case StatusBehind:
		return "🔴"
	default:
		return "✓"
	}
}

// Plain renders the badge without styling, for tray titles and logs
func Plain(p *progress.ProgressData) string {
	if p.IsOnTrack {
		return progress.OnTrackMessage
	}
	return Icon(Classify(p)) + " " + progress.FormatProgressMessage(p)
}

// Render draws the colored badge followed by a detail card
func Render(p *progress.ProgressData, target *progress.TargetStatus) string {
	var style lipgloss.Style
	switch Classify(p) {
	case StatusAhead:
		style = aheadStyle
	case StatusBehind:
		style = behindStyle
	default:
		style = onTrackStyle
	}

	rows := [][2]string{
		{"Expected", progress.FormatTime(p.ExpectedHours)},
		{"Actual", progress.FormatTime(p.ActualHours)},
		{"Working days", fmt.Sprintf("%d / %d", p.WorkingDaysPassed, p.TotalWorkingDays)},
		{"Remaining days", fmt.Sprintf("%d", p.RemainingWorkingDays)},
		{"Progress", progress.FormatPercentage(p.ProgressPercentage)},
	}
	if target != nil {
		rows = append(rows,
			[2]string{"Monthly target", progress.FormatTime(target.Target)},
			[2]string{"Left to target", progress.FormatTime(target.Remaining)},
			[2]string{"Needed per day", progress.FormatTime(target.RequiredPerDay)},
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(Plain(p)),
		cardStyle.Render(table(rows)),
	)
}

// RenderMonth draws a month summary card
func RenderMonth(m progress.MonthData) string {
	holidays := "none"
	if len(m.Holidays) > 0 {
		holidays = strings.Join(m.Holidays, ", ")
	}

	month := calendar.Month{Year: m.Year, Month: m.Month}
	return cardStyle.Render(table([][2]string{
		{"Month", month.String()},
		{"Working days", fmt.Sprintf("%d", m.WorkingDays)},
		{"Holidays", holidays},
	}))
}

func table(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", width, r[0])) + "  " + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}
