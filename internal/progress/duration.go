package progress

import (
	"math"
	"regexp"
	"strconv"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)h`)
	minutesPattern = regexp.MustCompile(`(\d+)m`)
)

// Parsed parts are bounded so that hours*60 + minutes always fits in an int
const (
	maxMinutesPart = math.MaxInt / 2
	maxHoursPart   = maxMinutesPart / 60
)

// TimeData is a non-negative duration in hours and minutes
type TimeData struct {
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
}

// Delta is a signed difference: magnitude plus direction
type Delta struct {
	Magnitude TimeData `json:"magnitude" yaml:"magnitude"`
	Ahead     bool     `json:"isAhead" yaml:"is_ahead"`
}

// ParseDuration extracts "<n>h" and "<n>m" from text such as "64h 18m".
// Missing parts default to 0 and other characters are ignored. A part too large
// to convert to minutes also counts as 0.
func ParseDuration(text string) TimeData {
	return TimeData{
		Hours:   firstNumber(hoursPattern, text, maxHoursPart),
		Minutes: firstNumber(minutesPattern, text, maxMinutesPart),
	}
}

func firstNumber(re *regexp.Regexp, text string, limit int) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > limit {
		return 0
	}
	return n
}

// ToMinutes converts t to total minutes
func ToMinutes(t TimeData) int {
	return t.Hours*60 + t.Minutes
}

// FromMinutes splits |totalMinutes| into hours and minutes
func FromMinutes(totalMinutes int) TimeData {
	// Split before negating: -math.MinInt overflows, the quotient does not
	hours, minutes := totalMinutes/60, totalMinutes%60
	if totalMinutes < 0 {
		hours, minutes = -hours, -minutes
	}
	return TimeData{
		Hours:   hours,
		Minutes: minutes,
	}
}

// ExpectedDuration is the time due after workingDaysPassed days of dailyHours.
// Fractions of a minute are truncated.
func ExpectedDuration(workingDaysPassed int, dailyHours float64) TimeData {
	minutes := math.Floor(float64(workingDaysPassed) * dailyHours * 60)
	if minutes > maxMinutesPart {
		minutes = maxMinutesPart
	}
	return FromMinutes(int(minutes))
}

// Difference compares actual against expected. Equal values count as ahead.
func Difference(actual, expected TimeData) Delta {
	diff := ToMinutes(actual) - ToMinutes(expected)
	return Delta{
		Magnitude: FromMinutes(diff),
		Ahead:     diff >= 0,
	}
}

// SignedMinutes returns the difference with its sign applied
func (d Delta) SignedMinutes() int {
	if d.Ahead {
		return ToMinutes(d.Magnitude)
	}
	return -ToMinutes(d.Magnitude)
}
