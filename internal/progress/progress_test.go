package progress

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/username/hours-pulse/internal/calendar"
	"github.com/username/hours-pulse/internal/settings"
)

// Friday 15 March 2024, the 11th weekday of a 21-weekday month
var march15 = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  TimeData
	}{
		{"64h 18m", TimeData{64, 18}},
		{"5h", TimeData{5, 0}},
		{"45m", TimeData{0, 45}},
		{"garbage", TimeData{0, 0}},
		{"", TimeData{0, 0}},
		{"12h30m", TimeData{12, 30}},
		{"Total hour: 7h 5m", TimeData{7, 5}},
		{"0h 0m", TimeData{0, 0}},
		{"99999999999999999999h", TimeData{0, 0}},
		{"200000000000000000h", TimeData{0, 0}},
		{"200000000000000000h 15m", TimeData{0, 15}},
		{"76861433640456465h", TimeData{76861433640456465, 0}},
		{"76861433640456466h", TimeData{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDuration(tt.input); got != tt.want {
				t.Errorf("ParseDuration(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromMinutes_MagnitudeOnly(t *testing.T) {
	for x := -1500; x <= 1500; x++ {
		got := FromMinutes(x)
		want := x
		if want < 0 {
			want = -want
		}
		if ToMinutes(got) != want {
			t.Fatalf("ToMinutes(FromMinutes(%d)) = %d, want %d", x, ToMinutes(got), want)
		}
		if got.Minutes < 0 || got.Minutes > 59 || got.Hours < 0 {
			t.Fatalf("FromMinutes(%d) = %+v, not normalized", x, got)
		}
	}
}

func TestFromMinutes_Extremes(t *testing.T) {
	got := FromMinutes(math.MinInt)
	if got.Hours < 0 || got.Minutes < 0 || got.Minutes > 59 {
		t.Errorf("FromMinutes(math.MinInt) = %+v, want a non-negative magnitude", got)
	}
	if want := FromMinutes(math.MaxInt); got.Hours != want.Hours || got.Minutes != want.Minutes+1 {
		t.Errorf("FromMinutes(math.MinInt) = %+v, want one minute more than %+v", got, want)
	}
}

func TestExpectedDuration(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		dailyHours float64
		want       TimeData
	}{
		{"whole hours", 11, 8, TimeData{88, 0}},
		{"fractional daily hours", 3, 7.5, TimeData{22, 30}},
		{"sub-minute remainder truncated", 1, 7.99, TimeData{7, 59}},
		{"no days passed", 0, 8, TimeData{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectedDuration(tt.days, tt.dailyHours); got != tt.want {
				t.Errorf("ExpectedDuration(%d, %v) = %+v, want %+v", tt.days, tt.dailyHours, got, tt.want)
			}
		})
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name     string
		actual   TimeData
		expected TimeData
		want     Delta
	}{
		{"equal counts as ahead", TimeData{8, 0}, TimeData{8, 0}, Delta{TimeData{0, 0}, true}},
		{"ahead", TimeData{90, 0}, TimeData{88, 0}, Delta{TimeData{2, 0}, true}},
		{"behind", TimeData{7, 15}, TimeData{8, 0}, Delta{TimeData{0, 45}, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Difference(tt.actual, tt.expected)
			if got != tt.want {
				t.Errorf("Difference() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := (Delta{TimeData{0, 45}, false}).SignedMinutes(); got != -45 {
		t.Errorf("SignedMinutes() = %d, want -45", got)
	}
}

func TestCompute_March2024(t *testing.T) {
	p, err := Compute("90h 0m", settings.Settings{DailyHours: 8}, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if p == nil {
		t.Fatal("Compute() returned nil for the current month")
	}

	if p.TotalWorkingDays != 21 {
		t.Errorf("TotalWorkingDays = %d, want 21", p.TotalWorkingDays)
	}
	if p.WorkingDaysPassed != 11 {
		t.Errorf("WorkingDaysPassed = %d, want 11", p.WorkingDaysPassed)
	}
	if p.RemainingWorkingDays != 10 {
		t.Errorf("RemainingWorkingDays = %d, want 10", p.RemainingWorkingDays)
	}
	if p.ExpectedHours != (TimeData{88, 0}) {
		t.Errorf("ExpectedHours = %+v, want 88h", p.ExpectedHours)
	}
	if p.ActualHours != (TimeData{90, 0}) {
		t.Errorf("ActualHours = %+v, want 90h", p.ActualHours)
	}
	if p.Difference.Magnitude != (TimeData{2, 0}) || !p.IsAhead() {
		t.Errorf("Difference = %+v, want +2h", p.Difference)
	}
	if p.IsOnTrack {
		t.Error("IsOnTrack = true, want false for a 120 minute difference")
	}
	want := 5400.0 / (21 * 8 * 60) * 100
	if math.Abs(p.ProgressPercentage-want) > 1e-9 {
		t.Errorf("ProgressPercentage = %v, want %v", p.ProgressPercentage, want)
	}
	if FormatPercentage(p.ProgressPercentage) != "53.6%" {
		t.Errorf("FormatPercentage = %s, want 53.6%%", FormatPercentage(p.ProgressPercentage))
	}
}

func TestCompute_OnTrackTolerance(t *testing.T) {
	s := settings.Settings{DailyHours: 8}

	tests := []struct {
		name        string
		actual      string
		wantOnTrack bool
		wantAhead   bool
	}{
		{"exact pace", "88h", true, true},
		{"30 minutes ahead", "88h 30m", true, true},
		{"31 minutes ahead", "88h 31m", false, true},
		{"30 minutes behind", "87h 30m", true, false},
		{"31 minutes behind", "87h 29m", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compute(tt.actual, s, nil, march15)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if p.IsOnTrack != tt.wantOnTrack {
				t.Errorf("IsOnTrack = %v, want %v", p.IsOnTrack, tt.wantOnTrack)
			}
			if p.IsAhead() != tt.wantAhead {
				t.Errorf("IsAhead = %v, want %v", p.IsAhead(), tt.wantAhead)
			}
		})
	}

	strict := NewCalculator(0)
	p, err := strict.Compute("88h 1m", s, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if p.IsOnTrack {
		t.Error("zero tolerance should only accept an exact match")
	}

	if c := NewCalculator(-time.Minute); c.OnTrackTolerance != DefaultOnTrackTolerance {
		t.Errorf("negative tolerance = %v, want default", c.OnTrackTolerance)
	}
}

func TestCompute_ViewedMonth(t *testing.T) {
	s := settings.Settings{DailyHours: 8}

	tests := []struct {
		name           string
		view           calendar.Month
		wantApplicable bool
	}{
		{"same month", calendar.Month{Year: 2024, Month: 2}, true},
		{"previous month", calendar.Month{Year: 2024, Month: 1}, false},
		{"next month", calendar.Month{Year: 2024, Month: 3}, false},
		{"same month other year", calendar.Month{Year: 2023, Month: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.view
			p, err := Compute("10h", s, &view, march15)
			if tt.wantApplicable {
				if err != nil || p == nil {
					t.Fatalf("Compute() = %v, %v; want a result", p, err)
				}
				return
			}
			if !errors.Is(err, ErrNotApplicable) || p != nil {
				t.Errorf("Compute() = %v, %v; want ErrNotApplicable", p, err)
			}
		})
	}
}

func TestCompute_Holidays(t *testing.T) {
	s := settings.Settings{DailyHours: 8, Holidays: []string{"2024-03-08", "2024-03-29"}}

	p, err := Compute("80h", s, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if p.TotalWorkingDays != 19 || p.WorkingDaysPassed != 10 {
		t.Errorf("days = %d/%d, want 10/19", p.WorkingDaysPassed, p.TotalWorkingDays)
	}
	if p.ExpectedHours != (TimeData{80, 0}) || !p.IsOnTrack {
		t.Errorf("ExpectedHours = %+v on track %v, want 80h on track", p.ExpectedHours, p.IsOnTrack)
	}
}

func TestCompute_PercentageCapAndZeroGuard(t *testing.T) {
	p, err := Compute("500h", settings.Settings{DailyHours: 8}, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if p.ProgressPercentage != 100 {
		t.Errorf("ProgressPercentage = %v, want capped at 100", p.ProgressPercentage)
	}

	p, err = Compute("5h", settings.Settings{DailyHours: 0}, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if p.ProgressPercentage != 0 {
		t.Errorf("ProgressPercentage = %v, want 0 when nothing is expected", p.ProgressPercentage)
	}
	if p.ExpectedHours != (TimeData{}) || !p.IsAhead() {
		t.Errorf("zero daily hours: expected %+v ahead %v", p.ExpectedHours, p.IsAhead())
	}
}

func TestCompute_HugeTokens(t *testing.T) {
	s := settings.Settings{DailyHours: 8}

	tests := []struct {
		input     string
		wantAhead bool
		wantPct   float64
	}{
		{"200000000000000000h", false, 0},
		{"76861433640456465h 59m", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Compute(tt.input, s, nil, march15)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if ToMinutes(p.ActualHours) < 0 {
				t.Errorf("ActualHours = %+v, overflowed", p.ActualHours)
			}
			if p.ProgressPercentage != tt.wantPct {
				t.Errorf("ProgressPercentage = %v, want %v", p.ProgressPercentage, tt.wantPct)
			}
			if p.IsAhead() != tt.wantAhead {
				t.Errorf("IsAhead() = %v, want %v", p.IsAhead(), tt.wantAhead)
			}
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	if _, err := Compute("1h", settings.Settings{DailyHours: 8}, nil, time.Time{}); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("zero clock error = %v, want ErrInvalidClock", err)
	}

	for _, h := range []float64{math.NaN(), math.Inf(1), -1} {
		if _, err := Compute("1h", settings.Settings{DailyHours: h}, nil, march15); !errors.Is(err, ErrInvalidDailyHours) {
			t.Errorf("daily hours %v error = %v, want ErrInvalidDailyHours", h, err)
		}
	}
}

func TestMonthSummary(t *testing.T) {
	holidays := []string{"2024-03-08", "2024-03-09", "2024-04-01", "bad", "2024-03", "2023-03-08"}

	got := MonthSummary(2024, 2, holidays)
	want := MonthData{
		Year:        2024,
		Month:       2,
		WorkingDays: 20,
		Holidays:    []string{"2024-03-08", "2024-03-09"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MonthSummary() = %+v, want %+v", got, want)
	}

	empty := MonthSummary(1800, 0, holidays)
	if empty.WorkingDays != 0 || len(empty.Holidays) != 0 {
		t.Errorf("MonthSummary(1800) = %+v, want zero working days", empty)
	}
}

func TestMonthlyTargetStatus(t *testing.T) {
	p, err := Compute("90h", settings.Settings{DailyHours: 8}, nil, march15)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if MonthlyTargetStatus(p, nil) != nil {
		t.Error("no target should yield nil")
	}

	target := 160.0
	st := MonthlyTargetStatus(p, &target)
	if st == nil {
		t.Fatal("MonthlyTargetStatus() = nil")
	}
	if st.Remaining != (TimeData{70, 0}) {
		t.Errorf("Remaining = %+v, want 70h", st.Remaining)
	}
	if st.RequiredPerDay != (TimeData{7, 0}) {
		t.Errorf("RequiredPerDay = %+v, want 7h over 10 days", st.RequiredPerDay)
	}
	if st.Reached {
		t.Error("Reached = true, want false")
	}

	small := 80.0
	st = MonthlyTargetStatus(p, &small)
	if !st.Reached || st.Remaining != (TimeData{}) || st.TargetPercentage != 100 {
		t.Errorf("exceeded target = %+v, want reached at 100%%", st)
	}
}
