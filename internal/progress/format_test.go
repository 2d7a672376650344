package progress

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		input TimeData
		want  string
	}{
		{TimeData{0, 0}, "0m"},
		{TimeData{2, 0}, "2h"},
		{TimeData{1, 30}, "1h 30m"},
		{TimeData{0, 30}, "30m"},
		{TimeData{64, 18}, "64h 18m"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.input); got != tt.want {
			t.Errorf("FormatTime(%+v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatProgressMessage(t *testing.T) {
	tests := []struct {
		name string
		p    ProgressData
		want string
	}{
		{
			name: "on track wins over direction",
			p:    ProgressData{IsOnTrack: true, Difference: Delta{TimeData{0, 20}, false}},
			want: "✓ On track",
		},
		{
			name: "ahead",
			p:    ProgressData{Difference: Delta{TimeData{1, 15}, true}},
			want: "+1h 15m ahead",
		},
		{
			name: "behind",
			p:    ProgressData{Difference: Delta{TimeData{0, 45}, false}},
			want: "−45m behind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgressMessage(&tt.p); got != tt.want {
				t.Errorf("FormatProgressMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(0); got != "0.0%" {
		t.Errorf("FormatPercentage(0) = %q", got)
	}
	if got := FormatPercentage(100); got != "100.0%" {
		t.Errorf("FormatPercentage(100) = %q", got)
	}
}
