package shared

import "testing"

func TestParseClockDuration(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  int
	}{
		{name: "minutes and seconds", input: "3:45", want: 225},
		{name: "hours minutes seconds", input: "1:02:03", want: 3723},
		{name: "zero", input: "0:00", want: 0},
		{name: "garbage", input: "garbage", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "single segment", input: "90", want: 0},
		{name: "too many segments", input: "1:2:3:4", want: 0},
		{name: "negative segment", input: "-1:30", want: 0},
		{name: "surrounding whitespace", input: " 2:30 ", want: 150},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClockDuration(tt.input); got != tt.want {
				t.Errorf("ParseClockDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "under an hour", seconds: 225, want: "3:45"},
		{name: "over an hour", seconds: 3723, want: "1:02:03"},
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "negative clamps to zero", seconds: -5, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClockDurationRoundTrip(t *testing.T) {
	for _, seconds := range []int{1, 59, 60, 225, 3599, 3600, 3723, 86399} {
		if got := ParseClockDuration(FormatDuration(seconds)); got != seconds {
			t.Errorf("round trip %d → %q → %d", seconds, FormatDuration(seconds), got)
		}
	}
}
