package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClockDuration converts a colon-delimited "MM:SS" or "HH:MM:SS" string
// into total seconds.
//
// Any other shape (empty string, garbage, too many segments, negative or
// non-numeric parts) yields 0.
func ParseClockDuration(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}

	return total
}

// FormatDuration renders a second count as "M:SS" or "H:MM:SS" for display.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
