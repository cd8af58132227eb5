package timecalc

import (
	"strconv"
	"strings"
)

// secondsPerDay is the length of one wall-clock day.
const secondsPerDay = 24 * 60 * 60

// DurationMinutes returns the minutes elapsed from start to end.
//
//	end > start  → (end - start) / 60
//	end == start → 0
//	end < start  → ((86400 - start) + end) / 60   (rolled over midnight)
//
// Unparsable input returns 0.
func DurationMinutes(start, end string) float64 {
	s, ok := ParseClock(start)
	if !ok {
		return 0
	}
	e, ok := ParseClock(end)
	if !ok {
		return 0
	}
	switch {
	case e > s:
		return float64(e-s) / 60
	case e == s:
		return 0
	default:
		return float64(secondsPerDay-s+e) / 60
	}
}

// ParseClock parses "H:MM", "HH:MM" or "HH:MM:SS" into seconds since midnight.
// Hours must be 0–23, minutes and seconds 0–59.
func ParseClock(v string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 {
		return 0, false
	}
	h, ok := field(parts[0], 23)
	if !ok {
		return 0, false
	}
	if len(parts[1]) != 2 {
		return 0, false
	}
	m, ok := field(parts[1], 59)
	if !ok {
		return 0, false
	}
	var sec int
	if len(parts) == 3 {
		if len(parts[2]) != 2 {
			return 0, false
		}
		if sec, ok = field(parts[2], 59); !ok {
			return 0, false
		}
	}
	return h*3600 + m*60 + sec, true
}

// field parses an all-digit clock component and checks it against limit.
func field(s string, limit int) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}
