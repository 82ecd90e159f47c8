package doc

import (
	"strconv"
	"strings"
)

// Editors (and HTML font element) express size as 1..7 with 3 being normal
// text. These are half-point equivalents browsers use.
var legacySizes = [...]int{16, 20, 24, 28, 36, 48, 72}

const (
	LegacyMin     = 1
	LegacyMax     = 7
	LegacyDefault = 3
)

// LegacyToHalfPoints converts 1..7 size into half-points, out of range values
// are clamped.
func LegacyToHalfPoints(n int) int {
	n = min(max(n, LegacyMin), LegacyMax)
	return legacySizes[n-1]
}

// HalfPointsToLegacy returns closest 1..7 size, ties go to the smaller one.
func HalfPointsToLegacy(hp int) int {
	best, dist := LegacyMin, -1
	for i, v := range legacySizes {
		d := v - hp
		if d < 0 {
			d = -d
		}
		if dist < 0 || d < dist {
			best, dist = i+1, d
		}
	}
	return best
}

// ParseLegacySize understands absolute ("5") and relative ("+1", "-2")
// forms, relative ones are counted from base.
func ParseLegacySize(s string, base int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if s[0] == '+' || s[0] == '-' {
		n += base
	}
	return min(max(n, LegacyMin), LegacyMax), true
}
