package biweekly

import (
	"regexp"
	"strconv"
)

const (
	minDistrict = 1
	maxDistrict = 15
)

var aduRe = regexp.MustCompile(`\badu\b`)

// sanitizeDistrict validates a raw district-number cell. Out-of-range and
// unparseable values come back empty. When the whole cell does not parse,
// everything after the first character is retried: cell borders occasionally
// bleed a stray character into the front of the number during extraction.
func sanitizeDistrict(raw string) string {
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= minDistrict && n <= maxDistrict {
			return strconv.Itoa(n)
		}
		return ""
	}
	if len(raw) > 1 {
		if n, err := strconv.Atoi(raw[1:]); err == nil && n >= minDistrict && n <= maxDistrict {
			return strconv.Itoa(n)
		}
	}
	return ""
}

// isADU reports whether a case-folded project description mentions ADU as a
// standalone word. "Gradual" must not count.
func isADU(description string) bool {
	return aduRe.MatchString(description)
}
