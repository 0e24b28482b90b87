package schema

import (
	"strconv"
	"strings"
	"time"
)

// ParseAmount reads a numeric cell the way spreadsheet exports write
// them: currency symbols, percent signs and plain or non-breaking
// spaces are stripped, thousands separators removed. A comma only
// counts as the decimal separator when a dot thousands separator makes
// the layout unambiguous, e.g. "1.234,56"; otherwise commas are
// thousands separators.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		switch r {
		case '$', '€', '£', '%', ' ', ' ':
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	if comma >= 0 && dot >= 0 && comma > dot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDate tries the profile's candidate layouts in order.
func ParseDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	if v, ok := ParseAmount(s); ok {
		return v != 0, true
	}
	return false, false
}
