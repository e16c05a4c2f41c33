package policy

import (
	"strconv"
	"strings"
)

// Duration constants in seconds. A month is 30.4 days and a year is 365
// days, matching the conventional behaviour of backup thinning tools.
const (
	Hour  = 3600.0
	Day   = Hour * 24
	Week  = Day * 7
	Month = Day * 30.4
	Year  = Day * 365
)

// Forever is the sentinel age used for values that should never expire.
const Forever = 1000 * Year

var ageUnits = map[byte]float64{
	'h': Hour,
	'd': Day,
	'w': Week,
	'm': Month,
	'y': Year,
}

// ParseValue parses a single value from a policy string and reports whether
// it is relative.
//
// Absolute values carry a unit suffix (h, d, w, m, y), or are bare numbers
// interpreted as days. The empty string, "oo", "inf" and the infinity symbol
// all mean Forever. Relative values are dimensionless multipliers written
// with a "*", "x" or "%" suffix; a "%" value is divided by 100, so "150%"
// parses as 1.5.
func ParseValue(s string) (value float64, relative bool, err error) {
	s = strings.TrimSpace(s)

	switch s {
	case "", "oo", "∞", "inf":
		return Forever, false, nil
	}

	last := s[len(s)-1]
	switch {
	case last == '*' || last == 'x' || last == 'X':
		mult, err := parseFloat(s, s[:len(s)-1])
		if err != nil {
			return 0, false, err
		}
		return mult, true, nil

	case last == '%':
		mult, err := parseFloat(s, s[:len(s)-1])
		if err != nil {
			return 0, false, err
		}
		return mult / 100, true, nil
	}

	if unit, ok := ageUnits[lower(last)]; ok {
		count := 1.0
		if len(s) > 1 {
			count, err = parseFloat(s, s[:len(s)-1])
			if err != nil {
				return 0, false, err
			}
		}
		return unit * count, false, nil
	}

	// No suffix at all: a bare number of days.
	days, err := parseFloat(s, s)
	if err != nil {
		return 0, false, err
	}
	return days * Day, false, nil
}

// parseFloat parses the numeric portion of a value, attributing failures to
// the full original token.
func parseFloat(full, num string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, &ParseError{Value: full, Err: err}
	}
	return v, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
