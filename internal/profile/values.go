package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// numericPattern admits optionally signed integers and decimals, nothing
// else. Thousands separators, currency symbols and scientific notation are
// deliberately rejected so that parse rates reflect cast-readiness.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)$`)

var (
	trueTokens  = map[string]bool{"1": true, "true": true, "t": true, "yes": true, "y": true}
	falseTokens = map[string]bool{"0": true, "false": true, "f": true, "no": true, "n": true}
)

// IsMissing reports whether a cell value counts as missing: nil, or a string
// that is empty after trimming.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ParseNumeric extracts a finite float64 from a cell value. Native numeric
// values pass when finite; strings must fully match an optional-sign
// int/decimal pattern.
func ParseNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return ParseNumeric(float64(x))
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if !numericPattern.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseDate extracts a timestamp from a cell value. Strings go through
// dateparse; anything whose UTC year falls outside [1900,2100] is rejected,
// which keeps bare numbers and garbage out of the date population.
func ParseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return checkDateRange(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" || numericPattern.MatchString(s) {
			return time.Time{}, false
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return checkDateRange(t)
	default:
		return time.Time{}, false
	}
}

func checkDateRange(t time.Time) (time.Time, bool) {
	y := t.UTC().Year()
	if y < 1900 || y > 2100 {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseBoolean extracts a bool from a cell value: literal booleans, or
// membership in the usual true/false token sets (trimmed, case-insensitive).
func ParseBoolean(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if trueTokens[s] {
			return true, true
		}
		if falseTokens[s] {
			return false, true
		}
	}
	return false, false
}

// Quantile returns the linearly interpolated order statistic of an
// ascending-sorted slice. ok is false on empty input.
func Quantile(sorted []float64, q float64) (float64, bool) {
	if len(sorted) == 0 {
		return 0, false
	}
	if q <= 0 {
		return sorted[0], true
	}
	if q >= 1 {
		return sorted[len(sorted)-1], true
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w, true
}
