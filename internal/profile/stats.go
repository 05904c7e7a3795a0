package profile

import (
	"fmt"
	"sort"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// colStats is the per-column accumulator most modules start from.
type colStats struct {
	name       string
	total      int
	missing    int
	nonMissing int
	distinct   int
}

func columnStats(name string, rows []dataset.Row) colStats {
	s := colStats{name: name, total: len(rows)}
	seen := make(map[string]struct{})
	for _, r := range rows {
		v := r[name]
		if IsMissing(v) {
			s.missing++
			continue
		}
		s.nonMissing++
		seen[valueKey(v)] = struct{}{}
	}
	s.distinct = len(seen)
	return s
}

func (s colStats) missingRate() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.missing) / float64(s.total)
}

func (s colStats) nonMissingRate() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.nonMissing) / float64(s.total)
}

func (s colStats) uniqueRate() float64 {
	if s.nonMissing == 0 {
		return 0
	}
	return float64(s.distinct) / float64(s.nonMissing)
}

// valueKey gives a distinctness key for any cell value.
func valueKey(v any) string {
	return fmt.Sprintf("%v", v)
}

// numericVector collects the numeric-parseable values of a column in row
// order.
func numericVector(rows []dataset.Row, name string) []float64 {
	var out []float64
	for _, r := range rows {
		if x, ok := ParseNumeric(r[name]); ok {
			out = append(out, x)
		}
	}
	return out
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
