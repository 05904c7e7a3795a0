package profile

import "sort"

// ColumnRate pairs a column with a rate for threshold reports.
type ColumnRate struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// ValidationResult flags columns that breach the null threshold and columns
// that are nearly constant.
type ValidationResult struct {
	NullThreshold float64      `json:"nullThreshold"`
	HighNull      []ColumnRate `json:"highNull"`
	NearConstant  []ColumnRate `json:"nearConstant"`
}

// Validation reports columns whose missing rate reaches the configured
// threshold and columns whose non-missing values are almost all identical.
func Validation(in Input) ValidationResult {
	threshold := clampFloat(in.Config.NullThresholdPct, 0, 100) / 100
	out := ValidationResult{NullThreshold: threshold}
	if len(in.Rows) == 0 {
		return out
	}

	for _, name := range in.Columns {
		s := columnStats(name, in.Rows)
		if rate := s.missingRate(); rate >= threshold {
			out.HighNull = append(out.HighNull, ColumnRate{Name: name, Rate: rate})
		}
		if s.nonMissing > 0 && s.uniqueRate() <= 0.01 {
			out.NearConstant = append(out.NearConstant, ColumnRate{Name: name, Rate: s.uniqueRate()})
		}
	}
	sort.SliceStable(out.HighNull, func(i, j int) bool {
		return out.HighNull[i].Rate > out.HighNull[j].Rate
	})
	sort.SliceStable(out.NearConstant, func(i, j int) bool {
		return out.NearConstant[i].Rate < out.NearConstant[j].Rate
	})
	return out
}
