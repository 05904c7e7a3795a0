package profile

import "sort"

// ParseCastColumn reports what share of a column's non-missing values parse
// as each castable kind.
type ParseCastColumn struct {
	Name        string  `json:"name"`
	NumericRate float64 `json:"numericRate"`
	DateRate    float64 `json:"dateRate"`
	BooleanRate float64 `json:"booleanRate"`
	Best        string  `json:"best"` // numeric|date|boolean|none
}

// ParseCastResult is the output of the parse/cast-readiness module.
type ParseCastResult struct {
	Columns []ParseCastColumn `json:"columns"`
}

// ParseCast measures cast-readiness per column. Best is the highest-scoring
// kind when it reaches 80% coverage, otherwise "none"; ties resolve in the
// order numeric, date, boolean.
func ParseCast(in Input) ParseCastResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return ParseCastResult{}
	}

	out := ParseCastResult{}
	for _, name := range in.Columns {
		var nonMissing, numeric, date, boolean int
		for _, r := range in.Rows {
			v := r[name]
			if IsMissing(v) {
				continue
			}
			nonMissing++
			if _, ok := ParseNumeric(v); ok {
				numeric++
			}
			if _, ok := ParseDate(v); ok {
				date++
			}
			if _, ok := ParseBoolean(v); ok {
				boolean++
			}
		}
		col := ParseCastColumn{Name: name, Best: "none"}
		if nonMissing > 0 {
			nn := float64(nonMissing)
			col.NumericRate = float64(numeric) / nn
			col.DateRate = float64(date) / nn
			col.BooleanRate = float64(boolean) / nn
			best, score := "numeric", col.NumericRate
			if col.DateRate > score {
				best, score = "date", col.DateRate
			}
			if col.BooleanRate > score {
				best, score = "boolean", col.BooleanRate
			}
			if score >= 0.8 {
				col.Best = best
			}
		}
		out.Columns = append(out.Columns, col)
	}
	sort.SliceStable(out.Columns, func(i, j int) bool {
		return maxRate(out.Columns[i]) > maxRate(out.Columns[j])
	})
	return out
}

func maxRate(c ParseCastColumn) float64 {
	m := c.NumericRate
	if c.DateRate > m {
		m = c.DateRate
	}
	if c.BooleanRate > m {
		m = c.BooleanRate
	}
	return m
}
