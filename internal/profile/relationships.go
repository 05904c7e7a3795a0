package profile

import (
	"math"
	"sort"
)

// CorrCell is one entry of the correlation matrix. Valid is false when the
// pair had fewer than five overlapping observations.
type CorrCell struct {
	R     float64 `json:"r"`
	N     int     `json:"n"`
	Valid bool    `json:"valid"`
}

// CorrPair is a named off-diagonal correlation, used for the ranked list.
type CorrPair struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
	N int     `json:"n"`
}

// RelationshipsResult is the output of the correlation module.
type RelationshipsResult struct {
	Columns []string     `json:"columns"`
	Matrix  [][]CorrCell `json:"matrix"`
	Pairs   []CorrPair   `json:"pairs"`
}

// Relationships computes Pearson correlations among the most complete
// numeric columns, using only rows where both sides are present.
func Relationships(in Input) RelationshipsResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return RelationshipsResult{}
	}

	type numCol struct {
		name string
		rate float64
	}
	var candidates []numCol
	for _, name := range in.Columns {
		s := columnStats(name, in.Rows)
		if s.nonMissing == 0 {
			continue
		}
		vec := numericVector(in.Rows, name)
		if float64(len(vec))/float64(s.nonMissing) < 0.8 {
			continue
		}
		candidates = append(candidates, numCol{name: name, rate: s.nonMissingRate()})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rate > candidates[j].rate
	})
	limit := in.Config.MaxColumns
	if limit > 8 {
		limit = 8
	}
	if limit < 2 {
		limit = 2
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return RelationshipsResult{}
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}

	n := len(names)
	matrix := make([][]CorrCell, n)
	for i := range matrix {
		matrix[i] = make([]CorrCell, n)
		matrix[i][i] = CorrCell{R: 1, N: 0, Valid: true}
	}
	var pairs []CorrPair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			cell := pearson(in, names[i], names[j])
			matrix[i][j] = cell
			matrix[j][i] = cell
			if cell.Valid {
				pairs = append(pairs, CorrPair{A: names[i], B: names[j], R: cell.R, N: cell.N})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	return RelationshipsResult{Columns: names, Matrix: matrix, Pairs: pairs}
}

func pearson(in Input, a, b string) CorrCell {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for _, r := range in.Rows {
		x, okX := ParseNumeric(r[a])
		y, okY := ParseNumeric(r[b])
		if !okX || !okY {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 5 {
		return CorrCell{N: int(n)}
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return CorrCell{N: int(n)}
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return CorrCell{N: int(n)}
	}
	return CorrCell{R: r, N: int(n), Valid: true}
}
