package profile

import (
	"sort"
	"strings"
)

// ColumnMissingness ranks one column by its missing rate.
type ColumnMissingness struct {
	Name    string  `json:"name"`
	Missing int     `json:"missing"`
	Rate    float64 `json:"rate"`
}

// CoMissingCell counts rows where two columns are missing together.
type CoMissingCell struct {
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// MissingPattern is the exact set of columns missing together in a row,
// with the number of rows sharing that set.
type MissingPattern struct {
	Columns []string `json:"columns"`
	Count   int      `json:"count"`
}

// MissingnessResult is the output of the missingness module.
type MissingnessResult struct {
	Columns  []ColumnMissingness `json:"columns"`
	Matrix   [][]CoMissingCell   `json:"matrix"`
	Patterns []MissingPattern    `json:"patterns"`
}

// Missingness ranks columns by missing rate, builds the symmetric co-missing
// matrix over the kept columns and groups rows by their exact
// missing-column set.
func Missingness(in Input) MissingnessResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return MissingnessResult{}
	}

	ranked := make([]ColumnMissingness, 0, len(in.Columns))
	for _, name := range in.Columns {
		s := columnStats(name, in.Rows)
		ranked = append(ranked, ColumnMissingness{Name: name, Missing: s.missing, Rate: s.missingRate()})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rate != ranked[j].Rate {
			return ranked[i].Rate > ranked[j].Rate
		}
		return ranked[i].Name < ranked[j].Name
	})
	keep := clampInt(in.Config.MaxColumns, 2, 20)
	if keep > len(ranked) {
		keep = len(ranked)
	}
	kept := ranked[:keep]

	rowCount := len(in.Rows)
	matrix := make([][]CoMissingCell, keep)
	for i := range matrix {
		matrix[i] = make([]CoMissingCell, keep)
	}
	for i := 0; i < keep; i++ {
		for j := i; j < keep; j++ {
			count := 0
			for _, r := range in.Rows {
				if IsMissing(r[kept[i].Name]) && IsMissing(r[kept[j].Name]) {
					count++
				}
			}
			cell := CoMissingCell{Count: count, Rate: float64(count) / float64(rowCount)}
			matrix[i][j] = cell
			matrix[j][i] = cell
		}
	}

	// Pattern grouping runs over every column, not just the kept ones: the
	// pattern describes the whole row.
	counts := make(map[string]int)
	members := make(map[string][]string)
	for _, r := range in.Rows {
		var set []string
		for _, name := range in.Columns {
			if IsMissing(r[name]) {
				set = append(set, name)
			}
		}
		if len(set) == 0 {
			continue
		}
		key := strings.Join(set, "\x00")
		counts[key]++
		if _, ok := members[key]; !ok {
			members[key] = set
		}
	}
	patterns := make([]MissingPattern, 0, len(counts))
	for key, n := range counts {
		patterns = append(patterns, MissingPattern{Columns: members[key], Count: n})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		if len(patterns[i].Columns) != len(patterns[j].Columns) {
			return len(patterns[i].Columns) > len(patterns[j].Columns)
		}
		return strings.Join(patterns[i].Columns, ",") < strings.Join(patterns[j].Columns, ",")
	})

	return MissingnessResult{Columns: kept, Matrix: matrix, Patterns: patterns}
}
