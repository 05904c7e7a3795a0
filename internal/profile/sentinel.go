package profile

import (
	"sort"
	"strings"
)

// sentinelTokens are the placeholder strings that usually mean "no data"
// without being an actual null. Matched against trimmed, lowercased values.
var sentinelTokens = map[string]bool{
	"n/a":           true,
	"na":            true,
	"unknown":       true,
	"unk":           true,
	"none":          true,
	"null":          true,
	"-":             true,
	"--":            true,
	"missing":       true,
	"not available": true,
}

// TokenCount is one sentinel token with its occurrence count.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// SentinelColumn reports sentinel hits for one column.
type SentinelColumn struct {
	Name string       `json:"name"`
	Hits int          `json:"hits"`
	Top  []TokenCount `json:"top"`
}

// SentinelResult is the output of the sentinel-token audit.
type SentinelResult struct {
	Columns []SentinelColumn `json:"columns"`
}

// Sentinel audits string values for placeholder tokens that masquerade as
// data. Blank values are missing, not sentinel, and never counted here.
func Sentinel(in Input) SentinelResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return SentinelResult{}
	}

	out := SentinelResult{}
	for _, name := range in.Columns {
		counts := make(map[string]int)
		hits := 0
		for _, r := range in.Rows {
			v := r[name]
			if IsMissing(v) {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			token := strings.ToLower(strings.TrimSpace(s))
			if sentinelTokens[token] {
				counts[token]++
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		top := make([]TokenCount, 0, len(counts))
		for tok, n := range counts {
			top = append(top, TokenCount{Token: tok, Count: n})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Token < top[j].Token
		})
		if len(top) > 3 {
			top = top[:3]
		}
		out.Columns = append(out.Columns, SentinelColumn{Name: name, Hits: hits, Top: top})
	}
	sort.SliceStable(out.Columns, func(i, j int) bool {
		if out.Columns[i].Hits != out.Columns[j].Hits {
			return out.Columns[i].Hits > out.Columns[j].Hits
		}
		return out.Columns[i].Name < out.Columns[j].Name
	})
	return out
}
