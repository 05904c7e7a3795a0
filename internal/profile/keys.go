package profile

import "sort"

// KeyCandidate is a column that could serve as a unique key.
type KeyCandidate struct {
	Name       string  `json:"name"`
	UniqueRate float64 `json:"uniqueRate"`
}

// CompositeKey is a column pair whose joint values are near-distinct.
type CompositeKey struct {
	Columns    [2]string `json:"columns"`
	UniqueRate float64   `json:"uniqueRate"`
}

// KeysResult is the output of the key-detection module.
type KeysResult struct {
	Threshold float64        `json:"threshold"`
	Single    []KeyCandidate `json:"single"`
	Composite []CompositeKey `json:"composite"`
}

// Keys looks for single-column and two-column key candidates. Single
// candidates need zero missing values and a distinctness rate at or above
// the configured floor; composite pairs are probed among the ten most
// distinct columns.
func Keys(in Input) KeysResult {
	threshold := clampFloat(in.Config.UniqueFloorPct, 0, 100) / 100
	out := KeysResult{Threshold: threshold}
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return out
	}

	stats := make([]colStats, 0, len(in.Columns))
	for _, name := range in.Columns {
		stats = append(stats, columnStats(name, in.Rows))
	}

	for _, s := range stats {
		if s.missing == 0 && s.uniqueRate() >= threshold {
			out.Single = append(out.Single, KeyCandidate{Name: s.name, UniqueRate: s.uniqueRate()})
		}
	}
	sort.SliceStable(out.Single, func(i, j int) bool {
		return out.Single[i].UniqueRate > out.Single[j].UniqueRate
	})

	// Composite probing: the ten most distinct columns that clear a relaxed
	// floor and have at least one value.
	floor := threshold
	if floor > 0.6 {
		floor = 0.6
	}
	probe := make([]colStats, 0, len(stats))
	for _, s := range stats {
		if s.nonMissing > 0 && s.uniqueRate() >= floor {
			probe = append(probe, s)
		}
	}
	sort.SliceStable(probe, func(i, j int) bool {
		return probe[i].uniqueRate() > probe[j].uniqueRate()
	})
	if len(probe) > 10 {
		probe = probe[:10]
	}

	for i := 0; i < len(probe); i++ {
		for j := i + 1; j < len(probe); j++ {
			a, b := probe[i], probe[j]
			if a.missing > 0 || b.missing > 0 {
				continue
			}
			seen := make(map[string]struct{})
			present := 0
			for _, r := range in.Rows {
				va, vb := r[a.name], r[b.name]
				if IsMissing(va) || IsMissing(vb) {
					continue
				}
				present++
				seen[valueKey(va)+"\x00"+valueKey(vb)] = struct{}{}
			}
			if present == 0 {
				continue
			}
			rate := float64(len(seen)) / float64(present)
			if rate >= threshold {
				out.Composite = append(out.Composite, CompositeKey{Columns: [2]string{a.name, b.name}, UniqueRate: rate})
			}
		}
	}
	sort.SliceStable(out.Composite, func(i, j int) bool {
		return out.Composite[i].UniqueRate > out.Composite[j].UniqueRate
	})
	return out
}
