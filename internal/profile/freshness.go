package profile

import (
	"sort"
	"time"
)

// FreshnessColumn reports how current and how gappy one date-like column is.
type FreshnessColumn struct {
	Name          string  `json:"name"`
	Parsed        int     `json:"parsed"`
	RecencyDays   float64 `json:"recencyDays"`
	SpanMonths    int     `json:"spanMonths"`
	MissingMonths int     `json:"missingMonths"`
	// LatestMonthRatio compares row counts of the latest observed month and
	// the calendar month before it; HasRatio is false when the previous
	// month has no data.
	LatestMonthRatio float64 `json:"latestMonthRatio"`
	HasRatio         bool    `json:"hasRatio"`
}

// FreshnessResult is the output of the freshness module.
type FreshnessResult struct {
	Columns []FreshnessColumn `json:"columns"`
}

// Freshness admits columns whose non-missing values parse as dates at a 60%
// rate with at least 10 parsed values, then measures recency against the
// injected "now", month coverage and the latest-vs-previous-month volume.
func Freshness(in Input) FreshnessResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return FreshnessResult{}
	}

	out := FreshnessResult{}
	for _, name := range in.Columns {
		var (
			nonMissing int
			dates      []time.Time
		)
		for _, r := range in.Rows {
			v := r[name]
			if IsMissing(v) {
				continue
			}
			nonMissing++
			if d, ok := ParseDate(v); ok {
				dates = append(dates, d)
			}
		}
		if len(dates) < 10 || float64(len(dates))/float64(nonMissing) < 0.6 {
			continue
		}

		latest := dates[0]
		earliest := dates[0]
		months := make(map[int]int) // year*12+month -> row count
		for _, d := range dates {
			if d.After(latest) {
				latest = d
			}
			if d.Before(earliest) {
				earliest = d
			}
			months[monthIndex(d)]++
		}

		span := monthIndex(latest) - monthIndex(earliest) + 1
		col := FreshnessColumn{
			Name:          name,
			Parsed:        len(dates),
			RecencyDays:   in.Now.UTC().Sub(latest).Hours() / 24,
			SpanMonths:    span,
			MissingMonths: span - len(months),
		}
		latestIdx := monthIndex(latest)
		if prev := months[latestIdx-1]; prev > 0 {
			col.LatestMonthRatio = float64(months[latestIdx]) / float64(prev)
			col.HasRatio = true
		}
		out.Columns = append(out.Columns, col)
	}
	sort.SliceStable(out.Columns, func(i, j int) bool {
		return out.Columns[i].RecencyDays < out.Columns[j].RecencyDays
	})
	return out
}

func monthIndex(t time.Time) int {
	return t.UTC().Year()*12 + int(t.UTC().Month()) - 1
}
