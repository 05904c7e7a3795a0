package profile

import "sort"

// OutlierColumn summarizes one admitted numeric column with IQR fences.
type OutlierColumn struct {
	Name        string  `json:"name"`
	NonMissing  int     `json:"nonMissing"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Median      float64 `json:"median"`
	P25         float64 `json:"p25"`
	P75         float64 `json:"p75"`
	P95         float64 `json:"p95"`
	P99         float64 `json:"p99"`
	IQR         float64 `json:"iqr"`
	LowerFence  float64 `json:"lowerFence"`
	UpperFence  float64 `json:"upperFence"`
	OutlierRate float64 `json:"outlierRate"`
}

// FlaggedRow is a row whose metric value reaches the flagging threshold.
type FlaggedRow struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// OutliersResult is the output of the outlier module.
type OutliersResult struct {
	Columns    []OutlierColumn `json:"columns"`
	Metric     string          `json:"metric"`
	Percentile float64         `json:"percentile"`
	Threshold  float64         `json:"threshold"`
	Flagged    []FlaggedRow    `json:"flagged"`
}

// Outliers computes IQR fences per admitted numeric column and flags rows
// whose selected metric reaches the configured percentile. A column is
// admitted only with at least 10 parseable values covering at least 30% of
// the window.
func Outliers(in Input) OutliersResult {
	percentile := in.Config.OutlierPercentile
	if percentile == 0 {
		percentile = 0.99
	}
	percentile = clampFloat(percentile, 0.80, 0.999)
	out := OutliersResult{Percentile: percentile}
	rowCount := len(in.Rows)
	if rowCount == 0 {
		return out
	}

	vectors := make(map[string][]float64)
	for _, name := range in.Columns {
		vec := numericVector(in.Rows, name)
		if len(vec) < 10 || float64(len(vec))/float64(rowCount) < 0.3 {
			continue
		}
		vectors[name] = vec

		sorted := sortedCopy(vec)
		p25, _ := Quantile(sorted, 0.25)
		p75, _ := Quantile(sorted, 0.75)
		p95, _ := Quantile(sorted, 0.95)
		p99, _ := Quantile(sorted, 0.99)
		median, _ := Quantile(sorted, 0.5)
		iqr := p75 - p25
		lower := p25 - 1.5*iqr
		upper := p75 + 1.5*iqr
		outside := 0
		for _, v := range vec {
			if v < lower || v > upper {
				outside++
			}
		}
		out.Columns = append(out.Columns, OutlierColumn{
			Name:        name,
			NonMissing:  len(vec),
			Min:         sorted[0],
			Max:         sorted[len(sorted)-1],
			Median:      median,
			P25:         p25,
			P75:         p75,
			P95:         p95,
			P99:         p99,
			IQR:         iqr,
			LowerFence:  lower,
			UpperFence:  upper,
			OutlierRate: float64(outside) / float64(len(vec)),
		})
	}
	sort.SliceStable(out.Columns, func(i, j int) bool {
		return out.Columns[i].OutlierRate > out.Columns[j].OutlierRate
	})
	if len(out.Columns) == 0 {
		return out
	}

	metric := in.Config.OutlierMetric
	if _, ok := vectors[metric]; !ok {
		// fall back to the first admitted numeric column in schema order
		metric = ""
		for _, name := range in.Columns {
			if _, ok := vectors[name]; ok {
				metric = name
				break
			}
		}
	}
	out.Metric = metric
	threshold, _ := Quantile(sortedCopy(vectors[metric]), percentile)
	out.Threshold = threshold

	for i, r := range in.Rows {
		if v, ok := ParseNumeric(r[metric]); ok && v >= threshold {
			out.Flagged = append(out.Flagged, FlaggedRow{Index: i, Value: v})
		}
	}
	sort.SliceStable(out.Flagged, func(i, j int) bool {
		return out.Flagged[i].Value > out.Flagged[j].Value
	})
	return out
}
