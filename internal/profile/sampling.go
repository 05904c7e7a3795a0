package profile

import (
	"math"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// SamplingRatio is the representativeness diagnostic for one stride sample.
type SamplingRatio struct {
	Ratio             float64 `json:"ratio"`
	Stride            int     `json:"stride"`
	Rows              int     `json:"rows"`
	NullRateDelta     float64 `json:"nullRateDelta"`
	DistinctRetention float64 `json:"distinctRetention"`
	NumericMeanDrift  float64 `json:"numericMeanDrift"`
}

// SamplingResult is the output of the sampling module.
type SamplingResult struct {
	Ratios []SamplingRatio `json:"ratios"`
}

var samplingRatios = []float64{0.10, 0.25, 0.50}

// Sampling takes every stride-th row for a fixed set of ratios and measures
// how far each sample drifts from the full window: average null-rate delta,
// mean distinct-value retention, and mean relative drift of numeric means.
func Sampling(in Input) SamplingResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return SamplingResult{}
	}

	full := make(map[string]colStats, len(in.Columns))
	fullMeans := make(map[string]float64)
	for _, name := range in.Columns {
		full[name] = columnStats(name, in.Rows)
		if vec := numericVector(in.Rows, name); len(vec) > 0 {
			fullMeans[name] = mean(vec)
		}
	}

	out := SamplingResult{}
	for _, ratio := range samplingRatios {
		stride := int(math.Round(1 / ratio))
		if stride < 1 {
			stride = 1
		}
		var sample []dataset.Row
		for i := 0; i < len(in.Rows); i += stride {
			sample = append(sample, in.Rows[i])
		}

		var (
			nullDelta    float64
			retention    float64
			drift        float64
			driftColumns int
		)
		for _, name := range in.Columns {
			fs := full[name]
			ss := columnStats(name, sample)
			nullDelta += math.Abs(ss.missingRate() - fs.missingRate())

			r := float64(ss.distinct) / math.Max(1, float64(fs.distinct))
			if r > 1 {
				r = 1
			}
			retention += r

			if fm, ok := fullMeans[name]; ok {
				vec := numericVector(sample, name)
				if len(vec) == 0 {
					continue
				}
				drift += math.Abs(mean(vec)-fm) / math.Max(1e-9, math.Abs(fm))
				driftColumns++
			}
		}
		ncols := float64(len(in.Columns))
		sr := SamplingRatio{
			Ratio:             ratio,
			Stride:            stride,
			Rows:              len(sample),
			NullRateDelta:     nullDelta / ncols,
			DistinctRetention: retention / ncols,
		}
		if driftColumns > 0 {
			sr.NumericMeanDrift = drift / float64(driftColumns)
		}
		out.Ratios = append(out.Ratios, sr)
	}
	return out
}
