// Package profile computes data-quality diagnostics over a bounded
// in-memory window of rows. Every module is a pure function of
// (columns, rows, config, now); inputs are never mutated, so outputs can be
// memoized by input identity.
package profile

import (
	"time"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// Config tunes the profiling modules.
type Config struct {
	// MaxColumns bounds how many columns the missingness matrix and the
	// correlation scan look at; clamped to [2,20] and [2,8] respectively.
	MaxColumns int `json:"maxColumns"`
	// NullThresholdPct flags columns whose missing rate reaches this
	// percentage. Clamped to [0,100].
	NullThresholdPct float64 `json:"nullThresholdPct"`
	// UniqueFloorPct is the distinctness percentage a column must reach to
	// qualify as a key candidate. Clamped to [0,100].
	UniqueFloorPct float64 `json:"uniqueFloorPct"`
	// OutlierMetric names the column used for row flagging; falls back to
	// the first admitted numeric column when absent or invalid.
	OutlierMetric string `json:"outlierMetric"`
	// OutlierPercentile is the flagging quantile; 0 means the 0.99 default.
	// Clamped to [0.80,0.999].
	OutlierPercentile float64 `json:"outlierPercentile"`
}

// DefaultConfig returns the stock profiling configuration.
func DefaultConfig() Config {
	return Config{
		MaxColumns:        8,
		NullThresholdPct:  80,
		UniqueFloorPct:    95,
		OutlierPercentile: 0.99,
	}
}

// Input is the value every module computes from.
type Input struct {
	Columns []string
	Rows    []dataset.Row
	Config  Config
	// Now anchors the freshness module; injected so results stay
	// deterministic.
	Now time.Time
}

// ModuleID names one profiling module.
type ModuleID string

const (
	ModuleMissingness   ModuleID = "missingness"
	ModuleValidation    ModuleID = "validation"
	ModuleKeys          ModuleID = "keys"
	ModuleOutliers      ModuleID = "outliers"
	ModuleRelationships ModuleID = "relationships"
	ModuleUnivariate    ModuleID = "univariate"
	ModuleSampling      ModuleID = "sampling"
	ModuleParseCast     ModuleID = "parsecast"
	ModuleSentinel      ModuleID = "sentinel"
	ModuleFreshness     ModuleID = "freshness"
)

// Module binds an identifier to its compute function. The set is closed:
// dispatch happens over this registry, never dynamically.
type Module struct {
	ID      ModuleID
	Compute func(Input) any
}

// Registry returns the ten modules in render order.
func Registry() []Module {
	return []Module{
		{ModuleMissingness, func(in Input) any { return Missingness(in) }},
		{ModuleValidation, func(in Input) any { return Validation(in) }},
		{ModuleKeys, func(in Input) any { return Keys(in) }},
		{ModuleOutliers, func(in Input) any { return Outliers(in) }},
		{ModuleRelationships, func(in Input) any { return Relationships(in) }},
		{ModuleUnivariate, func(in Input) any { return Univariate(in) }},
		{ModuleSampling, func(in Input) any { return Sampling(in) }},
		{ModuleParseCast, func(in Input) any { return ParseCast(in) }},
		{ModuleSentinel, func(in Input) any { return Sentinel(in) }},
		{ModuleFreshness, func(in Input) any { return Freshness(in) }},
	}
}

// Run executes every registered module and returns their outputs keyed by
// module id.
func Run(in Input) map[ModuleID]any {
	out := make(map[ModuleID]any, 10)
	for _, m := range Registry() {
		out[m.ID] = m.Compute(in)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
