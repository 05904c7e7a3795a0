package profile

import (
	"fmt"
	"strings"
)

// Report renders the combined module output as a compact Markdown document
// suitable for terminals or docs.
func Report(in Input, results map[ModuleID]any) string {
	var b strings.Builder
	b.WriteString("[PROFILE SUMMARY]\n")
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n", len(in.Rows), len(in.Columns))

	if r, ok := results[ModuleMissingness].(MissingnessResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[MISSINGNESS]\n")
		for _, c := range r.Columns {
			fmt.Fprintf(&b, "- %s: %.1f%% missing (%d rows)\n", c.Name, c.Rate*100, c.Missing)
		}
		for i, p := range r.Patterns {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  • pattern {%s}: %d rows\n", strings.Join(p.Columns, ", "), p.Count)
		}
	}

	if r, ok := results[ModuleValidation].(ValidationResult); ok {
		if len(r.HighNull) > 0 || len(r.NearConstant) > 0 {
			b.WriteString("\n[VALIDATION]\n")
			for _, c := range r.HighNull {
				fmt.Fprintf(&b, "- %s: null rate %.1f%% ≥ threshold %.0f%%\n", c.Name, c.Rate*100, r.NullThreshold*100)
			}
			for _, c := range r.NearConstant {
				fmt.Fprintf(&b, "- %s: near-constant (unique rate %.2f%%)\n", c.Name, c.Rate*100)
			}
		}
	}

	if r, ok := results[ModuleKeys].(KeysResult); ok {
		if len(r.Single) > 0 || len(r.Composite) > 0 {
			b.WriteString("\n[KEY CANDIDATES]\n")
			for _, k := range r.Single {
				fmt.Fprintf(&b, "- %s (unique %.1f%%)\n", k.Name, k.UniqueRate*100)
			}
			for _, k := range r.Composite {
				fmt.Fprintf(&b, "- %s + %s (joint unique %.1f%%)\n", k.Columns[0], k.Columns[1], k.UniqueRate*100)
			}
		}
	}

	if r, ok := results[ModuleOutliers].(OutliersResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[OUTLIERS]\n")
		for _, c := range r.Columns {
			fmt.Fprintf(&b, "- %s: %.2f%% outside fences [%.4g, %.4g] (IQR %.4g)\n",
				c.Name, c.OutlierRate*100, c.LowerFence, c.UpperFence, c.IQR)
		}
		if r.Metric != "" {
			fmt.Fprintf(&b, "  • metric %s ≥ %.4g (p%.1f): %d rows flagged\n",
				r.Metric, r.Threshold, r.Percentile*100, len(r.Flagged))
		}
	}

	if r, ok := results[ModuleRelationships].(RelationshipsResult); ok && len(r.Pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for i, p := range r.Pairs {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f (n=%d)\n", p.A, p.B, p.R, p.N)
		}
	}

	if r, ok := results[ModuleUnivariate].(UnivariateResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[COLUMNS]\n")
		for _, c := range r.Columns {
			fmt.Fprintf(&b, "- %s: %s (missing %.1f%%) — %s\n", c.Name, c.Kind, c.MissingRate*100, c.Signal)
		}
	}

	if r, ok := results[ModuleSampling].(SamplingResult); ok && len(r.Ratios) > 0 {
		b.WriteString("\n[SAMPLING]\n")
		for _, s := range r.Ratios {
			fmt.Fprintf(&b, "- 1/%d (%d rows): null Δ %.4f, distinct retention %.2f, mean drift %.4f\n",
				s.Stride, s.Rows, s.NullRateDelta, s.DistinctRetention, s.NumericMeanDrift)
		}
	}

	if r, ok := results[ModuleParseCast].(ParseCastResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[PARSE/CAST]\n")
		for _, c := range r.Columns {
			fmt.Fprintf(&b, "- %s: numeric %.0f%%, date %.0f%%, boolean %.0f%% → %s\n",
				c.Name, c.NumericRate*100, c.DateRate*100, c.BooleanRate*100, c.Best)
		}
	}

	if r, ok := results[ModuleSentinel].(SentinelResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[SENTINEL TOKENS]\n")
		for _, c := range r.Columns {
			var toks []string
			for _, t := range c.Top {
				toks = append(toks, fmt.Sprintf("%s(%d)", t.Token, t.Count))
			}
			fmt.Fprintf(&b, "- %s: %d hits — %s\n", c.Name, c.Hits, strings.Join(toks, ", "))
		}
	}

	if r, ok := results[ModuleFreshness].(FreshnessResult); ok && len(r.Columns) > 0 {
		b.WriteString("\n[FRESHNESS]\n")
		for _, c := range r.Columns {
			fmt.Fprintf(&b, "- %s: latest %.0f days ago, %d/%d months observed", c.Name, c.RecencyDays, c.SpanMonths-c.MissingMonths, c.SpanMonths)
			if c.HasRatio {
				fmt.Fprintf(&b, ", latest/prev month %.2fx", c.LatestMonthRatio)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
