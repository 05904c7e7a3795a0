package profile

import (
	"fmt"
	"sort"
	"time"
)

// UnivariateColumn is one column's inferred kind plus a one-line signal.
type UnivariateColumn struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // boolean|numeric|date|string
	Signal      string  `json:"signal"`
	MissingRate float64 `json:"missingRate"`
	NonMissing  int     `json:"nonMissing"`
}

// UnivariateResult is the output of the univariate module.
type UnivariateResult struct {
	Columns []UnivariateColumn `json:"columns"`
}

const signalValueMax = 16

// Univariate infers a kind per column from parse coverage over the
// non-missing values (boolean, then numeric, then date, at 80% coverage
// each; string otherwise) and renders a compact summary signal for it.
func Univariate(in Input) UnivariateResult {
	if len(in.Rows) == 0 || len(in.Columns) == 0 {
		return UnivariateResult{}
	}

	out := UnivariateResult{}
	for _, name := range in.Columns {
		s := columnStats(name, in.Rows)
		col := UnivariateColumn{Name: name, MissingRate: s.missingRate(), NonMissing: s.nonMissing}
		if s.nonMissing == 0 {
			col.Kind = "string"
			col.Signal = "no values"
			out.Columns = append(out.Columns, col)
			continue
		}

		var (
			boolVals []bool
			numVals  []float64
			dates    []time.Time
		)
		counts := make(map[string]int)
		for _, r := range in.Rows {
			v := r[name]
			if IsMissing(v) {
				continue
			}
			if b, ok := ParseBoolean(v); ok {
				boolVals = append(boolVals, b)
			}
			if x, ok := ParseNumeric(v); ok {
				numVals = append(numVals, x)
			}
			if d, ok := ParseDate(v); ok {
				dates = append(dates, d)
			}
			counts[valueKey(v)]++
		}

		nn := float64(s.nonMissing)
		switch {
		case float64(len(boolVals))/nn >= 0.8:
			col.Kind = "boolean"
			trues := 0
			for _, b := range boolVals {
				if b {
					trues++
				}
			}
			col.Signal = fmt.Sprintf("true %.1f%%", float64(trues)*100/float64(len(boolVals)))
		case float64(len(numVals))/nn >= 0.8:
			col.Kind = "numeric"
			sorted := sortedCopy(numVals)
			median, _ := Quantile(sorted, 0.5)
			p95, _ := Quantile(sorted, 0.95)
			col.Signal = fmt.Sprintf("median %.4g, p95 %.4g", median, p95)
		case float64(len(dates))/nn >= 0.8:
			col.Kind = "date"
			lo, hi := dates[0], dates[0]
			for _, d := range dates[1:] {
				if d.Before(lo) {
					lo = d
				}
				if d.After(hi) {
					hi = d
				}
			}
			col.Signal = fmt.Sprintf("%s → %s", lo.Format("2006-01"), hi.Format("2006-01"))
		default:
			col.Kind = "string"
			col.Signal = topValueSignal(counts, s.nonMissing)
		}
		out.Columns = append(out.Columns, col)
	}

	sort.SliceStable(out.Columns, func(i, j int) bool {
		if out.Columns[i].MissingRate != out.Columns[j].MissingRate {
			return out.Columns[i].MissingRate > out.Columns[j].MissingRate
		}
		return out.Columns[i].Name < out.Columns[j].Name
	})
	return out
}

// topValueSignal reports the dominant value and its share. A tie for the top
// count means there is no dominant value and the signal says so.
func topValueSignal(counts map[string]int, nonMissing int) string {
	top, runnerUp := 0, 0
	topVal := ""
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := counts[k]
		if c > top {
			runnerUp = top
			top = c
			topVal = k
		} else if c > runnerUp {
			runnerUp = c
		}
	}
	if top == 0 {
		return "no values"
	}
	if top == runnerUp {
		return "no dominant value"
	}
	if len(topVal) > signalValueMax {
		topVal = topVal[:signalValueMax]
	}
	return fmt.Sprintf("top %q (%.1f%%)", topVal, float64(top)*100/float64(nonMissing))
}
