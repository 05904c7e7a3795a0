package queryspec

import (
	"math"
	"strconv"
	"strings"
)

// AppendFilter commits a filter draft. Drafts with an empty column or
// operator are ignored and the spec is returned unchanged. Null-test
// operators always store an empty value regardless of what the draft holds.
func AppendFilter(s Spec, draft Filter) Spec {
	if draft.Column == "" || draft.Operator == "" {
		return s
	}
	if IsNullTest(draft.Operator) {
		draft.Value = ""
	}
	s.Filters = appendCopy(s.Filters, draft)
	return s
}

// AppendGroupBy adds a grouping column with set semantics: empty names and
// columns already present are ignored, insertion order is kept.
func AppendGroupBy(s Spec, column string) Spec {
	if column == "" {
		return s
	}
	for _, g := range s.GroupBy {
		if g == column {
			return s
		}
	}
	s.GroupBy = appendCopy(s.GroupBy, column)
	return s
}

// AppendAggregation commits an aggregation draft. Only op and column are
// stored; any alias on the draft is discarded. Empty columns are ignored.
func AppendAggregation(s Spec, draft Aggregation) Spec {
	if draft.Column == "" {
		return s
	}
	s.Aggregations = appendCopy(s.Aggregations, Aggregation{Op: draft.Op, Column: draft.Column})
	return s
}

// AggAlias resolves the effective alias of an aggregation: the trimmed
// explicit alias if non-empty, else "op_column" with '*' replaced by "all".
// Display and having-clause matching both depend on this being stable.
func AggAlias(a Aggregation) string {
	if alias := strings.TrimSpace(a.Alias); alias != "" {
		return alias
	}
	return a.Op + "_" + strings.ReplaceAll(a.Column, "*", "all")
}

// HavingDraft is the raw UI input for a having clause; Value is coerced to a
// number when it parses as one.
type HavingDraft struct {
	Metric   string
	Operator string
	Value    string
}

// AppendHaving commits a having draft. Drafts missing a metric, operator, or
// a non-blank value are ignored. The value is stored as a float64 when it
// parses to a finite number, else as the trimmed string.
func AppendHaving(s Spec, draft HavingDraft) Spec {
	value := strings.TrimSpace(draft.Value)
	if draft.Metric == "" || draft.Operator == "" || value == "" {
		return s
	}
	var stored any = value
	if n, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		stored = n
	}
	s.Having = appendCopy(s.Having, Having{Metric: draft.Metric, Operator: draft.Operator, Value: stored})
	return s
}

// AppendSort commits a sort draft. Empty columns are ignored; duplicate
// columns are allowed.
func AppendSort(s Spec, draft Sort) Spec {
	if draft.Column == "" {
		return s
	}
	s.Sort = appendCopy(s.Sort, draft)
	return s
}

// ApplyLimitValue parses a raw limit input, clamps it to [MinLimit,MaxLimit]
// and returns the updated spec along with the canonical limit string. Inputs
// that do not parse to a finite number leave the spec unchanged.
func ApplyLimitValue(s Spec, input string) (Spec, string) {
	n, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return s, strconv.Itoa(s.Limit)
	}
	limit := int(math.Round(n))
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	s.Limit = limit
	return s, strconv.Itoa(limit)
}

// RemoveFilter drops the filter at index i; out-of-range indexes are ignored.
func RemoveFilter(s Spec, i int) Spec {
	s.Filters = removeAt(s.Filters, i)
	return s
}

// RemoveGroupBy drops the grouping column at index i.
func RemoveGroupBy(s Spec, i int) Spec {
	s.GroupBy = removeAt(s.GroupBy, i)
	return s
}

// RemoveAggregation drops the aggregation at index i and cascades: every
// having clause whose metric equals the removed aggregation's alias is
// removed atomically with it.
func RemoveAggregation(s Spec, i int) Spec {
	if i < 0 || i >= len(s.Aggregations) {
		return s
	}
	alias := AggAlias(s.Aggregations[i])
	s.Aggregations = removeAt(s.Aggregations, i)
	kept := make([]Having, 0, len(s.Having))
	for _, h := range s.Having {
		if h.Metric != alias {
			kept = append(kept, h)
		}
	}
	s.Having = kept
	return s
}

// RemoveHaving drops the having clause at index i.
func RemoveHaving(s Spec, i int) Spec {
	s.Having = removeAt(s.Having, i)
	return s
}

// RemoveSort drops the sort entry at index i.
func RemoveSort(s Spec, i int) Spec {
	s.Sort = removeAt(s.Sort, i)
	return s
}

// EnsureDraftColumn keeps a transient column selection valid as the schema
// changes: the current choice survives if the schema still contains it,
// otherwise the first column wins, otherwise empty.
func EnsureDraftColumn(current string, columns []string) string {
	for _, c := range columns {
		if c == current {
			return current
		}
	}
	if len(columns) > 0 {
		return columns[0]
	}
	return ""
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func removeAt[T any](in []T, i int) []T {
	if i < 0 || i >= len(in) {
		return in
	}
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:i]...)
	return append(out, in[i+1:]...)
}
