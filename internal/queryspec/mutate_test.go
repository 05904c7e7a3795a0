package queryspec

import (
	"reflect"
	"testing"
)

func TestAppendFilterRejectsIncompleteDrafts(t *testing.T) {
	s := New()
	got := AppendFilter(s, Filter{Column: "", Operator: "=", Value: ""})
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("empty column should be a no-op, got %+v", got)
	}
	got = AppendFilter(s, Filter{Column: "amount", Operator: "", Value: "5"})
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("empty operator should be a no-op, got %+v", got)
	}
}

func TestAppendFilterForcesEmptyValueOnNullTests(t *testing.T) {
	s := AppendFilter(New(), Filter{Column: "note", Operator: "is_null", Value: "garbage"})
	if len(s.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(s.Filters))
	}
	if s.Filters[0].Value != "" {
		t.Errorf("null-test filter kept value %q", s.Filters[0].Value)
	}
	s = AppendFilter(s, Filter{Column: "note", Operator: "is_not_null", Value: "x"})
	if s.Filters[1].Value != "" {
		t.Errorf("is_not_null kept value %q", s.Filters[1].Value)
	}
}

func TestAppendFilterDoesNotMutateInput(t *testing.T) {
	base := AppendFilter(New(), Filter{Column: "a", Operator: "=", Value: "1"})
	before := len(base.Filters)
	_ = AppendFilter(base, Filter{Column: "b", Operator: "=", Value: "2"})
	if len(base.Filters) != before {
		t.Fatalf("input spec mutated: %d filters", len(base.Filters))
	}
}

func TestAppendGroupBySetSemantics(t *testing.T) {
	s := New()
	s = AppendGroupBy(s, "region")
	s = AppendGroupBy(s, "region")
	s = AppendGroupBy(s, "")
	s = AppendGroupBy(s, "city")
	want := []string{"region", "city"}
	if !reflect.DeepEqual(s.GroupBy, want) {
		t.Fatalf("groupBy = %v, want %v", s.GroupBy, want)
	}
}

func TestAggAlias(t *testing.T) {
	cases := []struct {
		agg  Aggregation
		want string
	}{
		{Aggregation{Op: "count", Column: "*"}, "count_all"},
		{Aggregation{Op: "sum", Column: "amt", Alias: "total"}, "total"},
		{Aggregation{Op: "sum", Column: "amt", Alias: "  total  "}, "total"},
		{Aggregation{Op: "avg", Column: "price", Alias: "   "}, "avg_price"},
	}
	for _, c := range cases {
		if got := AggAlias(c.agg); got != c.want {
			t.Errorf("AggAlias(%+v) = %q, want %q", c.agg, got, c.want)
		}
	}
}

func TestAppendAggregationDropsDraftAlias(t *testing.T) {
	s := AppendAggregation(New(), Aggregation{Op: "sum", Column: "amt", Alias: "leaked"})
	if len(s.Aggregations) != 1 {
		t.Fatalf("expected 1 aggregation, got %d", len(s.Aggregations))
	}
	if s.Aggregations[0].Alias != "" {
		t.Errorf("draft alias should not be stored, got %q", s.Aggregations[0].Alias)
	}
	if got := AppendAggregation(s, Aggregation{Op: "sum", Column: ""}); !reflect.DeepEqual(got, s) {
		t.Errorf("empty column should be a no-op")
	}
}

func TestAppendHavingCoercion(t *testing.T) {
	s := New()
	s = AppendHaving(s, HavingDraft{Metric: "count_all", Operator: ">", Value: " 10 "})
	s = AppendHaving(s, HavingDraft{Metric: "count_all", Operator: "=", Value: "high"})
	if len(s.Having) != 2 {
		t.Fatalf("expected 2 having clauses, got %d", len(s.Having))
	}
	if v, ok := s.Having[0].Value.(float64); !ok || v != 10 {
		t.Errorf("numeric value not coerced: %#v", s.Having[0].Value)
	}
	if v, ok := s.Having[1].Value.(string); !ok || v != "high" {
		t.Errorf("string value mangled: %#v", s.Having[1].Value)
	}

	for _, draft := range []HavingDraft{
		{Metric: "", Operator: ">", Value: "1"},
		{Metric: "m", Operator: "", Value: "1"},
		{Metric: "m", Operator: ">", Value: "   "},
	} {
		if got := AppendHaving(s, draft); !reflect.DeepEqual(got, s) {
			t.Errorf("draft %+v should be a no-op", draft)
		}
	}
}

func TestAppendSortAllowsDuplicates(t *testing.T) {
	s := New()
	s = AppendSort(s, Sort{Column: "a", Direction: "asc"})
	s = AppendSort(s, Sort{Column: "a", Direction: "desc"})
	if len(s.Sort) != 2 {
		t.Fatalf("expected duplicate sort entries, got %d", len(s.Sort))
	}
	if got := AppendSort(s, Sort{Column: ""}); !reflect.DeepEqual(got, s) {
		t.Errorf("empty column should be a no-op")
	}
}

func TestApplyLimitValue(t *testing.T) {
	s := New()

	s2, canon := ApplyLimitValue(s, "999999")
	if s2.Limit != MaxLimit || canon != "10000" {
		t.Errorf("clamp high: limit=%d canon=%q", s2.Limit, canon)
	}
	s2, canon = ApplyLimitValue(s, "-3")
	if s2.Limit != MinLimit || canon != "1" {
		t.Errorf("clamp low: limit=%d canon=%q", s2.Limit, canon)
	}
	s2, canon = ApplyLimitValue(s, "abc")
	if s2.Limit != s.Limit || canon != "200" {
		t.Errorf("non-numeric input must leave limit unchanged: limit=%d canon=%q", s2.Limit, canon)
	}
	s2, _ = ApplyLimitValue(s, "42.6")
	if s2.Limit != 43 {
		t.Errorf("fractional input should round, got %d", s2.Limit)
	}
}

func TestRemoveAggregationCascadesHaving(t *testing.T) {
	s := New()
	s = AppendAggregation(s, Aggregation{Op: "count", Column: "*"})
	s = AppendAggregation(s, Aggregation{Op: "sum", Column: "amt"})
	s = AppendHaving(s, HavingDraft{Metric: "count_all", Operator: ">", Value: "5"})
	s = AppendHaving(s, HavingDraft{Metric: "sum_amt", Operator: ">", Value: "100"})
	s = AppendHaving(s, HavingDraft{Metric: "count_all", Operator: "<", Value: "50"})

	s = RemoveAggregation(s, 0) // count_all
	if len(s.Aggregations) != 1 || s.Aggregations[0].Column != "amt" {
		t.Fatalf("wrong aggregation removed: %+v", s.Aggregations)
	}
	if len(s.Having) != 1 || s.Having[0].Metric != "sum_amt" {
		t.Fatalf("cascade failed: %+v", s.Having)
	}

	if got := RemoveAggregation(s, 9); !reflect.DeepEqual(got, s) {
		t.Errorf("out-of-range removal should be a no-op")
	}
}

func TestEnsureDraftColumn(t *testing.T) {
	cols := []string{"a", "b", "c"}
	if got := EnsureDraftColumn("b", cols); got != "b" {
		t.Errorf("valid selection should survive, got %q", got)
	}
	if got := EnsureDraftColumn("gone", cols); got != "a" {
		t.Errorf("invalid selection should fall back to first column, got %q", got)
	}
	if got := EnsureDraftColumn("gone", nil); got != "" {
		t.Errorf("empty schema should yield empty, got %q", got)
	}
}
