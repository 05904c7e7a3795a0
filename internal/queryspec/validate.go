package queryspec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// Validate checks a committed spec against a dataset schema the same way the
// external query engine would before compiling it. It returns the first
// violation found, or nil when the spec is executable.
func Validate(s Spec, schema dataset.Schema) error {
	for _, f := range s.Filters {
		if f.Column == "" {
			return fmt.Errorf("filter column is required")
		}
		t, ok := schema[f.Column]
		if !ok {
			return fmt.Errorf("invalid filter column: %s", f.Column)
		}
		if f.Operator == "" {
			return fmt.Errorf("filter operator is required for column: %s", f.Column)
		}
		if !operatorAllowed(f.Operator, t) {
			return fmt.Errorf("unsupported operator %q for column %q (%s)", f.Operator, f.Column, t)
		}
		if !IsNullTest(f.Operator) {
			if _, err := coerceValue(f.Value, t, f.Column); err != nil {
				return err
			}
		}
	}

	for _, col := range s.GroupBy {
		if _, ok := schema[col]; !ok {
			return fmt.Errorf("invalid groupBy column: %s", col)
		}
	}

	aliases := make(map[string]bool, len(s.Aggregations))
	for _, a := range s.Aggregations {
		if _, ok := AggOps[a.Op]; !ok {
			return fmt.Errorf("unsupported aggregation op: %s", a.Op)
		}
		if a.Column == "" {
			return fmt.Errorf("aggregation column is required")
		}
		if a.Column != "*" {
			t, ok := schema[a.Column]
			if !ok {
				return fmt.Errorf("invalid aggregation column: %s", a.Column)
			}
			if (a.Op == "sum" || a.Op == "avg") && !t.Numeric() {
				return fmt.Errorf("aggregation %s requires numeric column: %s", a.Op, a.Column)
			}
		}
		aliases[AggAlias(a)] = true
	}

	if len(s.Having) > 0 {
		if len(s.Aggregations) == 0 {
			return fmt.Errorf("having requires at least one aggregation")
		}
		if len(s.GroupBy) == 0 {
			return fmt.Errorf("having requires groupBy with aggregations")
		}
		for _, h := range s.Having {
			if h.Metric == "" {
				return fmt.Errorf("having metric is required")
			}
			if !aliases[h.Metric] {
				return fmt.Errorf("invalid having metric: %s", h.Metric)
			}
			if !havingOperatorAllowed(h.Operator) {
				return fmt.Errorf("unsupported having operator %q for metric %q", h.Operator, h.Metric)
			}
		}
	}

	for _, so := range s.Sort {
		if so.Column == "" {
			return fmt.Errorf("sort column is required")
		}
		if _, ok := schema[so.Column]; !ok && !aliases[so.Column] {
			return fmt.Errorf("invalid sort column: %s", so.Column)
		}
	}

	if s.Limit < MinLimit || s.Limit > MaxLimit {
		return fmt.Errorf("limit must be an integer between %d and %d", MinLimit, MaxLimit)
	}
	return nil
}

// coerceValue converts the string value of a filter into the engine-level
// representation for the column type.
func coerceValue(value string, t dataset.ColumnType, col string) (any, error) {
	switch t {
	case dataset.TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value for column %q: %s", col, value)
		}
		return n, nil
	case dataset.TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value for column %q: %s", col, value)
		}
		return f, nil
	case dataset.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "t", "yes", "y":
			return true, nil
		case "0", "false", "f", "no", "n":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean value for column %q: %s", col, value)
	case dataset.TypeDate:
		d, err := time.Parse("2006-01-02", strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid date value for column %q: %s (expected YYYY-MM-DD)", col, value)
		}
		return d.Format("2006-01-02"), nil
	default:
		return value, nil
	}
}
