package queryspec

import (
	"fmt"
	"strings"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// Compiled is the textual form of a spec as the external engine reports it
// back: a parameterized SQL statement plus a pandas-style program rendering.
// Nothing here is ever executed by this package.
type Compiled struct {
	QueryText   string
	Params      []any
	ProgramText string
}

// Compile renders a validated spec against a table name. Callers should run
// Validate first; Compile repeats only the checks needed to build text.
func Compile(s Spec, table string, schema dataset.Schema) (Compiled, error) {
	var (
		where       []string
		params      []any
		havingParts []string
	)

	for _, f := range s.Filters {
		clause, p, err := filterClause(f, schema)
		if err != nil {
			return Compiled{}, err
		}
		where = append(where, clause)
		params = append(params, p...)
	}

	selectParts := make([]string, 0, len(s.GroupBy)+len(s.Aggregations))
	for _, col := range s.GroupBy {
		selectParts = append(selectParts, quoteIdent(col))
	}
	for _, a := range s.Aggregations {
		fn, ok := AggOps[a.Op]
		if !ok {
			return Compiled{}, fmt.Errorf("unsupported aggregation op: %s", a.Op)
		}
		target := "*"
		if a.Column != "*" {
			target = quoteIdent(a.Column)
		}
		selectParts = append(selectParts, fmt.Sprintf("%s(%s) AS %s", fn, target, quoteIdent(AggAlias(a))))
	}

	hasAgg := len(s.Aggregations) > 0
	selectSQL := "*"
	groupSQL := ""
	switch {
	case hasAgg && len(s.GroupBy) > 0:
		selectSQL = strings.Join(selectParts, ", ")
		groupSQL = "GROUP BY " + joinIdents(s.GroupBy)
	case hasAgg:
		selectSQL = strings.Join(selectParts, ", ")
	case len(s.GroupBy) > 0:
		// groupBy without aggregations is a distinct projection
		selectSQL = joinIdents(s.GroupBy)
		groupSQL = "GROUP BY " + joinIdents(s.GroupBy)
	}

	for _, h := range s.Having {
		havingParts = append(havingParts, fmt.Sprintf("%s %s ?", quoteIdent(h.Metric), h.Operator))
		params = append(params, h.Value)
	}

	var orderParts []string
	for _, so := range s.Sort {
		dir := "ASC"
		if so.Direction == "desc" {
			dir = "DESC"
		}
		orderParts = append(orderParts, fmt.Sprintf("%s %s NULLS LAST", quoteIdent(so.Column), dir))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", selectSQL, quoteIdent(table))
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if groupSQL != "" {
		b.WriteString(" " + groupSQL)
	}
	if len(havingParts) > 0 {
		b.WriteString(" HAVING " + strings.Join(havingParts, " AND "))
	}
	if len(orderParts) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(orderParts, ", "))
	}
	b.WriteString(" LIMIT ?")
	params = append(params, s.Limit)

	return Compiled{QueryText: b.String(), Params: params, ProgramText: programText(s)}, nil
}

func filterClause(f Filter, schema dataset.Schema) (string, []any, error) {
	t, ok := schema[f.Column]
	if !ok {
		return "", nil, fmt.Errorf("invalid filter column: %s", f.Column)
	}
	col := quoteIdent(f.Column)
	switch f.Operator {
	case "is_null":
		return col + " IS NULL", nil, nil
	case "is_not_null":
		return col + " IS NOT NULL", nil, nil
	}
	value, err := coerceValue(f.Value, t, f.Column)
	if err != nil {
		return "", nil, err
	}
	switch f.Operator {
	case "=", "!=", ">", "<", ">=", "<=":
		return fmt.Sprintf("%s %s ?", col, f.Operator), []any{value}, nil
	case "contains":
		return col + " ILIKE ?", []any{fmt.Sprintf("%%%v%%", value)}, nil
	case "starts_with":
		return col + " ILIKE ?", []any{fmt.Sprintf("%v%%", value)}, nil
	}
	return "", nil, fmt.Errorf("unsupported operator %q", f.Operator)
}

// programText renders the spec as a pandas-style chain, mirroring what the
// engine shows next to the generated SQL.
func programText(s Spec) string {
	parts := []string{"df"}
	for _, f := range s.Filters {
		switch f.Operator {
		case "is_null":
			parts = append(parts, fmt.Sprintf("[df[%q].isna()]", f.Column))
		case "is_not_null":
			parts = append(parts, fmt.Sprintf("[df[%q].notna()]", f.Column))
		case "=", "!=", ">", "<", ">=", "<=":
			op := f.Operator
			if op == "=" {
				op = "=="
			}
			parts = append(parts, fmt.Sprintf("[df[%q] %s %q]", f.Column, op, f.Value))
		case "contains":
			parts = append(parts, fmt.Sprintf("[df[%q].astype(str).str.contains(%q, case=False, na=False)]", f.Column, f.Value))
		case "starts_with":
			parts = append(parts, fmt.Sprintf("[df[%q].astype(str).str.startswith(%q, na=False)]", f.Column, f.Value))
		}
	}

	pandasOps := map[string]string{"count": "count", "sum": "sum", "avg": "mean", "min": "min", "max": "max"}
	if len(s.Aggregations) > 0 {
		if len(s.GroupBy) > 0 {
			var chunks []string
			for _, a := range s.Aggregations {
				col := a.Column
				if col == "*" {
					col = s.GroupBy[0]
				}
				chunks = append(chunks, fmt.Sprintf("%q: (%q, %q)", AggAlias(a), col, pandasOps[a.Op]))
			}
			parts = append(parts, fmt.Sprintf(".groupby(%s, dropna=False).agg({%s}).reset_index()",
				pyList(s.GroupBy), strings.Join(chunks, ", ")))
			if len(s.Having) > 0 {
				var conds []string
				for _, h := range s.Having {
					op := h.Operator
					if op == "=" {
						op = "=="
					}
					conds = append(conds, fmt.Sprintf("(`%s` %s %v)", h.Metric, op, h.Value))
				}
				parts = append(parts, fmt.Sprintf(".query(%q)", strings.Join(conds, " and ")))
			}
		} else if len(s.Aggregations) == 1 {
			a := s.Aggregations[0]
			if a.Column == "*" && a.Op == "count" {
				parts = append(parts, ".shape[0]")
			} else {
				parts = append(parts, fmt.Sprintf("[%q].%s()", a.Column, pandasOps[a.Op]))
			}
		}
	}

	if len(s.Sort) > 0 {
		cols := make([]string, len(s.Sort))
		asc := make([]string, len(s.Sort))
		for i, so := range s.Sort {
			cols[i] = so.Column
			asc[i] = "True"
			if so.Direction == "desc" {
				asc[i] = "False"
			}
		}
		parts = append(parts, fmt.Sprintf(".sort_values(%s, ascending=[%s])", pyList(cols), strings.Join(asc, ", ")))
	}

	parts = append(parts, fmt.Sprintf(".head(%d)", s.Limit))
	return strings.Join(parts, "")
}

func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = fmt.Sprintf("%q", it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func joinIdents(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}
