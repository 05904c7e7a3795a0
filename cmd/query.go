package cmd

import (
	"fmt"
	"strings"

	"github.com/Zedyas/zen-data-explorer/internal/parser"
	"github.com/Zedyas/zen-data-explorer/internal/queryspec"
	"github.com/Zedyas/zen-data-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	qryFilters []string
	qryGroupBy []string
	qryAggs    []string
	qryHaving  []string
	qrySort    []string
	qryLimit   string
	qryTable   string
	qrySpec    bool
)

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Build a query spec against a CSV/TSV schema and compile it",
	Long: `query infers the file's schema, builds a spec from the given clauses,
validates it and prints the generated SQL and pandas program text.

Clause syntax:
  --filter  column,operator[,value]     e.g. --filter "status,=,active"
  --agg     op,column                   e.g. --agg "sum,amount"
  --having  metric,operator,value       e.g. --having "sum_amount,>,100"
  --sort    column[,asc|desc]           e.g. --sort "sum_amount,desc"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("table") && cfg.TableName != "" {
			qryTable = cfg.TableName
		}
		w, err := parser.LoadCSV(args[0], cfg.MaxRows)
		if err != nil {
			return err
		}
		schema := w.Schema()

		s := queryspec.New()
		for _, raw := range qryFilters {
			parts := splitClause(raw, 3)
			if len(parts) < 2 {
				return fmt.Errorf("invalid --filter %q, want column,operator[,value]", raw)
			}
			f := queryspec.Filter{Column: parts[0], Operator: parts[1]}
			if len(parts) == 3 {
				f.Value = parts[2]
			}
			s = queryspec.AppendFilter(s, f)
		}
		for _, g := range qryGroupBy {
			s = queryspec.AppendGroupBy(s, strings.TrimSpace(g))
		}
		for _, raw := range qryAggs {
			parts := splitClause(raw, 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid --agg %q, want op,column", raw)
			}
			s = queryspec.AppendAggregation(s, queryspec.Aggregation{Op: parts[0], Column: parts[1]})
		}
		for _, raw := range qryHaving {
			parts := splitClause(raw, 3)
			if len(parts) != 3 {
				return fmt.Errorf("invalid --having %q, want metric,operator,value", raw)
			}
			s = queryspec.AppendHaving(s, queryspec.HavingDraft{
				Metric: parts[0], Operator: parts[1], Value: parts[2],
			})
		}
		for _, raw := range qrySort {
			parts := splitClause(raw, 2)
			srt := queryspec.Sort{Column: parts[0], Direction: "asc"}
			if len(parts) == 2 {
				srt.Direction = parts[1]
			}
			s = queryspec.AppendSort(s, srt)
		}
		if qryLimit != "" {
			s, _ = queryspec.ApplyLimitValue(s, qryLimit)
		}

		if err := queryspec.Validate(s, schema); err != nil {
			return err
		}
		compiled, err := queryspec.Compile(s, qryTable, schema)
		if err != nil {
			return err
		}

		if qrySpec {
			b, err := utils.PrettyJSON(s)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			fmt.Println()
		}
		fmt.Println("[SQL]")
		fmt.Println(compiled.QueryText)
		if len(compiled.Params) > 0 {
			fmt.Printf("params: %v\n", compiled.Params)
		}
		fmt.Println()
		fmt.Println("[PANDAS]")
		fmt.Println(compiled.ProgramText)
		return nil
	},
}

// splitClause splits a comma-separated clause into at most n trimmed parts.
func splitClause(raw string, n int) []string {
	parts := strings.SplitN(raw, ",", n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringArrayVar(&qryFilters, "filter", nil, "row filter clause (repeatable)")
	queryCmd.Flags().StringSliceVar(&qryGroupBy, "group-by", nil, "grouping columns (repeatable)")
	queryCmd.Flags().StringArrayVar(&qryAggs, "agg", nil, "aggregation clause (repeatable)")
	queryCmd.Flags().StringArrayVar(&qryHaving, "having", nil, "having clause (repeatable)")
	queryCmd.Flags().StringArrayVar(&qrySort, "sort", nil, "sort clause (repeatable)")
	queryCmd.Flags().StringVar(&qryLimit, "limit", "", "row limit, clamped to [1,10000]")
	queryCmd.Flags().StringVar(&qryTable, "table", "data", "table name used in the generated SQL")
	queryCmd.Flags().BoolVar(&qrySpec, "spec", false, "print the spec as JSON before the compiled output")
}
