package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Zedyas/zen-data-explorer/internal/parser"
	"github.com/Zedyas/zen-data-explorer/internal/profile"
	"github.com/Zedyas/zen-data-explorer/internal/queryspec"
	"github.com/Zedyas/zen-data-explorer/internal/session"
	"github.com/Zedyas/zen-data-explorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profOutputPath string
	profJSON       bool
	profMaxCols    int
	profNullThr    float64
	profUniqueFlr  float64
	profMetric     string
	profPercentile float64
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Profile a CSV/TSV window with the diagnostic modules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		pcfg := cfg.ProfileConfig()
		f := cmd.Flags()
		if f.Changed("max-columns") {
			pcfg.MaxColumns = profMaxCols
		}
		if f.Changed("null-threshold") {
			pcfg.NullThresholdPct = profNullThr
		}
		if f.Changed("unique-floor") {
			pcfg.UniqueFloorPct = profUniqueFlr
		}
		if profMetric != "" {
			pcfg.OutlierMetric = profMetric
		}
		if f.Changed("outlier-percentile") {
			pcfg.OutlierPercentile = profPercentile
		}

		w, err := parser.LoadCSV(path, cfg.MaxRows)
		if err != nil {
			return err
		}
		if w.Truncated {
			log.Warn("window truncated", "file", path, "rows", len(w.Rows))
		}

		// the loaded window plays the query collaborator's role here
		rs := w.ResultSet()
		ex := session.ExecutorFunc(func(context.Context, queryspec.Spec) (session.QueryResult, error) {
			return session.QueryResult{
				Columns:  rs.Columns,
				Rows:     rs.Rows,
				RowCount: len(rs.Rows),
			}, nil
		})

		sess := session.New(pcfg, log)
		cell := sess.NewCell()
		<-cell.Run(cmd.Context(), ex)
		if cell.Err() != "" {
			return fmt.Errorf("load window: %s", cell.Err())
		}

		now := time.Now().UTC()
		results := cell.Profile(now)
		in := profile.Input{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Config:  pcfg,
			Now:     now,
		}

		var out []byte
		if profJSON {
			out, err = utils.PrettyJSON(results)
			if err != nil {
				return err
			}
		} else {
			out = []byte(profile.Report(in, results))
		}

		if profOutputPath != "" {
			if err := os.WriteFile(profOutputPath, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", profOutputPath)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile")
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "emit raw module output as JSON")
	profileCmd.Flags().IntVar(&profMaxCols, "max-columns", 8, "columns considered by the missingness matrix and correlation scan")
	profileCmd.Flags().Float64Var(&profNullThr, "null-threshold", 80, "missing-rate percentage that flags a column")
	profileCmd.Flags().Float64Var(&profUniqueFlr, "unique-floor", 95, "distinctness percentage for key candidates")
	profileCmd.Flags().StringVar(&profMetric, "outlier-metric", "", "column used for outlier row flagging")
	profileCmd.Flags().Float64Var(&profPercentile, "outlier-percentile", 0.99, "flagging quantile for the outlier metric")
}
