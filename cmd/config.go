package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/Zedyas/zen-data-explorer/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set zendex configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("max_columns: %d\n", cfg.MaxColumns)
		fmt.Printf("null_threshold_pct: %.1f\n", cfg.NullThresholdPct)
		fmt.Printf("unique_floor_pct: %.1f\n", cfg.UniqueFloorPct)
		if cfg.OutlierMetric != "" {
			fmt.Printf("outlier_metric: %s\n", cfg.OutlierMetric)
		}
		fmt.Printf("outlier_percentile: %.3f\n", cfg.OutlierPercentile)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("table_name: %s\n", cfg.TableName)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "max_columns":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for max_columns: %v", val)
			}
			cfg.MaxColumns = i
		case "null_threshold_pct":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 100 {
				return fmt.Errorf("invalid percentage for null_threshold_pct: %v", val)
			}
			cfg.NullThresholdPct = f
		case "unique_floor_pct":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 100 {
				return fmt.Errorf("invalid percentage for unique_floor_pct: %v", val)
			}
			cfg.UniqueFloorPct = f
		case "outlier_metric":
			cfg.OutlierMetric = val
		case "outlier_percentile":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f >= 1 {
				return fmt.Errorf("invalid quantile for outlier_percentile: %v", val)
			}
			cfg.OutlierPercentile = f
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "table_name":
			cfg.TableName = val
		case "log_level":
			cfg.LogLevel = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
