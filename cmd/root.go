package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/Zedyas/zen-data-explorer/internal/config"
	"github.com/Zedyas/zen-data-explorer/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	flagRows int

	// Loaded configuration
	cfg *cfgpkg.Global
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zendex",
	Short: "Zen Data Explorer: query-spec tooling and dataset profiling",
	Long:  `zendex builds declarative table query specs, compiles them to SQL and pandas program text, and profiles bounded windows of tabular data with ten diagnostic modules.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.zendex/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagRows, "max-rows", 0, "window size in rows (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("max-rows") && flagRows > 0 {
		cfg.MaxRows = flagRows
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logging.Setup(level)
}
