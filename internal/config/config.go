package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Zedyas/zen-data-explorer/internal/profile"
)

// Global configuration structure.
type Global struct {
	// Profiling knobs
	MaxColumns        int     `mapstructure:"max_columns" yaml:"max_columns"`
	NullThresholdPct  float64 `mapstructure:"null_threshold_pct" yaml:"null_threshold_pct"`
	UniqueFloorPct    float64 `mapstructure:"unique_floor_pct" yaml:"unique_floor_pct"`
	OutlierMetric     string  `mapstructure:"outlier_metric" yaml:"outlier_metric"`
	OutlierPercentile float64 `mapstructure:"outlier_percentile" yaml:"outlier_percentile"`

	// Window loading
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
	TableName string `mapstructure:"table_name" yaml:"table_name"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// ProfileConfig converts the loaded settings into a profiling configuration.
func (c *Global) ProfileConfig() profile.Config {
	return profile.Config{
		MaxColumns:        c.MaxColumns,
		NullThresholdPct:  c.NullThresholdPct,
		UniqueFloorPct:    c.UniqueFloorPct,
		OutlierMetric:     c.OutlierMetric,
		OutlierPercentile: c.OutlierPercentile,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.zendex/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".zendex")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ZENDEX")
	v.AutomaticEnv()

	// Defaults mirror profile.DefaultConfig
	v.SetDefault("max_columns", 8)
	v.SetDefault("null_threshold_pct", 80.0)
	v.SetDefault("unique_floor_pct", 95.0)
	v.SetDefault("outlier_metric", "")
	v.SetDefault("outlier_percentile", 0.99)
	v.SetDefault("max_rows", 10000)
	v.SetDefault("table_name", "data")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".zendex")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
