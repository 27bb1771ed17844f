// Package config loads the factory-atlas settings file. Every value
// has a default, so the service runs without any config present.
package config

import (
	"fmt"
	"time"

	"github.com/de-tools/factory-atlas/pkg/services/analysis"
	"github.com/de-tools/factory-atlas/pkg/services/insight"
	"github.com/de-tools/factory-atlas/pkg/services/simulation"
	"github.com/spf13/viper"
)

type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Analysis struct {
	FaultRateThreshold float64 `mapstructure:"fault_rate_threshold"`
	TopRiskCount       int     `mapstructure:"top_risk_count"`
	LowRiskThreshold   float64 `mapstructure:"low_risk_threshold"`
	WeakCorrelation    float64 `mapstructure:"weak_correlation"`
	StrongCorrelation  float64 `mapstructure:"strong_correlation"`
	OccupancyWeight    float64 `mapstructure:"occupancy_weight"`
	DowntimeWeight     float64 `mapstructure:"downtime_weight"`
}

type Simulation struct {
	Runs    int     `mapstructure:"runs"`
	SimTime float64 `mapstructure:"sim_time"`
	Seed    int64   `mapstructure:"seed"`
}

type Config struct {
	Server     Server     `mapstructure:"server"`
	DataDir    string     `mapstructure:"data_dir"`
	Analysis   Analysis   `mapstructure:"analysis"`
	Simulation Simulation `mapstructure:"simulation"`
}

// Load reads the config file at path, or returns defaults when path is
// empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("data_dir", "dashboard_data")

	defaults := analysis.DefaultSettings()
	v.SetDefault("analysis.fault_rate_threshold", defaults.Insight.FaultRateThreshold)
	v.SetDefault("analysis.top_risk_count", defaults.Insight.TopRiskCount)
	v.SetDefault("analysis.low_risk_threshold", defaults.Insight.LowRiskThreshold)
	v.SetDefault("analysis.weak_correlation", defaults.Insight.WeakCorrelation)
	v.SetDefault("analysis.strong_correlation", defaults.Insight.StrongCorrelation)
	v.SetDefault("analysis.occupancy_weight", defaults.OccupancyWeight)
	v.SetDefault("analysis.downtime_weight", defaults.DowntimeWeight)

	sim := simulation.DefaultConfig()
	v.SetDefault("simulation.runs", sim.Runs)
	v.SetDefault("simulation.sim_time", sim.SimTime)
	v.SetDefault("simulation.seed", sim.Seed)
}

// AnalysisSettings maps the loaded values onto the analyzer settings.
func (c *Config) AnalysisSettings() analysis.Settings {
	return analysis.Settings{
		OccupancyWeight: c.Analysis.OccupancyWeight,
		DowntimeWeight:  c.Analysis.DowntimeWeight,
		Insight: insight.Settings{
			FaultRateThreshold: c.Analysis.FaultRateThreshold,
			TopRiskCount:       c.Analysis.TopRiskCount,
			LowRiskThreshold:   c.Analysis.LowRiskThreshold,
			WeakCorrelation:    c.Analysis.WeakCorrelation,
			StrongCorrelation:  c.Analysis.StrongCorrelation,
		},
	}
}

// SimulationConfig starts from the model defaults and applies the
// configured run parameters.
func (c *Config) SimulationConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Runs = c.Simulation.Runs
	cfg.SimTime = c.Simulation.SimTime
	cfg.Seed = c.Simulation.Seed
	return cfg
}
