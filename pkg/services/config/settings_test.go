package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "dashboard_data", cfg.DataDir)
	assert.Equal(t, 0.05, cfg.Analysis.FaultRateThreshold)
	assert.Equal(t, 2, cfg.Analysis.TopRiskCount)
	assert.Equal(t, 100, cfg.Simulation.Runs)
	assert.Equal(t, 5000.0, cfg.Simulation.SimTime)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factory-atlas.yaml")
	content := `
server:
  addr: ":9100"
data_dir: /var/lib/factory
analysis:
  fault_rate_threshold: 0.08
simulation:
  runs: 10
  seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/factory", cfg.DataDir)
	assert.Equal(t, 0.08, cfg.Analysis.FaultRateThreshold)
	assert.Equal(t, 10, cfg.Simulation.Runs)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	// Unset values keep their defaults.
	assert.Equal(t, 0.5, cfg.Analysis.LowRiskThreshold)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSettingsMapping(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	settings := cfg.AnalysisSettings()
	assert.Equal(t, 0.6, settings.OccupancyWeight)
	assert.Equal(t, 0.05, settings.Insight.FaultRateThreshold)

	sim := cfg.SimulationConfig()
	assert.Equal(t, 100, sim.Runs)
	assert.Equal(t, 25, sim.ContainerSize)
}
