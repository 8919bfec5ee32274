package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/horizon/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.02, cfg.InflationRate)
	assert.Equal(t, 100, cfg.MaxAge)
	assert.Equal(t, valuation.PerpetuityZero, cfg.Perpetuity)
	assert.False(t, cfg.LogEnabled)
	assert.Equal(t, "horizon.db", filepath.Base(cfg.DBPath))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HORIZON_DB", "/tmp/h.db")
	t.Setenv("HORIZON_INFLATION_RATE", "0.035")
	t.Setenv("HORIZON_MAX_AGE", "95")
	t.Setenv("HORIZON_PERPETUITY", "formula")
	t.Setenv("HORIZON_LOG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
	assert.Equal(t, 0.035, cfg.InflationRate)
	assert.True(t, cfg.InflationRateSet)
	assert.Equal(t, 95, cfg.MaxAge)
	assert.Equal(t, valuation.PerpetuityFormula, cfg.Perpetuity)
	assert.True(t, cfg.LogEnabled)
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("HORIZON_MAX_AGE", "old")
	t.Setenv("HORIZON_TIMELINE_WIDTH", "-3")
	t.Setenv("HORIZON_PERPETUITY", "forever")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxAge)
	assert.Equal(t, 72, cfg.TimelineWidth)
	assert.Equal(t, valuation.PerpetuityZero, cfg.Perpetuity)
}

func TestLoadConfig_InflationRateSetOnlyWhenExplicit(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.InflationRateSet)

	t.Setenv("HORIZON_INFLATION_RATE", "lots")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.InflationRateSet, "malformed value is ignored")
	assert.Equal(t, 0.02, cfg.InflationRate)

	path := filepath.Join(t.TempDir(), "horizon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_age: 90\n"), 0o644))
	t.Setenv("HORIZON_CONFIG", path)
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.InflationRateSet, "file without inflation_rate")

	require.NoError(t, os.WriteFile(path, []byte("inflation_rate: -1.5\n"), 0o644))
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "inflation_rate must be greater than -1")
}

func TestLoadConfig_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horizon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inflation_rate: 0.03\ntimeline_width: 120\nperpetuity: formula\n"), 0o644))
	t.Setenv("HORIZON_CONFIG", path)
	t.Setenv("HORIZON_TIMELINE_WIDTH", "80")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.03, cfg.InflationRate)
	assert.True(t, cfg.InflationRateSet, "file sets the rate explicitly")
	assert.Equal(t, 80, cfg.TimelineWidth, "env wins over the file")
	assert.Equal(t, valuation.PerpetuityFormula, cfg.Perpetuity)
	assert.Equal(t, 100, cfg.MaxAge, "unset keys keep defaults")
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("HORIZON_CONFIG", filepath.Join(dir, "missing.yaml"))
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "reading config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_age: [1, 2"), 0o644))
	t.Setenv("HORIZON_CONFIG", bad)
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "parsing config file")

	policy := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(policy, []byte("perpetuity: annuity\n"), 0o644))
	t.Setenv("HORIZON_CONFIG", policy)
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "invalid perpetuity policy")
}
