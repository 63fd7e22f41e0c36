package config

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultMinSupport, cfg.Analysis.MinSupport)
	assert.Equal(t, DefaultMinConfidence, cfg.Analysis.MinConfidence)
	assert.Equal(t, DefaultTopN, cfg.Analysis.TopN)
	assert.Equal(t, DefaultExchangeRate, cfg.Analysis.ExchangeRate)
	assert.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"min support zero", func(c *Config) { c.Analysis.MinSupport = 0 }},
		{"min support above one", func(c *Config) { c.Analysis.MinSupport = 1.1 }},
		{"min support NaN", func(c *Config) { c.Analysis.MinSupport = math.NaN() }},
		{"min confidence zero", func(c *Config) { c.Analysis.MinConfidence = 0 }},
		{"min confidence NaN", func(c *Config) { c.Analysis.MinConfidence = math.NaN() }},
		{"negative exchange rate", func(c *Config) { c.Analysis.ExchangeRate = -1 }},
		{"zero top n", func(c *Config) { c.Analysis.TopN = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RETAIL_SERVER_PORT", "9090")
	t.Setenv("RETAIL_ANALYSIS_MIN_SUPPORT", "0.05")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.05, cfg.Analysis.MinSupport, 1e-12)
	// Untouched values keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	yaml := []byte("server:\n  port: 9191\nanalysis:\n  top_n: 25\n")
	require.NoError(t, os.WriteFile("config.yaml", yaml, 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Analysis.TopN)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "testdata"

	assert.Equal(t, "testdata/OrderDetails.csv", cfg.OrderLinePath())
	assert.Equal(t, "testdata/ListofOrders.csv", cfg.OrderHeaderPath())
	assert.Equal(t, "testdata/Salestarget.csv", cfg.TargetPath())
}
