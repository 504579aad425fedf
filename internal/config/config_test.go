package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a directory with no config file.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "own_results", cfg.ResultsDir)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "facloc.db", cfg.Store.Path)
	assert.Equal(t, 0, cfg.Build.Workers)
	assert.Equal(t, 1000, cfg.Generate.Users)
	assert.InDelta(t, 0.1, cfg.Generate.PFac, 1e-9)
	assert.InDelta(t, 1.5, cfg.Validate.CapacityFactor, 1e-9)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("FACLOC_DATA_DIR", "/tmp/instances")
	t.Setenv("FACLOC_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/instances", cfg.DataDir)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestLoad_ConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	yaml := "data_dir: bavaria\nvalidate:\n  budget_factor: 0.3\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bavaria", cfg.DataDir)
	assert.InDelta(t, 0.3, cfg.Validate.BudgetFactor, 1e-9)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "chatty", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
