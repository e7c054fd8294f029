package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	start, err := cfg.StartTime()
	require.NoError(t, err)
	assert.Equal(t, 2020, start.Year())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := `
grid:
  columns: 16
run:
  dt: 600
soil:
  porosity: 0.55
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Grid.Columns)
	assert.Equal(t, 600.0, cfg.Run.Dt)
	assert.Equal(t, 0.55, cfg.Soil.Porosity)
	// Untouched sections keep defaults.
	assert.Equal(t, DefaultLevels, cfg.Grid.Levels)
	assert.Equal(t, DefaultIntegrator, cfg.Integrator)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("permafrost")
	require.NotNil(t, cfg)
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Soil.InitialTemperature, loaded.Soil.InitialTemperature)
	assert.Equal(t, cfg.Run.Duration, loaded.Run.Duration)
	assert.Len(t, loaded.Forcing, len(cfg.Forcing))
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	broken := map[string]func(*Config){
		"zero columns":   func(c *Config) { c.Grid.Columns = 0 },
		"negative dz":    func(c *Config) { c.Grid.Thickness = -0.1 },
		"zero dt":        func(c *Config) { c.Run.Dt = 0 },
		"short duration": func(c *Config) { c.Run.Duration = 1 },
		"bad start":      func(c *Config) { c.Run.Start = "yesterday" },
		"bad kind":       func(c *Config) { c.Forcing[0].Kind = "sinusoid" },
		"series no file": func(c *Config) { c.Forcing[0].Kind = "series"; c.Forcing[0].File = "" },
	}
	for name, mutate := range broken {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestPresetsAllValid(t *testing.T) {
	names := ListPresets()
	sort.Strings(names)
	assert.Contains(t, names, "temperate")
	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}
	assert.Nil(t, GetPreset("nonexistent"))
}
