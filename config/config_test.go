package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Thermo.PreciseBackend)
	assert.Equal(t, 0.03, cfg.Evaporator.HeatLossFraction)
	assert.Equal(t, 50, cfg.Evaporator.MaxIterations)
	assert.Equal(t, 1e-4, cfg.Evaporator.Tolerance)
	assert.Equal(t, 80, cfg.Crystallizer.GridPoints)
	assert.Equal(t, 8e-4, cfg.Crystallizer.MaxSize)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := `
[thermo]
PreciseBackend = false

[evaporator]
MaxIterations = 80
Tolerance = 1e-5

[crystallizer]
GridPoints = 120

[server]
Addr = :8080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Load(path)
	assert.False(t, cfg.Thermo.PreciseBackend)
	assert.Equal(t, 80, cfg.Evaporator.MaxIterations)
	assert.Equal(t, 1e-5, cfg.Evaporator.Tolerance)
	assert.Equal(t, 120, cfg.Crystallizer.GridPoints)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	// Untouched keys keep their defaults.
	assert.Equal(t, 0.03, cfg.Evaporator.HeatLossFraction)
	assert.Equal(t, 8e-4, cfg.Crystallizer.MaxSize)
}
