package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetYAML = `battery:
  name: test-bank
  stack_count: 16
  autonomy_days: 1
  unit_capacity_kwh: 12.8
  charge_efficiency: 0.96
  discharge_efficiency: 0.96
  min_soc: 0.2
  max_soc: 0.9
hydrogen:
  name: test-loop
  tank_capacity_kg: 150
  electrolyzer_efficiency: 0.65
  fuelcell_efficiency: 0.5
  energy_density_kwh_per_kg: 39.4
  electrolyzer_max_kw: 100
  fuelcell_max_kw: 50
  nominal_pressure_bar: 350
  initial_fill_percent: 28
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AssetFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets.yaml", assetYAML)
	cfgPath := writeFile(t, dir, "config.yaml", `asset_file: assets.yaml
battery:
  stack_count: 32
policy:
  name: schedule
  params:
    store_start: "09:00"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Battery.StackCount) // override applied
	assert.Equal(t, "test-bank", cfg.Battery.Name)
	assert.InDelta(t, 12.8, cfg.Battery.UnitCapacityKWh, 0.001)
	assert.Equal(t, "schedule", cfg.Policy.Name)
	assert.Equal(t, "09:00", cfg.Policy.Params["store_start"])
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets.yaml", assetYAML)
	cfgPath := writeFile(t, dir, "config.yaml", "asset_file: assets.yaml\n")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Bank defaults to its float ceiling; thermal constants to the
	// reference set; policy to greedy.
	assert.InDelta(t, 0.9, cfg.Battery.InitialSOC, 0.001)
	assert.InDelta(t, 25, cfg.Hydrogen.InitialTemperatureC, 0.001)
	assert.InDelta(t, 1.5, cfg.Hydrogen.ProduceHeatRateC, 0.001)
	assert.InDelta(t, 1.2, cfg.Hydrogen.ConsumeHeatRateC, 0.001)
	assert.InDelta(t, 0.5, cfg.Hydrogen.CooldownRateC, 0.001)
	assert.Equal(t, "greedy", cfg.Policy.Name)
}

func TestLoad_InvalidAssetRejected(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", `battery:
  stack_count: 16
  autonomy_days: 1
  unit_capacity_kwh: 12.8
  charge_efficiency: 1.5
  discharge_efficiency: 0.96
  min_soc: 0.2
  max_soc: 0.9
hydrogen:
  tank_capacity_kg: 150
  electrolyzer_efficiency: 0.65
  fuelcell_efficiency: 0.5
  energy_density_kwh_per_kg: 39.4
  electrolyzer_max_kw: 100
  fuelcell_max_kw: 50
  nominal_pressure_bar: 350
`)

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestToInputs_BuildsAssets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets.yaml", assetYAML)
	cfgPath := writeFile(t, dir, "config.yaml", "asset_file: assets.yaml\n")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	bank, hfs, err := cfg.ToInputs().Build()
	require.NoError(t, err)
	assert.InDelta(t, 204.8, bank.Params.CapacityKWh(), 0.001)
	assert.InDelta(t, 42, hfs.State.MassKg, 0.001)
	assert.InDelta(t, 25, hfs.State.TemperatureC, 0.001)
}

func TestMergeBattery_ZeroFieldsKeepBase(t *testing.T) {
	base := BatteryConfig{StackCount: 16, MinSOC: 0.2, MaxSOC: 0.9}
	out := MergeBattery(base, BatteryConfig{MaxSOC: 0.85})
	assert.Equal(t, 16, out.StackCount)
	assert.InDelta(t, 0.2, out.MinSOC, 0.001)
	assert.InDelta(t, 0.85, out.MaxSOC, 0.001)
}
