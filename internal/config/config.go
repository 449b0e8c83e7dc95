package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"backup-power-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load asset parameters from a separate YAML (e.g.
	// examples/assets/*.yaml). Explicit Battery/Hydrogen fields override
	// the file's values.
	AssetFile string         `yaml:"asset_file"`
	Battery   BatteryConfig  `yaml:"battery"`
	Hydrogen  HydrogenConfig `yaml:"hydrogen"`
	Policy    PolicyConfig   `yaml:"policy"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	StackCount          int     `yaml:"stack_count"`
	AutonomyDays        float64 `yaml:"autonomy_days"`
	UnitCapacityKWh     float64 `yaml:"unit_capacity_kwh"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
	InitialSOC          float64 `yaml:"initial_soc"`
}

type HydrogenConfig struct {
	Name                   string  `yaml:"name"`
	TankCapacityKg         float64 `yaml:"tank_capacity_kg"`
	ElectrolyzerEfficiency float64 `yaml:"electrolyzer_efficiency"`
	FuelCellEfficiency     float64 `yaml:"fuelcell_efficiency"`
	EnergyDensityKWhPerKg  float64 `yaml:"energy_density_kwh_per_kg"`
	ElectrolyzerMaxKW      float64 `yaml:"electrolyzer_max_kw"`
	FuelCellMaxKW          float64 `yaml:"fuelcell_max_kw"`
	NominalPressureBar     float64 `yaml:"nominal_pressure_bar"`
	ProduceHeatRateC       float64 `yaml:"produce_heat_rate_c"`
	ConsumeHeatRateC       float64 `yaml:"consume_heat_rate_c"`
	CooldownRateC          float64 `yaml:"cooldown_rate_c"`
	InitialFillPercent     float64 `yaml:"initial_fill_percent"`
	InitialTemperatureC    float64 `yaml:"initial_temperature_c"`
}

type PolicyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not default or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If asset_file is set, load it and merge in any explicit overrides.
	if c.AssetFile != "" {
		assetPath := c.AssetFile
		if !filepath.IsAbs(assetPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), assetPath)
			if _, err := os.Stat(cand); err == nil {
				assetPath = cand
			}
		}
		loaded, err := LoadAssetFile(assetPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded.Battery, c.Battery)
		c.Hydrogen = MergeHydrogen(loaded.Hydrogen, c.Hydrogen)
	}
	return &c, nil
}

// ApplyDefaults fills the fields configs usually leave out: a backup bank
// starts full (at its float ceiling), the hydrogen loop starts at ambient
// temperature with the reference thermal constants.
func (c *Config) ApplyDefaults() {
	if c.Battery.InitialSOC == 0 {
		c.Battery.InitialSOC = c.Battery.MaxSOC
	}
	if c.Hydrogen.InitialTemperatureC == 0 {
		c.Hydrogen.InitialTemperatureC = 25
	}
	def := model.DefaultHydrogenParams()
	if c.Hydrogen.ProduceHeatRateC == 0 {
		c.Hydrogen.ProduceHeatRateC = def.ProduceHeatRateC
	}
	if c.Hydrogen.ConsumeHeatRateC == 0 {
		c.Hydrogen.ConsumeHeatRateC = def.ConsumeHeatRateC
	}
	if c.Hydrogen.CooldownRateC == 0 {
		c.Hydrogen.CooldownRateC = def.CooldownRateC
	}
	if c.Policy.Name == "" {
		c.Policy.Name = "greedy"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Policy.Name == "" {
		return errors.New("policy.name is required")
	}
	// Validate asset params by constructing the models.
	if _, _, err := c.ToInputs().Build(); err != nil {
		return fmt.Errorf("asset config invalid: %w", err)
	}
	return nil
}

// ToInputs converts the on-disk shape to the canonical inputs bundle.
func (c *Config) ToInputs() model.SimulationInputs {
	return model.SimulationInputs{
		Battery: model.BatteryParams{
			StackCount:          c.Battery.StackCount,
			AutonomyDays:        c.Battery.AutonomyDays,
			UnitCapacityKWh:     c.Battery.UnitCapacityKWh,
			ChargeEfficiency:    c.Battery.ChargeEfficiency,
			DischargeEfficiency: c.Battery.DischargeEfficiency,
			MinSOC:              c.Battery.MinSOC,
			MaxSOC:              c.Battery.MaxSOC,
		},
		InitialSOC: c.Battery.InitialSOC,
		Hydrogen: model.HydrogenParams{
			TankCapacityKg:         c.Hydrogen.TankCapacityKg,
			ElectrolyzerEfficiency: c.Hydrogen.ElectrolyzerEfficiency,
			FuelCellEfficiency:     c.Hydrogen.FuelCellEfficiency,
			EnergyDensityKWhPerKg:  c.Hydrogen.EnergyDensityKWhPerKg,
			ElectrolyzerMaxKW:      c.Hydrogen.ElectrolyzerMaxKW,
			FuelCellMaxKW:          c.Hydrogen.FuelCellMaxKW,
			NominalPressureBar:     c.Hydrogen.NominalPressureBar,
			ProduceHeatRateC:       c.Hydrogen.ProduceHeatRateC,
			ConsumeHeatRateC:       c.Hydrogen.ConsumeHeatRateC,
			CooldownRateC:          c.Hydrogen.CooldownRateC,
		},
		InitialFillPercent:  c.Hydrogen.InitialFillPercent,
		InitialTemperatureC: c.Hydrogen.InitialTemperatureC,
	}
}

// AssetFileWrapper is the shape of a standalone asset preset YAML.
type AssetFileWrapper struct {
	Battery  BatteryConfig  `yaml:"battery"`
	Hydrogen HydrogenConfig `yaml:"hydrogen"`
}

func LoadAssetFile(path string) (AssetFileWrapper, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AssetFileWrapper{}, err
	}
	var w AssetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return AssetFileWrapper{}, err
	}
	return w, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// Used when loading an asset file and then applying per-run overrides.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.StackCount != 0 {
		out.StackCount = override.StackCount
	}
	if override.AutonomyDays != 0 {
		out.AutonomyDays = override.AutonomyDays
	}
	if override.UnitCapacityKWh != 0 {
		out.UnitCapacityKWh = override.UnitCapacityKWh
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	if override.MinSOC != 0 {
		out.MinSOC = override.MinSOC
	}
	if override.MaxSOC != 0 {
		out.MaxSOC = override.MaxSOC
	}
	if override.InitialSOC != 0 {
		out.InitialSOC = override.InitialSOC
	}
	return out
}

func MergeHydrogen(base, override HydrogenConfig) HydrogenConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.TankCapacityKg != 0 {
		out.TankCapacityKg = override.TankCapacityKg
	}
	if override.ElectrolyzerEfficiency != 0 {
		out.ElectrolyzerEfficiency = override.ElectrolyzerEfficiency
	}
	if override.FuelCellEfficiency != 0 {
		out.FuelCellEfficiency = override.FuelCellEfficiency
	}
	if override.EnergyDensityKWhPerKg != 0 {
		out.EnergyDensityKWhPerKg = override.EnergyDensityKWhPerKg
	}
	if override.ElectrolyzerMaxKW != 0 {
		out.ElectrolyzerMaxKW = override.ElectrolyzerMaxKW
	}
	if override.FuelCellMaxKW != 0 {
		out.FuelCellMaxKW = override.FuelCellMaxKW
	}
	if override.NominalPressureBar != 0 {
		out.NominalPressureBar = override.NominalPressureBar
	}
	if override.ProduceHeatRateC != 0 {
		out.ProduceHeatRateC = override.ProduceHeatRateC
	}
	if override.ConsumeHeatRateC != 0 {
		out.ConsumeHeatRateC = override.ConsumeHeatRateC
	}
	if override.CooldownRateC != 0 {
		out.CooldownRateC = override.CooldownRateC
	}
	if override.InitialFillPercent != 0 {
		out.InitialFillPercent = override.InitialFillPercent
	}
	if override.InitialTemperatureC != 0 {
		out.InitialTemperatureC = override.InitialTemperatureC
	}
	return out
}
