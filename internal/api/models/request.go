package models

import "time"

// SimulateRequest is the request body for running a simulation. The net-load
// profile is either supplied inline or generated from a synthetic spec.
type SimulateRequest struct {
	Profile   *ProfileInput    `json:"profile,omitempty"`
	Synthetic *SyntheticInput  `json:"synthetic,omitempty"`
	Config    SimConfig        `json:"config" binding:"required"`
	Options   SimulateOptions  `json:"options,omitempty"`
}

// ProfileInput is an inline net-load profile.
type ProfileInput struct {
	Name string              `json:"name,omitempty"`
	Data []NetLoadInterval   `json:"data" binding:"required"`
}

// NetLoadInterval is one interval of net load. Positive values are a deficit
// the plant must serve, negative values are storable surplus.
type NetLoadInterval struct {
	IntervalStart time.Time `json:"interval_start" binding:"required"`
	IntervalEnd   time.Time `json:"interval_end" binding:"required"`
	Site          string    `json:"site,omitempty"`
	NetLoadKW     float64   `json:"net_load_kw"`
}

// SyntheticInput asks the server to generate an outage scenario profile.
type SyntheticInput struct {
	Site            string    `json:"site,omitempty"`
	Start           time.Time `json:"start" binding:"required"`
	Hours           int       `json:"hours" binding:"required"`
	StepMinutes     int       `json:"step_minutes" binding:"required"`
	BaseLoadKW      float64   `json:"base_load_kw"`
	PeakLoadKW      float64   `json:"peak_load_kw"`
	SurplusPeakKW   float64   `json:"surplus_peak_kw,omitempty"`
	OutageStartHour int       `json:"outage_start_hour,omitempty"`
	OutageHours     int       `json:"outage_hours,omitempty"`
	JitterKW        float64   `json:"jitter_kw,omitempty"`
	Seed            int64     `json:"seed,omitempty"`
}

// SimConfig contains asset and policy configuration
type SimConfig struct {
	AssetFile string         `json:"asset_file,omitempty"`
	Battery   BatteryConfig  `json:"battery,omitempty"`
	Hydrogen  HydrogenConfig `json:"hydrogen,omitempty"`
	Policy    PolicyConfig   `json:"policy,omitempty"`
}

// BatteryConfig defines battery bank parameters
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	StackCount          int     `json:"stack_count"`
	AutonomyDays        float64 `json:"autonomy_days"`
	UnitCapacityKWh     float64 `json:"unit_capacity_kwh"`
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
	MinSOC              float64 `json:"min_soc"`
	MaxSOC              float64 `json:"max_soc"`
	InitialSOC          float64 `json:"initial_soc,omitempty"`
}

// HydrogenConfig defines hydrogen loop parameters
type HydrogenConfig struct {
	Name                   string  `json:"name,omitempty"`
	TankCapacityKg         float64 `json:"tank_capacity_kg"`
	ElectrolyzerEfficiency float64 `json:"electrolyzer_efficiency"`
	FuelCellEfficiency     float64 `json:"fuelcell_efficiency"`
	EnergyDensityKWhPerKg  float64 `json:"energy_density_kwh_per_kg"`
	ElectrolyzerMaxKW      float64 `json:"electrolyzer_max_kw"`
	FuelCellMaxKW          float64 `json:"fuelcell_max_kw"`
	NominalPressureBar     float64 `json:"nominal_pressure_bar"`
	ProduceHeatRateC       float64 `json:"produce_heat_rate_c,omitempty"`
	ConsumeHeatRateC       float64 `json:"consume_heat_rate_c,omitempty"`
	CooldownRateC          float64 `json:"cooldown_rate_c,omitempty"`
	InitialFillPercent     float64 `json:"initial_fill_percent,omitempty"`
	InitialTemperatureC    float64 `json:"initial_temperature_c,omitempty"`
}

// PolicyConfig defines the dispatch policy and its parameters
type PolicyConfig struct {
	Name   string                 `json:"name,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	LimitIntervals int  `json:"limit_intervals,omitempty"` // 0 = all
	IncludeLedger  bool `json:"include_ledger,omitempty"`  // default: false
}
