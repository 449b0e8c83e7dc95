package models

import "time"

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string      `json:"id,omitempty"`
	Status  string      `json:"status"`
	Summary SimSummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// SimSummary contains aggregated simulation results
type SimSummary struct {
	TotalIntervals   int        `json:"total_intervals"`
	Window           TimeWindow `json:"window"`
	DemandKWh        float64    `json:"demand_kwh"`
	ServedKWh        float64    `json:"served_kwh"`
	UnservedKWh      float64    `json:"unserved_kwh"`
	CoverageFraction float64    `json:"coverage_fraction"`
	// HoursToFirstShortfall is -1 when demand was fully covered.
	HoursToFirstShortfall float64 `json:"hours_to_first_shortfall"`
	FinalSOC              float64 `json:"final_soc"`
	FinalFillPercent      float64 `json:"final_fill_percent"`
	FinalTemperatureC     float64 `json:"final_temperature_c"`
	FinalPressureBar      float64 `json:"final_pressure_bar"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LedgerRow represents one interval in the simulation ledger
type LedgerRow struct {
	Index              int       `json:"index"`
	IntervalStart      time.Time `json:"interval_start"`
	IntervalEnd        time.Time `json:"interval_end"`
	Site               string    `json:"site"`
	NetLoadKW          float64   `json:"net_load_kw"`
	BatteryChargeKW    float64   `json:"battery_charge_kw"`
	BatteryDischargeKW float64   `json:"battery_discharge_kw"`
	ElectrolyzerKW     float64   `json:"electrolyzer_kw"`
	FuelCellKW         float64   `json:"fuelcell_kw"`
	BatterySOCStart    float64   `json:"battery_soc_start"`
	BatterySOCEnd      float64   `json:"battery_soc_end"`
	BatteryEnergyKWh   float64   `json:"battery_energy_kwh"`
	BatteryStatus      string    `json:"battery_status"`
	HydrogenMassKg     float64   `json:"hydrogen_mass_kg"`
	HydrogenFillPct    float64   `json:"hydrogen_fill_percent"`
	HydrogenTempC      float64   `json:"hydrogen_temperature_c"`
	HydrogenPressure   float64   `json:"hydrogen_pressure_bar"`
	HydrogenStatus     string    `json:"hydrogen_status"`
	ServedKW           float64   `json:"served_kw"`
	UnservedKW         float64   `json:"unserved_kw"`
	AbsorbedKW         float64   `json:"absorbed_kw"`
}

// AssetInfo represents information about an asset preset
type AssetInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	File  string     `json:"file"`
	Specs AssetSpecs `json:"specs"`
}

// AssetSpecs contains headline asset specifications
type AssetSpecs struct {
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	TankCapacityKg     float64 `json:"tank_capacity_kg"`
	FuelCellMaxKW      float64 `json:"fuelcell_max_kw"`
}

// PolicyInfo represents information about a dispatch policy
type PolicyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a policy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// StreamFrame is one websocket message in a streamed simulation: either a
// ledger row, the final summary, or an error.
type StreamFrame struct {
	Type    string       `json:"type"` // "row", "summary", "error"
	Row     *LedgerRow   `json:"row,omitempty"`
	Summary *SimSummary  `json:"summary,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}
