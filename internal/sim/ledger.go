package sim

import (
	"time"

	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
)

// LedgerRow is one row of per-interval output.
// This is the primary artifact for "what happened" in a simulation.
type LedgerRow struct {
	Index int

	IntervalStart time.Time
	IntervalEnd   time.Time

	Site      string
	NetLoadKW float64

	Command dispatch.Command

	BatterySOCStart  float64
	BatterySOCEnd    float64
	BatteryEnergyKWh float64
	BatteryStatus    model.Status

	HydrogenMassKg       float64
	HydrogenFillPercent  float64
	HydrogenTemperatureC float64
	HydrogenPressureBar  float64
	HydrogenStatus       model.Status

	// ServedKW is backup power actually delivered toward a deficit;
	// AbsorbedKW is surplus actually stored. Both are net of storage losses
	// on the electrical side.
	ServedKW   float64
	UnservedKW float64
	AbsorbedKW float64
}

type Result struct {
	Ledger []LedgerRow

	TotalDemandKWh   float64
	TotalServedKWh   float64
	TotalUnservedKWh float64

	FinalSOC          float64
	FinalFillPercent  float64
	FinalTemperatureC float64
	FinalPressureBar  float64
}
