package dispatch

import "backup-power-sim/internal/model"

// Command is the per-step request a policy issues for both assets. All powers
// are magnitudes in kW; the models clamp against their own ratings and bounds.
// At most one of BatteryChargeKW/BatteryDischargeKW and one of
// ElectrolyzerKW/FuelCellKW should be non-zero.
type Command struct {
	BatteryChargeKW    float64
	BatteryDischargeKW float64
	ElectrolyzerKW     float64
	FuelCellKW         float64
}

type Context struct {
	Index    int
	Interval model.NetLoadInterval
	Battery  *model.BatteryBank
	Hydrogen *model.HydrogenSystem
}

type Policy interface {
	Name() string
	Decide(ctx Context) Command
}
