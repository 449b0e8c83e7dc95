package model

import (
	"errors"
)

// Thermochemical constants for the hydrogen loop.
const (
	molarMassH2 = 2.016   // g/mol
	gasConstant = 0.08314 // bar·L/(mol·K)

	// overheatLimitC is the temperature above which produce/consume is
	// suppressed for the whole step in favor of a forced cool-down.
	overheatLimitC = 45.0

	// litersPerKgCapacity sizes the tank volume from its rated mass
	// (Type IV composite storage at ~350 bar stores ~1 kg per 11 L).
	litersPerKgCapacity = 11.0
)

// HydrogenParams defines the fixed specs of the hydrogen storage loop:
// electrolyzer (production), pressurized tank, fuel cell (consumption).
// Units:
// - EnergyDensityKWhPerKg: kWh of electrical-equivalent energy per kg H2
// - Heat rates: °C per hour at full load; cooldown is °C per hour while idle
type HydrogenParams struct {
	TankCapacityKg         float64
	ElectrolyzerEfficiency float64
	FuelCellEfficiency     float64
	EnergyDensityKWhPerKg  float64
	ElectrolyzerMaxKW      float64
	FuelCellMaxKW          float64
	NominalPressureBar     float64
	ProduceHeatRateC       float64
	ConsumeHeatRateC       float64
	CooldownRateC          float64
}

// TankVolumeLiters derives the geometric volume used by the gas-law pressure
// computation.
func (p HydrogenParams) TankVolumeLiters() float64 {
	return p.TankCapacityKg * litersPerKgCapacity
}

// DefaultHydrogenParams returns the reference plant: 150 kg Type IV tank at
// 350 bar, ~100 kW PEM electrolyzer, ~50 kW PEM fuel cell.
func DefaultHydrogenParams() HydrogenParams {
	return HydrogenParams{
		TankCapacityKg:         150,
		ElectrolyzerEfficiency: 0.65,
		FuelCellEfficiency:     0.50,
		EnergyDensityKWhPerKg:  39.4,
		ElectrolyzerMaxKW:      100,
		FuelCellMaxKW:          50,
		NominalPressureBar:     350,
		ProduceHeatRateC:       1.5,
		ConsumeHeatRateC:       1.2,
		CooldownRateC:          0.5,
	}
}

// HydrogenState captures mutable state. PressureBar is derived: it is
// recomputed from mass and temperature after every mutating call and never
// written directly.
type HydrogenState struct {
	MassKg       float64
	TemperatureC float64
	PressureBar  float64
	LastStatus   Status
}

// HydrogenSystem couples a mass/energy integrator over state of fill with a
// lumped thermal model and an ideal-gas pressure model, gated by safety
// interlocks (overheat cool-down, over-pressure vent).
type HydrogenSystem struct {
	Params HydrogenParams
	State  HydrogenState

	// ventSetpointBar is the pressure recorded at construction; the
	// over-pressure interlock vents stored mass back down to it.
	ventSetpointBar float64
}

// HydrogenSnapshot is returned by every operation. MassKg is rounded to two
// decimals, FillPercent and TemperatureC to one, PressureBar to two.
type HydrogenSnapshot struct {
	MassKg       float64 `json:"mass_kg"`
	FillPercent  float64 `json:"fill_percent"`
	TemperatureC float64 `json:"temperature_c"`
	PressureBar  float64 `json:"pressure_bar"`
	Status       Status  `json:"status"`
}

func NewHydrogenSystem(params HydrogenParams, initialFillPercent, initialTemperatureC float64) (*HydrogenSystem, error) {
	h := &HydrogenSystem{
		Params: params,
		State: HydrogenState{
			MassKg:       initialFillPercent / 100 * params.TankCapacityKg,
			TemperatureC: initialTemperatureC,
			LastStatus:   Status{Category: CategoryIdle},
		},
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if initialFillPercent < 0 || initialFillPercent > 100 {
		return nil, errors.New("initial fill percent must be in [0, 100]")
	}
	if initialTemperatureC < 0 {
		return nil, errors.New("initial temperature must be >= 0 °C")
	}
	h.State.PressureBar = h.pressureFromState()
	h.ventSetpointBar = h.State.PressureBar
	return h, nil
}

func (h *HydrogenSystem) Validate() error {
	p := h.Params
	if p.TankCapacityKg <= 0 {
		return errors.New("TankCapacityKg must be > 0")
	}
	if p.ElectrolyzerEfficiency <= 0 || p.ElectrolyzerEfficiency > 1 {
		return errors.New("ElectrolyzerEfficiency must be in (0, 1]")
	}
	if p.FuelCellEfficiency <= 0 || p.FuelCellEfficiency > 1 {
		return errors.New("FuelCellEfficiency must be in (0, 1]")
	}
	if p.EnergyDensityKWhPerKg <= 0 {
		return errors.New("EnergyDensityKWhPerKg must be > 0")
	}
	if p.ElectrolyzerMaxKW <= 0 || p.FuelCellMaxKW <= 0 {
		return errors.New("electrolyzer/fuel cell max power must be > 0")
	}
	if p.NominalPressureBar <= 0 {
		return errors.New("NominalPressureBar must be > 0")
	}
	if p.ProduceHeatRateC < 0 || p.ConsumeHeatRateC < 0 || p.CooldownRateC < 0 {
		return errors.New("heat rates must be >= 0")
	}
	return nil
}

// Produce runs the electrolyzer at powerKW for dtHours, storing the resulting
// hydrogen. Safety interlocks take the whole step: above the overheat limit
// the system cools instead of producing, above nominal pressure it vents
// stored mass back to the construction-time setpoint.
func (h *HydrogenSystem) Produce(powerKW, dtHours float64) (HydrogenSnapshot, error) {
	if dtHours <= 0 {
		return HydrogenSnapshot{}, ErrInvalidTimeStep
	}
	if powerKW < 0 {
		return HydrogenSnapshot{}, ErrNegativePower
	}

	if h.State.TemperatureC > overheatLimitC {
		h.coolDown(dtHours)
		return h.snapshot(Status{Category: CategoryCooling}), nil
	}

	if h.pressureFromState() > h.Params.NominalPressureBar {
		h.ventToSetpoint()
		return h.snapshot(Status{Category: CategoryVenting, SetpointBar: round2(h.ventSetpointBar)}), nil
	}

	status := Status{Category: CategoryProducing}
	actualKW := powerKW
	if powerKW > h.Params.ElectrolyzerMaxKW {
		actualKW = h.Params.ElectrolyzerMaxKW
		status = Status{Category: CategoryLimited, LimitKW: h.Params.ElectrolyzerMaxKW}
	}

	producedKg := actualKW * h.Params.ElectrolyzerEfficiency / h.Params.EnergyDensityKWhPerKg * dtHours
	h.State.MassKg += producedKg
	if h.State.MassKg > h.Params.TankCapacityKg {
		h.State.MassKg = h.Params.TankCapacityKg
		status.TankFull = true
	}

	h.State.TemperatureC += h.Params.ProduceHeatRateC * (actualKW / h.Params.ElectrolyzerMaxKW) * dtHours

	return h.snapshot(status), nil
}

// Consume runs the fuel cell at powerKW for dtHours, withdrawing stored
// hydrogen. Only the overheat interlock applies: consuming can only lower
// pressure.
func (h *HydrogenSystem) Consume(powerKW, dtHours float64) (HydrogenSnapshot, error) {
	if dtHours <= 0 {
		return HydrogenSnapshot{}, ErrInvalidTimeStep
	}
	if powerKW < 0 {
		return HydrogenSnapshot{}, ErrNegativePower
	}

	if h.State.TemperatureC > overheatLimitC {
		h.coolDown(dtHours)
		return h.snapshot(Status{Category: CategoryCooling}), nil
	}

	status := Status{Category: CategoryConsuming}
	actualKW := powerKW
	if powerKW > h.Params.FuelCellMaxKW {
		actualKW = h.Params.FuelCellMaxKW
		status = Status{Category: CategoryLimited, LimitKW: h.Params.FuelCellMaxKW}
	}

	neededKg := actualKW / (h.Params.FuelCellEfficiency * h.Params.EnergyDensityKWhPerKg) * dtHours
	h.State.MassKg -= neededKg
	if h.State.MassKg < 0 {
		h.State.MassKg = 0
		status.TankEmpty = true
	}

	h.State.TemperatureC += h.Params.ConsumeHeatRateC * (actualKW / h.Params.FuelCellMaxKW) * dtHours

	return h.snapshot(status), nil
}

// Idle advances dtHours with no mass change; the system cools toward ambient.
func (h *HydrogenSystem) Idle(dtHours float64) (HydrogenSnapshot, error) {
	if dtHours <= 0 {
		return HydrogenSnapshot{}, ErrInvalidTimeStep
	}
	h.coolDown(dtHours)
	return h.snapshot(Status{Category: CategoryIdle}), nil
}

// Observe returns the last status without mutating state.
func (h *HydrogenSystem) Observe() Status {
	return h.State.LastStatus
}

// FillPercent is the current state of fill as a percentage of tank capacity.
func (h *HydrogenSystem) FillPercent() float64 {
	return h.State.MassKg / h.Params.TankCapacityKg * 100
}

// pressureFromState applies the ideal-gas law P = nRT/V. This is the single
// source of truth for pressure after any mass or temperature change.
func (h *HydrogenSystem) pressureFromState() float64 {
	nMoles := h.State.MassKg * 1000 / molarMassH2
	tKelvin := h.State.TemperatureC + 273.15
	return nMoles * gasConstant * tKelvin / h.Params.TankVolumeLiters()
}

func (h *HydrogenSystem) coolDown(dtHours float64) {
	h.State.TemperatureC -= h.Params.CooldownRateC * dtHours
	if h.State.TemperatureC < 0 {
		h.State.TemperatureC = 0
	}
}

// ventToSetpoint releases stored mass until pressure returns to the setpoint
// recorded at construction. The only place mass changes without a matching
// production/consumption term.
func (h *HydrogenSystem) ventToSetpoint() {
	tKelvin := h.State.TemperatureC + 273.15
	targetMoles := h.ventSetpointBar * h.Params.TankVolumeLiters() / (gasConstant * tKelvin)
	targetKg := targetMoles * molarMassH2 / 1000
	if h.State.MassKg > targetKg {
		h.State.MassKg = targetKg
	}
}

func (h *HydrogenSystem) snapshot(status Status) HydrogenSnapshot {
	h.State.PressureBar = h.pressureFromState()
	h.State.LastStatus = status
	return HydrogenSnapshot{
		MassKg:       round2(h.State.MassKg),
		FillPercent:  round1(h.FillPercent()),
		TemperatureC: round1(h.State.TemperatureC),
		PressureBar:  round2(h.State.PressureBar),
		Status:       status,
	}
}
