package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of the lithium-ion bank.
// Units:
// - UnitCapacityKWh: kWh per module
// - Efficiencies: 0..1 (applied asymmetrically, see Charge/Discharge)
// - SOC bounds: fraction 0..1
type BatteryParams struct {
	StackCount          int
	AutonomyDays        float64
	UnitCapacityKWh     float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	MinSOC              float64
	MaxSOC              float64
}

// CapacityKWh is the nominal bank capacity: unit capacity scaled by stack
// count and the autonomy buffer.
func (p BatteryParams) CapacityKWh() float64 {
	return p.UnitCapacityKWh * float64(p.StackCount) * p.AutonomyDays
}

// BatteryState captures mutable state. EnergyKWh is kept consistent with
// SOC * CapacityKWh after every operation.
type BatteryState struct {
	SOC        float64
	EnergyKWh  float64
	LastStatus Status
}

// BatteryBank is a single energy-balance integrator over state of charge.
type BatteryBank struct {
	Params BatteryParams
	State  BatteryState
}

// BatteryResult is the snapshot returned by Charge and Discharge.
// SOC and EnergyKWh are rounded to two decimals.
type BatteryResult struct {
	SOC       float64 `json:"soc"`
	EnergyKWh float64 `json:"energy_kwh"`
	Status    Status  `json:"status"`
}

func NewBatteryBank(params BatteryParams, initialSOC float64) (*BatteryBank, error) {
	b := &BatteryBank{
		Params: params,
		State: BatteryState{
			SOC:        initialSOC,
			EnergyKWh:  initialSOC * params.CapacityKWh(),
			LastStatus: Status{Category: CategoryIdle},
		},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BatteryBank) Validate() error {
	p := b.Params
	if p.StackCount <= 0 {
		return errors.New("StackCount must be > 0")
	}
	if p.AutonomyDays <= 0 {
		return errors.New("AutonomyDays must be > 0")
	}
	if p.UnitCapacityKWh <= 0 {
		return errors.New("UnitCapacityKWh must be > 0")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if p.MinSOC < 0 || p.MinSOC > 1 || p.MaxSOC < 0 || p.MaxSOC > 1 || p.MinSOC > p.MaxSOC {
		return errors.New("MinSOC/MaxSOC must satisfy 0<=MinSOC<=MaxSOC<=1")
	}
	// Initial SOC may sit outside the operating window (a bank delivered full
	// starts above MaxSOC); it only has to be a valid fraction.
	if b.State.SOC < 0 || b.State.SOC > 1 {
		return errors.New("initial SOC must be in [0, 1]")
	}
	return nil
}

// Charge stores powerKW for dtHours, limited by charge efficiency and MaxSOC.
// Efficiency multiplies on the way in: only powerKW * ChargeEfficiency
// survives the electrical/chemical boundary.
func (b *BatteryBank) Charge(powerKW, dtHours float64) (BatteryResult, error) {
	if dtHours <= 0 {
		return BatteryResult{}, ErrInvalidTimeStep
	}
	if powerKW < 0 {
		return BatteryResult{}, ErrNegativePower
	}

	if b.State.SOC >= b.Params.MaxSOC {
		b.State.LastStatus = Status{Category: CategoryChargeRejected}
		return b.result(), nil
	}

	capKWh := b.Params.CapacityKWh()
	deltaKWh := powerKW * b.Params.ChargeEfficiency * dtHours
	deltaKWh = math.Min(deltaKWh, b.Params.MaxSOC*capKWh-b.State.EnergyKWh)

	b.State.EnergyKWh += deltaKWh
	b.State.SOC = b.State.EnergyKWh / capKWh
	if deltaKWh > 0 {
		b.State.LastStatus = Status{Category: CategoryCharging}
	} else {
		b.State.LastStatus = Status{Category: CategoryIdle}
	}
	return b.result(), nil
}

// Discharge supplies powerKW for dtHours, limited by MinSOC. Efficiency
// divides on the way out: delivering powerKW draws powerKW/DischargeEfficiency
// from the bank.
func (b *BatteryBank) Discharge(powerKW, dtHours float64) (BatteryResult, error) {
	if dtHours <= 0 {
		return BatteryResult{}, ErrInvalidTimeStep
	}
	if powerKW < 0 {
		return BatteryResult{}, ErrNegativePower
	}

	if b.State.SOC <= b.Params.MinSOC {
		b.State.LastStatus = Status{Category: CategoryDischargeRejected}
		return b.result(), nil
	}

	capKWh := b.Params.CapacityKWh()
	deltaKWh := powerKW / b.Params.DischargeEfficiency * dtHours
	deltaKWh = math.Min(deltaKWh, b.State.EnergyKWh-b.Params.MinSOC*capKWh)

	b.State.EnergyKWh -= deltaKWh
	b.State.SOC = b.State.EnergyKWh / capKWh
	if deltaKWh > 0 {
		b.State.LastStatus = Status{Category: CategoryDischarging}
	} else {
		b.State.LastStatus = Status{Category: CategoryIdle}
	}
	return b.result(), nil
}

// Observe returns the last status without mutating state.
func (b *BatteryBank) Observe() Status {
	return b.State.LastStatus
}

func (b *BatteryBank) result() BatteryResult {
	return BatteryResult{
		SOC:       round2(b.State.SOC),
		EnergyKWh: round2(b.State.EnergyKWh),
		Status:    b.State.LastStatus,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
