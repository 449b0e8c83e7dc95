package sim

import (
	"fmt"
	"math"

	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes a simulation over a single-site net-load series. Each interval
// is applied atomically per asset: the policy decides, both assets advance,
// and the outcome is recorded before the next interval starts.
func (e *Engine) Run(intervals []model.NetLoadInterval, bank *model.BatteryBank, hfs *model.HydrogenSystem, pol dispatch.Policy) (*Result, error) {
	return e.RunFunc(intervals, bank, hfs, pol, nil)
}

// RunFunc is Run with a per-row callback, used by streaming callers. A nil
// callback is allowed. A callback error aborts the run.
func (e *Engine) RunFunc(intervals []model.NetLoadInterval, bank *model.BatteryBank, hfs *model.HydrogenSystem, pol dispatch.Policy, fn func(LedgerRow) error) (*Result, error) {
	if bank == nil {
		return nil, fmt.Errorf("battery bank is nil")
	}
	if hfs == nil {
		return nil, fmt.Errorf("hydrogen system is nil")
	}
	if pol == nil {
		return nil, fmt.Errorf("policy is nil")
	}
	if len(intervals) == 0 {
		return nil, fmt.Errorf("no intervals")
	}

	res := &Result{Ledger: make([]LedgerRow, 0, len(intervals))}

	for idx, it := range intervals {
		dtH := it.DurationHours()
		if dtH <= 0 {
			return nil, fmt.Errorf("interval %d has non-positive duration", idx)
		}

		cmd := pol.Decide(dispatch.Context{
			Index:    idx,
			Interval: it,
			Battery:  bank,
			Hydrogen: hfs,
		})

		socStart := bank.State.SOC
		energyStart := bank.State.EnergyKWh
		massStart := hfs.State.MassKg

		battStatus := model.Status{Category: model.CategoryIdle}
		switch {
		case cmd.BatteryDischargeKW > 0:
			r, err := bank.Discharge(cmd.BatteryDischargeKW, dtH)
			if err != nil {
				return nil, fmt.Errorf("interval %d battery discharge: %w", idx, err)
			}
			battStatus = r.Status
		case cmd.BatteryChargeKW > 0:
			r, err := bank.Charge(cmd.BatteryChargeKW, dtH)
			if err != nil {
				return nil, fmt.Errorf("interval %d battery charge: %w", idx, err)
			}
			battStatus = r.Status
		}

		var snap model.HydrogenSnapshot
		var err error
		switch {
		case cmd.ElectrolyzerKW > 0:
			snap, err = hfs.Produce(cmd.ElectrolyzerKW, dtH)
		case cmd.FuelCellKW > 0:
			snap, err = hfs.Consume(cmd.FuelCellKW, dtH)
		default:
			snap, err = hfs.Idle(dtH)
		}
		if err != nil {
			return nil, fmt.Errorf("interval %d hydrogen: %w", idx, err)
		}

		energyDelta := bank.State.EnergyKWh - energyStart
		massDelta := hfs.State.MassKg - massStart

		var servedKW, absorbedKW float64
		if cmd.BatteryDischargeKW > 0 && energyDelta < 0 {
			servedKW += -energyDelta * bank.Params.DischargeEfficiency / dtH
		}
		if cmd.BatteryChargeKW > 0 && energyDelta > 0 {
			absorbedKW += energyDelta / (bank.Params.ChargeEfficiency * dtH)
		}
		if cmd.FuelCellKW > 0 && massDelta < 0 {
			servedKW += -massDelta * hfs.Params.FuelCellEfficiency * hfs.Params.EnergyDensityKWhPerKg / dtH
		}
		if cmd.ElectrolyzerKW > 0 && massDelta > 0 {
			absorbedKW += massDelta * hfs.Params.EnergyDensityKWhPerKg / (hfs.Params.ElectrolyzerEfficiency * dtH)
		}

		var unservedKW float64
		if it.NetLoadKW > 0 {
			unservedKW = math.Max(0, it.NetLoadKW-servedKW)
			res.TotalDemandKWh += it.NetLoadKW * dtH
		}
		res.TotalServedKWh += servedKW * dtH
		res.TotalUnservedKWh += unservedKW * dtH

		row := LedgerRow{
			Index: idx,

			IntervalStart: it.IntervalStart,
			IntervalEnd:   it.IntervalEnd,

			Site:      it.Site,
			NetLoadKW: it.NetLoadKW,

			Command: cmd,

			BatterySOCStart:  socStart,
			BatterySOCEnd:    bank.State.SOC,
			BatteryEnergyKWh: bank.State.EnergyKWh,
			BatteryStatus:    battStatus,

			HydrogenMassKg:       snap.MassKg,
			HydrogenFillPercent:  snap.FillPercent,
			HydrogenTemperatureC: snap.TemperatureC,
			HydrogenPressureBar:  snap.PressureBar,
			HydrogenStatus:       snap.Status,

			ServedKW:   servedKW,
			UnservedKW: unservedKW,
			AbsorbedKW: absorbedKW,
		}
		res.Ledger = append(res.Ledger, row)

		if fn != nil {
			if err := fn(row); err != nil {
				return nil, fmt.Errorf("interval %d callback: %w", idx, err)
			}
		}
	}

	res.FinalSOC = bank.State.SOC
	res.FinalFillPercent = hfs.FillPercent()
	res.FinalTemperatureC = hfs.State.TemperatureC
	res.FinalPressureBar = hfs.State.PressureBar
	return res, nil
}
