package dispatch

import "math"

// GreedyParams configures the battery-first policy:
// - Deficits discharge the bank up to BatteryMaxKW; the remainder goes to the
//   fuel cell.
// - Surpluses charge the bank up to BatteryMaxKW; the remainder runs the
//   electrolyzer.
// BatteryMaxKW models the power-conversion rating in front of the bank, which
// the energy model itself does not carry.
type GreedyParams struct {
	BatteryMaxKW float64
}

type GreedyPolicy struct {
	Params GreedyParams
}

func (p *GreedyPolicy) Name() string { return "greedy" }

func (p *GreedyPolicy) Decide(ctx Context) Command {
	net := ctx.Interval.NetLoadKW
	if net == 0 {
		return Command{}
	}

	if net > 0 {
		// Deficit: serve from the bank first, unless it is already at its
		// floor and would reject the whole step.
		battKW := math.Min(net, p.Params.BatteryMaxKW)
		if ctx.Battery.State.SOC <= ctx.Battery.Params.MinSOC {
			battKW = 0
		}
		return Command{
			BatteryDischargeKW: battKW,
			FuelCellKW:         net - battKW,
		}
	}

	// Surplus: store in the bank first, then make hydrogen.
	surplus := -net
	battKW := math.Min(surplus, p.Params.BatteryMaxKW)
	if ctx.Battery.State.SOC >= ctx.Battery.Params.MaxSOC {
		battKW = 0
	}
	return Command{
		BatteryChargeKW: battKW,
		ElectrolyzerKW:  surplus - battKW,
	}
}
