package analysis

import (
	"fmt"
	"sort"

	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
	"backup-power-sim/internal/sim"
)

type RankedCoverage struct {
	Name string
	Coverage
}

// RankByCoverage simulates each asset preset over the same profile with the
// greedy policy and sorts descending by coverage fraction, breaking ties by
// time to first shortfall. Fresh assets are built per preset so runs do not
// share state.
func RankByCoverage(profile []model.NetLoadInterval, presets map[string]model.SimulationInputs, batteryMaxKW float64) ([]RankedCoverage, error) {
	out := make([]RankedCoverage, 0, len(presets))
	for name, in := range presets {
		bank, hfs, err := in.Build()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		pol := &dispatch.GreedyPolicy{Params: dispatch.GreedyParams{BatteryMaxKW: batteryMaxKW}}
		res, err := sim.New().Run(profile, bank, hfs, pol)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out = append(out, RankedCoverage{Name: name, Coverage: Compute(res.Ledger)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CoverageFraction != out[j].CoverageFraction {
			return out[i].CoverageFraction > out[j].CoverageFraction
		}
		// -1 means "never fell short" and ranks first.
		hi, hj := out[i].HoursToFirstShortfall, out[j].HoursToFirstShortfall
		if (hi < 0) != (hj < 0) {
			return hi < 0
		}
		return hi > hj
	})
	return out, nil
}
