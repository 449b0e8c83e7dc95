package main

import (
	"flag"
	"fmt"
	"time"

	"backup-power-sim/internal/analysis"
	"backup-power-sim/internal/config"
	"backup-power-sim/internal/data"
	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
	"backup-power-sim/internal/sim"
)

// Demo:
// - Generate a synthetic day with an evening grid outage
// - Instantiate a battery bank and hydrogen loop with reference parameters
// - Run the greedy policy and print the ledger to show how the pieces fit
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 24, "Number of hourly intervals to simulate")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/dispatch.csv)")
	flag.Parse()

	profile, err := data.GenerateProfile(data.SyntheticSpec{
		Site:            "demo-site",
		Start:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Hours:           *n,
		StepMinutes:     60,
		BaseLoadKW:      20,
		PeakLoadKW:      80,
		SurplusPeakKW:   60,
		OutageStartHour: 17,
		OutageHours:     6,
	})
	if err != nil {
		panic(err)
	}

	// Defaults (can be overridden via --config).
	inputs := model.SimulationInputs{
		Battery: model.BatteryParams{
			StackCount:          16,
			AutonomyDays:        1,
			UnitCapacityKWh:     12.8,
			ChargeEfficiency:    0.96,
			DischargeEfficiency: 0.96,
			MinSOC:              0.2,
			MaxSOC:              0.9,
		},
		InitialSOC:          0.9,
		Hydrogen:            model.DefaultHydrogenParams(),
		InitialFillPercent:  28,
		InitialTemperatureC: 25,
	}
	policyName := "greedy"
	var policyParams map[string]any

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		inputs = cfg.ToInputs()
		policyName = cfg.Policy.Name
		policyParams = cfg.Policy.Params
	}

	bank, hfs, err := inputs.Build()
	if err != nil {
		panic(err)
	}

	pol, err := dispatch.Build(policyName, policyParams, bank.Params.CapacityKWh())
	if err != nil {
		panic(err)
	}

	engine := sim.New()
	result, err := engine.Run(profile.Data, bank, hfs, pol)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d intervals for %s\n", len(result.Ledger), profile.Name)
	fmt.Printf("Policy=%s bank=%.1f kWh tank=%.0f kg\n\n",
		pol.Name(), bank.Params.CapacityKWh(), hfs.Params.TankCapacityKg)

	for _, r := range result.Ledger {
		fmt.Printf(
			"%s net=%7.1f  batt=%-17s soc=%.3f  h2=%-14s fill=%5.1f%% %5.1fC %7.2fbar  served=%6.1f unserved=%6.1f\n",
			r.IntervalStart.Format("2006-01-02 15:04"),
			r.NetLoadKW,
			string(r.BatteryStatus.Category),
			r.BatterySOCEnd,
			string(r.HydrogenStatus.Category),
			r.HydrogenFillPercent,
			r.HydrogenTemperatureC,
			r.HydrogenPressureBar,
			r.ServedKW,
			r.UnservedKW,
		)
	}

	if *outCSV != "" {
		if err := sim.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	cov := analysis.Compute(result.Ledger)
	fmt.Printf("\nDone. Coverage=%.1f%%  Final SOC=%.3f  fill=%.1f%%\n",
		cov.CoverageFraction*100, result.FinalSOC, result.FinalFillPercent)
}
