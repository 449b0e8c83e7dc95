package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"backup-power-sim/internal/analysis"
	"backup-power-sim/internal/config"
	"backup-power-sim/internal/data"
	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/model"
	"backup-power-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --data profile.json --config examples/config.yaml --out results/dispatch.csv")
	fmt.Println("  cli rank --data profile.json --assets examples/assets")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate outputs a per-interval CSV ledger for one asset config")
	fmt.Println("  - rank runs every asset preset over the same profile and sorts by coverage")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	dataPath := fs.String("data", "profile.json", "Path to net-load profile JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/dispatch.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N intervals (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	profile, err := data.LoadProfileJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	intervals := profile.Data
	if *n > 0 && *n < len(intervals) {
		intervals = intervals[:*n]
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	bank, hfs, err := cfg.ToInputs().Build()
	if err != nil {
		panic(err)
	}

	pol, err := dispatch.Build(cfg.Policy.Name, cfg.Policy.Params, bank.Params.CapacityKWh())
	if err != nil {
		panic(err)
	}

	engine := sim.New()
	res, err := engine.Run(intervals, bank, hfs, pol)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	cov := analysis.Compute(res.Ledger)
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Coverage=%.1f%% served=%.1f kWh unserved=%.1f kWh\n",
		cov.CoverageFraction*100, cov.ServedKWh, cov.UnservedKWh)
	fmt.Printf("Final SOC=%.3f fill=%.1f%% temp=%.1fC pressure=%.2f bar\n",
		res.FinalSOC, res.FinalFillPercent, res.FinalTemperatureC, res.FinalPressureBar)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "profile.json", "Path to net-load profile JSON")
	assetDir := fs.String("assets", "examples/assets", "Directory of asset preset YAMLs")
	batteryKW := fs.Float64("battery-kw", 0, "Battery power limit in kW (0=unlimited)")
	_ = fs.Parse(args)

	profile, err := data.LoadProfileJSON(*dataPath)
	if err != nil {
		panic(err)
	}

	presets, err := loadPresets(*assetDir)
	if err != nil {
		panic(err)
	}
	if len(presets) == 0 {
		fmt.Printf("no asset presets found in %s\n", *assetDir)
		os.Exit(1)
	}

	limit := *batteryKW
	if limit <= 0 {
		limit = 1e9
	}

	ranked, err := analysis.RankByCoverage(profile.Data, presets, limit)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-24s %-10s %-12s %-12s %-14s\n",
		"rank", "asset", "coverage", "served_kwh", "unserved", "first_short_h")
	for i, r := range ranked {
		short := "never"
		if r.HoursToFirstShortfall >= 0 {
			short = fmt.Sprintf("%.1f", r.HoursToFirstShortfall)
		}
		fmt.Printf("%-4d %-24s %-10.3f %-12.1f %-12.1f %-14s\n",
			i+1, r.Name, r.CoverageFraction, r.ServedKWh, r.UnservedKWh, short)
	}
}

func loadPresets(dir string) (map[string]model.SimulationInputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	presets := map[string]model.SimulationInputs{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		w, err := config.LoadAssetFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		cfg := &config.Config{Battery: w.Battery, Hydrogen: w.Hydrogen}
		cfg.ApplyDefaults()
		presets[strings.TrimSuffix(e.Name(), ".yaml")] = cfg.ToInputs()
	}
	return presets, nil
}
