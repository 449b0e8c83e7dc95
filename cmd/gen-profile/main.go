package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"backup-power-sim/internal/data"
)

// gen-profile writes a synthetic net-load profile JSON for use with the CLI
// and the API's inline-profile mode.
func main() {
	out := flag.String("out", "profile.json", "Output JSON path")
	site := flag.String("site", "site", "Site name")
	startStr := flag.String("start", "2024-06-01T00:00:00Z", "Profile start (RFC3339)")
	hours := flag.Int("hours", 48, "Profile length in hours")
	stepMin := flag.Int("step", 60, "Interval length in minutes")
	baseKW := flag.Float64("base-kw", 20, "Base site load in kW")
	peakKW := flag.Float64("peak-kw", 80, "Evening peak site load in kW")
	surplusKW := flag.Float64("surplus-kw", 60, "Midday PV surplus peak in kW")
	outageStart := flag.Int("outage-start", 17, "Outage start, hours from profile start")
	outageHours := flag.Int("outage-hours", 12, "Outage length in hours (0=no outage)")
	jitterKW := flag.Float64("jitter-kw", 0, "Uniform noise amplitude in kW")
	seed := flag.Int64("seed", 1, "Noise seed")
	flag.Parse()

	start, err := time.Parse(time.RFC3339, *startStr)
	if err != nil {
		fmt.Printf("invalid --start: %v\n", err)
		os.Exit(2)
	}

	profile, err := data.GenerateProfile(data.SyntheticSpec{
		Site:            *site,
		Start:           start,
		Hours:           *hours,
		StepMinutes:     *stepMin,
		BaseLoadKW:      *baseKW,
		PeakLoadKW:      *peakKW,
		SurplusPeakKW:   *surplusKW,
		OutageStartHour: *outageStart,
		OutageHours:     *outageHours,
		JitterKW:        *jitterKW,
		Seed:            *seed,
	})
	if err != nil {
		panic(err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	if err := data.WriteProfileJSON(*out, profile); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d intervals to %s\n", len(profile.Data), *out)
}
