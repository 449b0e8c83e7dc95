package data

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"backup-power-sim/internal/model"
)

// SyntheticSpec describes a generated outage scenario: a diurnal site load, a
// midday PV surplus, and a grid outage window during which the backup plant
// carries the net load. Outside the outage the grid carries the load and only
// the PV surplus reaches the plant (as storable negative net load).
type SyntheticSpec struct {
	Site  string
	Start time.Time

	Hours       int
	StepMinutes int

	BaseLoadKW    float64
	PeakLoadKW    float64
	SurplusPeakKW float64

	// Outage window, in hours from Start.
	OutageStartHour int
	OutageHours     int

	// JitterKW adds seeded noise to each interval's net load.
	JitterKW float64
	Seed     int64
}

func GenerateProfile(spec SyntheticSpec) (*model.Profile, error) {
	if spec.Hours <= 0 {
		return nil, errors.New("Hours must be > 0")
	}
	if spec.StepMinutes <= 0 {
		return nil, errors.New("StepMinutes must be > 0")
	}
	if spec.BaseLoadKW < 0 || spec.PeakLoadKW < spec.BaseLoadKW {
		return nil, errors.New("loads must satisfy 0 <= BaseLoadKW <= PeakLoadKW")
	}
	if spec.Site == "" {
		spec.Site = "site"
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	step := time.Duration(spec.StepMinutes) * time.Minute
	steps := int(float64(spec.Hours) * 60 / float64(spec.StepMinutes))

	p := &model.Profile{
		Name: spec.Site + "_synthetic",
		Data: make([]model.NetLoadInterval, 0, steps),
	}

	for i := 0; i < steps; i++ {
		start := spec.Start.Add(time.Duration(i) * step)
		hoursIn := float64(i) * float64(spec.StepMinutes) / 60

		demand := spec.BaseLoadKW + (spec.PeakLoadKW-spec.BaseLoadKW)*eveningShape(hourOfDay(start))
		pv := spec.SurplusPeakKW * solarShape(hourOfDay(start))

		var net float64
		if inOutage(hoursIn, spec.OutageStartHour, spec.OutageHours) {
			net = demand - pv
		} else {
			net = -pv
		}
		if spec.JitterKW > 0 {
			net += (rng.Float64()*2 - 1) * spec.JitterKW
		}

		p.Data = append(p.Data, model.NetLoadInterval{
			IntervalStart: start,
			IntervalEnd:   start.Add(step),
			Site:          spec.Site,
			NetLoadKW:     net,
		})
	}
	return p, nil
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// eveningShape peaks at 19:00 and bottoms out before dawn.
func eveningShape(h float64) float64 {
	v := math.Sin((h - 7) / 24 * 2 * math.Pi)
	if v < 0 {
		return 0
	}
	return v
}

// solarShape is non-zero between roughly 07:00 and 17:00, peaking at noon.
func solarShape(h float64) float64 {
	if h < 7 || h > 17 {
		return 0
	}
	return math.Sin((h - 7) / 10 * math.Pi)
}

func inOutage(hoursIn float64, startHour, outageHours int) bool {
	if outageHours <= 0 {
		return false
	}
	return hoursIn >= float64(startHour) && hoursIn < float64(startHour+outageHours)
}
