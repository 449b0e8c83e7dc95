package dispatch

import (
	"fmt"
	"math"
	"strings"
)

// ScheduleParams implements a simple daily time-window policy:
// - Store during [StoreStart, StoreEnd): charge the bank and run the
//   electrolyzer at the configured powers.
// - Serve during [ServeStart, ServeEnd): discharge the bank and run the fuel
//   cell at the configured powers.
// - Otherwise idle.
//
// All times are interpreted in the profile's interval_start timezone.
type ScheduleParams struct {
	StoreStart string // "HH:MM"
	StoreEnd   string // "HH:MM" (optional; default = ServeStart)
	ServeStart string // "HH:MM"
	ServeEnd   string // "HH:MM" (optional; default = ServeStart => zero-length)

	BatteryKW      float64 // magnitude used for both charge and discharge
	ElectrolyzerKW float64
	FuelCellKW     float64
}

type SchedulePolicy struct {
	Params ScheduleParams

	initialized bool
	ssMins      int
	seMins      int
	vsMins      int
	veMins      int
}

func (s *SchedulePolicy) Name() string { return "schedule" }

func (s *SchedulePolicy) Decide(ctx Context) Command {
	if !s.initialized {
		ss, err := parseHHMM(s.Params.StoreStart)
		if err != nil {
			panic(err)
		}
		vs, err := parseHHMM(s.Params.ServeStart)
		if err != nil {
			panic(err)
		}
		se := vs
		if strings.TrimSpace(s.Params.StoreEnd) != "" {
			se, err = parseHHMM(s.Params.StoreEnd)
			if err != nil {
				panic(err)
			}
		}
		ve := vs
		if strings.TrimSpace(s.Params.ServeEnd) != "" {
			ve, err = parseHHMM(s.Params.ServeEnd)
			if err != nil {
				panic(err)
			}
		}
		s.ssMins = ss
		s.seMins = se
		s.vsMins = vs
		s.veMins = ve

		s.initialized = true
	}

	mins := ctx.Interval.IntervalStart.Hour()*60 + ctx.Interval.IntervalStart.Minute()

	if inWindow(mins, s.ssMins, s.seMins) {
		return Command{
			BatteryChargeKW: math.Abs(s.Params.BatteryKW),
			ElectrolyzerKW:  math.Abs(s.Params.ElectrolyzerKW),
		}
	}
	if inWindow(mins, s.vsMins, s.veMins) {
		return Command{
			BatteryDischargeKW: math.Abs(s.Params.BatteryKW),
			FuelCellKW:         math.Abs(s.Params.FuelCellKW),
		}
	}
	return Command{}
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// inWindow checks whether tMins is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start < end, it's a normal same-day window.
// If start > end, it wraps across midnight.
func inWindow(tMins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return tMins >= start && tMins < end
	}
	// wrap
	return tMins >= start || tMins < end
}
