package analysis

import (
	"time"

	"backup-power-sim/internal/sim"
)

// Coverage is a per-run summary of how well the backup plant carried the
// site: how much of the deficit energy was served, and how long the plant
// lasted before the first shortfall.
type Coverage struct {
	Site string

	Start time.Time
	End   time.Time

	Count int

	DemandKWh   float64
	ServedKWh   float64
	UnservedKWh float64

	// CoverageFraction is ServedKWh / DemandKWh; 1.0 when there was no
	// demand at all.
	CoverageFraction float64

	// HoursToFirstShortfall is measured from the start of the ledger to the
	// start of the first interval with unserved load; -1 when the plant
	// never fell short.
	HoursToFirstShortfall float64
}

func Compute(ledger []sim.LedgerRow) Coverage {
	c := Coverage{HoursToFirstShortfall: -1}
	if len(ledger) == 0 {
		c.CoverageFraction = 1
		return c
	}
	c.Site = ledger[0].Site
	c.Count = len(ledger)
	c.Start = ledger[0].IntervalStart
	c.End = ledger[len(ledger)-1].IntervalEnd

	for _, r := range ledger {
		dtH := r.IntervalEnd.Sub(r.IntervalStart).Hours()
		if r.NetLoadKW > 0 {
			c.DemandKWh += r.NetLoadKW * dtH
		}
		c.ServedKWh += r.ServedKW * dtH
		c.UnservedKWh += r.UnservedKW * dtH

		if r.UnservedKW > 0 && c.HoursToFirstShortfall < 0 {
			c.HoursToFirstShortfall = r.IntervalStart.Sub(c.Start).Hours()
		}
	}

	if c.DemandKWh > 0 {
		c.CoverageFraction = c.ServedKWh / c.DemandKWh
	} else {
		c.CoverageFraction = 1
	}
	return c
}
