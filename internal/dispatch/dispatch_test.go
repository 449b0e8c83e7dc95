package dispatch

import (
	"testing"
	"time"

	"backup-power-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssets(t *testing.T, initialSOC float64) (*model.BatteryBank, *model.HydrogenSystem) {
	t.Helper()
	bank, err := model.NewBatteryBank(model.BatteryParams{
		StackCount:          16,
		AutonomyDays:        1,
		UnitCapacityKWh:     12.8,
		ChargeEfficiency:    0.96,
		DischargeEfficiency: 0.96,
		MinSOC:              0.20,
		MaxSOC:              0.90,
	}, initialSOC)
	require.NoError(t, err)
	hfs, err := model.NewHydrogenSystem(model.DefaultHydrogenParams(), 28, 25)
	require.NoError(t, err)
	return bank, hfs
}

func intervalAt(hour int, netLoadKW float64) model.NetLoadInterval {
	start := time.Date(2025, 2, 10, hour, 0, 0, 0, time.UTC)
	return model.NetLoadInterval{
		IntervalStart: start,
		IntervalEnd:   start.Add(time.Hour),
		Site:          "island",
		NetLoadKW:     netLoadKW,
	}
}

func TestGreedy_DeficitBatteryFirst(t *testing.T) {
	bank, hfs := testAssets(t, 0.5)
	p := &GreedyPolicy{Params: GreedyParams{BatteryMaxKW: 50}}

	cmd := p.Decide(Context{Interval: intervalAt(12, 80), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 50, cmd.BatteryDischargeKW, 0.001)
	assert.InDelta(t, 30, cmd.FuelCellKW, 0.001)
	assert.Zero(t, cmd.BatteryChargeKW)
	assert.Zero(t, cmd.ElectrolyzerKW)
}

func TestGreedy_DeficitSkipsDrainedBank(t *testing.T) {
	bank, hfs := testAssets(t, 0.2)
	p := &GreedyPolicy{Params: GreedyParams{BatteryMaxKW: 50}}

	cmd := p.Decide(Context{Interval: intervalAt(12, 80), Battery: bank, Hydrogen: hfs})
	assert.Zero(t, cmd.BatteryDischargeKW)
	assert.InDelta(t, 80, cmd.FuelCellKW, 0.001)
}

func TestGreedy_SurplusChargesThenElectrolyzes(t *testing.T) {
	bank, hfs := testAssets(t, 0.5)
	p := &GreedyPolicy{Params: GreedyParams{BatteryMaxKW: 50}}

	cmd := p.Decide(Context{Interval: intervalAt(12, -120), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 50, cmd.BatteryChargeKW, 0.001)
	assert.InDelta(t, 70, cmd.ElectrolyzerKW, 0.001)
}

func TestGreedy_SurplusSkipsFullBank(t *testing.T) {
	bank, hfs := testAssets(t, 0.9)
	p := &GreedyPolicy{Params: GreedyParams{BatteryMaxKW: 50}}

	cmd := p.Decide(Context{Interval: intervalAt(12, -120), Battery: bank, Hydrogen: hfs})
	assert.Zero(t, cmd.BatteryChargeKW)
	assert.InDelta(t, 120, cmd.ElectrolyzerKW, 0.001)
}

func TestGreedy_ZeroNetLoadIdles(t *testing.T) {
	bank, hfs := testAssets(t, 0.5)
	p := &GreedyPolicy{Params: GreedyParams{BatteryMaxKW: 50}}

	cmd := p.Decide(Context{Interval: intervalAt(12, 0), Battery: bank, Hydrogen: hfs})
	assert.Equal(t, Command{}, cmd)
}

func TestSchedule_Windows(t *testing.T) {
	bank, hfs := testAssets(t, 0.5)
	p := &SchedulePolicy{Params: ScheduleParams{
		StoreStart:     "10:00",
		StoreEnd:       "16:00",
		ServeStart:     "18:00",
		ServeEnd:       "22:00",
		BatteryKW:      40,
		ElectrolyzerKW: 80,
		FuelCellKW:     30,
	}}

	cmd := p.Decide(Context{Interval: intervalAt(12, 0), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 40, cmd.BatteryChargeKW, 0.001)
	assert.InDelta(t, 80, cmd.ElectrolyzerKW, 0.001)

	cmd = p.Decide(Context{Interval: intervalAt(19, 0), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 40, cmd.BatteryDischargeKW, 0.001)
	assert.InDelta(t, 30, cmd.FuelCellKW, 0.001)

	cmd = p.Decide(Context{Interval: intervalAt(3, 0), Battery: bank, Hydrogen: hfs})
	assert.Equal(t, Command{}, cmd)
}

func TestSchedule_WrapsMidnight(t *testing.T) {
	bank, hfs := testAssets(t, 0.5)
	p := &SchedulePolicy{Params: ScheduleParams{
		StoreStart: "22:00",
		StoreEnd:   "04:00",
		ServeStart: "06:00",
		ServeEnd:   "08:00",
		BatteryKW:  40,
	}}

	cmd := p.Decide(Context{Interval: intervalAt(23, 0), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 40, cmd.BatteryChargeKW, 0.001)

	cmd = p.Decide(Context{Interval: intervalAt(2, 0), Battery: bank, Hydrogen: hfs})
	assert.InDelta(t, 40, cmd.BatteryChargeKW, 0.001)

	cmd = p.Decide(Context{Interval: intervalAt(5, 0), Battery: bank, Hydrogen: hfs})
	assert.Equal(t, Command{}, cmd)
}

func TestParseHHMM(t *testing.T) {
	mins, err := parseHHMM("17:30")
	require.NoError(t, err)
	assert.Equal(t, 17*60+30, mins)

	_, err = parseHHMM("25:00")
	assert.Error(t, err)
	_, err = parseHHMM("banana")
	assert.Error(t, err)
}
