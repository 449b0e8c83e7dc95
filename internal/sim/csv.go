package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"interval_start",
		"interval_end",
		"site",
		"net_load_kw",
		"battery_charge_kw",
		"battery_discharge_kw",
		"electrolyzer_kw",
		"fuelcell_kw",
		"battery_category",
		"battery_soc_start",
		"battery_soc_end",
		"battery_energy_kwh",
		"h2_category",
		"h2_mass_kg",
		"h2_fill_percent",
		"h2_temperature_c",
		"h2_pressure_bar",
		"served_kw",
		"unserved_kw",
		"absorbed_kw",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.IntervalStart),
			fmtTime(r.IntervalEnd),
			r.Site,
			fmtFloat(r.NetLoadKW),
			fmtFloat(r.Command.BatteryChargeKW),
			fmtFloat(r.Command.BatteryDischargeKW),
			fmtFloat(r.Command.ElectrolyzerKW),
			fmtFloat(r.Command.FuelCellKW),
			string(r.BatteryStatus.Category),
			fmtFloat(r.BatterySOCStart),
			fmtFloat(r.BatterySOCEnd),
			fmtFloat(r.BatteryEnergyKWh),
			string(r.HydrogenStatus.Category),
			fmtFloat(r.HydrogenMassKg),
			fmtFloat(r.HydrogenFillPercent),
			fmtFloat(r.HydrogenTemperatureC),
			fmtFloat(r.HydrogenPressureBar),
			fmtFloat(r.ServedKW),
			fmtFloat(r.UnservedKW),
			fmtFloat(r.AbsorbedKW),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
