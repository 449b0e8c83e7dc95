package dispatch

import (
	"fmt"
	"strings"
)

// Build constructs a named policy from loosely-typed config params
// (YAML/JSON maps). Unknown keys are ignored; missing keys fall back to the
// given defaults.
func Build(name string, params map[string]any, defaultBatteryKW float64) (Policy, error) {
	switch name {
	case "greedy":
		return &GreedyPolicy{Params: GreedyParams{
			BatteryMaxKW: num(params, "battery_max_kw", defaultBatteryKW),
		}}, nil
	case "schedule":
		serveStart := str(params, "serve_start", "18:00")
		return &SchedulePolicy{Params: ScheduleParams{
			StoreStart:     str(params, "store_start", "10:00"),
			StoreEnd:       str(params, "store_end", serveStart),
			ServeStart:     serveStart,
			ServeEnd:       str(params, "serve_end", serveStart),
			BatteryKW:      num(params, "battery_kw", defaultBatteryKW),
			ElectrolyzerKW: num(params, "electrolyzer_kw", 0),
			FuelCellKW:     num(params, "fuelcell_kw", 0),
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported policy: %q", name)
	}
}

func num(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}

func str(m map[string]any, key string, def string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}
