package model

// SimulationInputs is the canonical "inputs to the system" bundle: asset
// parameters plus initial conditions, combined with a profile by the engine.
type SimulationInputs struct {
	Battery    BatteryParams
	InitialSOC float64

	Hydrogen            HydrogenParams
	InitialFillPercent  float64
	InitialTemperatureC float64
}

// Build constructs both assets from the bundle.
func (in SimulationInputs) Build() (*BatteryBank, *HydrogenSystem, error) {
	bank, err := NewBatteryBank(in.Battery, in.InitialSOC)
	if err != nil {
		return nil, nil, err
	}
	hfs, err := NewHydrogenSystem(in.Hydrogen, in.InitialFillPercent, in.InitialTemperatureC)
	if err != nil {
		return nil, nil, err
	}
	return bank, hfs, nil
}
