package model

// Category classifies what an asset did (or refused to do) during a step.
// Keep these values stable; they are intended for CSV output and API responses.
type Category string

const (
	CategoryIdle              Category = "IDLE"
	CategoryCharging          Category = "CHARGING"
	CategoryDischarging       Category = "DISCHARGING"
	CategoryChargeRejected    Category = "CHARGE_REJECTED"
	CategoryDischargeRejected Category = "DISCHARGE_REJECTED"
	CategoryProducing         Category = "PRODUCING"
	CategoryConsuming         Category = "CONSUMING"
	CategoryLimited           Category = "LIMITED"
	CategoryVenting           Category = "VENTING"
	CategoryCooling           Category = "COOLING"
)

// Status is the structured outcome of a single step: a category plus optional
// numeric context. Display formatting belongs to the presentation layer (CSV,
// API responses), not here.
type Status struct {
	Category Category `json:"category"`

	// LimitKW is set when Category == CategoryLimited: the rating the
	// requested power was capped to.
	LimitKW float64 `json:"limit_kw,omitempty"`

	// SetpointBar is set when Category == CategoryVenting: the pressure the
	// vent restored the tank to.
	SetpointBar float64 `json:"setpoint_bar,omitempty"`

	// TankFull / TankEmpty flag a mass clamp during the step.
	TankFull  bool `json:"tank_full,omitempty"`
	TankEmpty bool `json:"tank_empty,omitempty"`
}
