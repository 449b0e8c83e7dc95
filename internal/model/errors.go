package model

import "errors"

// Sentinel errors for per-call input validation. Boundary conditions (full
// tank, empty bank, overheat, over-pressure) are not errors: the operation is
// rejected or redirected for the step and reported through Status instead.
var (
	// ErrInvalidTimeStep is returned when a time step is zero or negative.
	// No state is mutated.
	ErrInvalidTimeStep = errors.New("time step must be > 0 hours")

	// ErrNegativePower is returned when a power request is negative. Reversed
	// flow is not modeled; callers use the opposite operation instead.
	ErrNegativePower = errors.New("power must be >= 0 kW")
)
