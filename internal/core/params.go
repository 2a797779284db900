package core

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates a configuration value outside its documented
// range. Setters clamp the value into range and report the rejection; state
// is never silently corrupted.
var ErrInvalidParameter = errors.New("core: parameter out of range")

// Bounds describes the closed valid range for a tunable float parameter.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp forces v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Contains reports whether v lies within the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// ClampParam validates v against bounds, returning the in-range value along
// with a wrapped ErrInvalidParameter when clamping was necessary.
func ClampParam(name string, v float64, b Bounds) (float64, error) {
	if b.Contains(v) {
		return v, nil
	}
	return b.Clamp(v), fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrInvalidParameter, name, v, b.Min, b.Max)
}

// ClampIntParam is ClampParam for integer-valued parameters.
func ClampIntParam(name string, v, min, max int) (int, error) {
	if v >= min && v <= max {
		return v, nil
	}
	clamped := v
	if clamped < min {
		clamped = min
	}
	if clamped > max {
		clamped = max
	}
	return clamped, fmt.Errorf("%w: %s=%d not in [%d, %d]", ErrInvalidParameter, name, v, min, max)
}
