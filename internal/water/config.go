package water

import (
	"errors"

	"floodplan/internal/core"
)

var (
	rainBounds     = core.Bounds{Min: 0, Max: 5}
	capacityBounds = core.Bounds{Min: 0.01, Max: 100}
	flowBounds     = core.Bounds{Min: 0.01, Max: 1}
)

// Params holds the tunable water simulation settings.
type Params struct {
	// RainIntensity is the volume added to every open cell per rain event.
	RainIntensity float64
	// DrainCapacity is the volume each drain removes per tick, clipped to
	// the cell's available water.
	DrainCapacity float64
	// FlowRate scales per-tick transfer toward the pairwise equilibrium;
	// 1 moves each donation the full half-difference, smaller values pond
	// longer. Values stay in (0, 1] so flow can never overshoot.
	FlowRate float64
}

// DefaultParams returns the standard storm settings.
func DefaultParams() Params {
	return Params{
		RainIntensity: 0.6,
		DrainCapacity: 2.0,
		FlowRate:      1.0,
	}
}

// Clamped returns the params forced into their valid ranges along with a
// joined core.ErrInvalidParameter for every rejected value.
func (p Params) Clamped() (Params, error) {
	var errs []error
	out := p

	var err error
	if out.RainIntensity, err = core.ClampParam("rainIntensity", p.RainIntensity, rainBounds); err != nil {
		errs = append(errs, err)
	}
	if out.DrainCapacity, err = core.ClampParam("drainCapacity", p.DrainCapacity, capacityBounds); err != nil {
		errs = append(errs, err)
	}
	if out.FlowRate, err = core.ClampParam("flowRate", p.FlowRate, flowBounds); err != nil {
		errs = append(errs, err)
	}

	return out, errors.Join(errs...)
}
