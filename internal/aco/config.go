package aco

import (
	"errors"

	"floodplan/internal/core"
)

// Parameter bounds from the drainage planner's tuning ranges. Values outside
// a range are clamped and reported, never silently applied.
var (
	numAntsMin = 5
	numAntsMax = 50

	alphaBounds    = core.Bounds{Min: 0, Max: 10}
	betaBounds     = core.Bounds{Min: 0, Max: 10}
	evapBounds     = core.Bounds{Min: 0.01, Max: 0.5}
	strengthBounds = core.Bounds{Min: 0.001, Max: 100}
)

// Params holds the tunable optimizer settings. Changes take effect on the
// next iteration, never retroactively.
type Params struct {
	// NumAnts is the number of walks launched per iteration.
	NumAnts int
	// Alpha weights pheromone history in the transition rule.
	Alpha float64
	// Beta weights the elevation/distance heuristic.
	Beta float64
	// EvaporationRate is the per-iteration multiplicative pheromone decay.
	EvaporationRate float64
	// PheromoneStrength scales the elitist deposit; the amount laid on each
	// edge is PheromoneStrength / cost(path).
	PheromoneStrength float64
	// DistanceWeight scales the drain-distance term inside the heuristic.
	DistanceWeight float64
	// SlopeCostWeight adds uphill rise to path cost; zero means pure length.
	SlopeCostWeight float64
	// StepBudgetFactor multiplies the grid diameter to bound walk length.
	StepBudgetFactor int
	// StagnationLimit is the number of consecutive non-improving iterations
	// after which the optimizer reports convergence.
	StagnationLimit int
}

// DefaultParams returns the planner's standard settings.
func DefaultParams() Params {
	return Params{
		NumAnts:           20,
		Alpha:             1.0,
		Beta:              2.0,
		EvaporationRate:   0.15,
		PheromoneStrength: 2.0,
		DistanceWeight:    1.0,
		SlopeCostWeight:   0,
		StepBudgetFactor:  5,
		StagnationLimit:   20,
	}
}

// Clamped returns the params forced into their valid ranges along with a
// joined core.ErrInvalidParameter describing every rejected value, or nil
// when everything was in range.
func (p Params) Clamped() (Params, error) {
	var errs []error
	out := p

	var err error
	if out.NumAnts, err = core.ClampIntParam("numAnts", p.NumAnts, numAntsMin, numAntsMax); err != nil {
		errs = append(errs, err)
	}
	if out.Alpha, err = core.ClampParam("alpha", p.Alpha, alphaBounds); err != nil {
		errs = append(errs, err)
	}
	if out.Beta, err = core.ClampParam("beta", p.Beta, betaBounds); err != nil {
		errs = append(errs, err)
	}
	if out.EvaporationRate, err = core.ClampParam("evaporationRate", p.EvaporationRate, evapBounds); err != nil {
		errs = append(errs, err)
	}
	if out.PheromoneStrength, err = core.ClampParam("pheromoneStrength", p.PheromoneStrength, strengthBounds); err != nil {
		errs = append(errs, err)
	}
	if out.DistanceWeight < 0 {
		out.DistanceWeight = 0
		errs = append(errs, core.ErrInvalidParameter)
	}
	if out.SlopeCostWeight < 0 {
		out.SlopeCostWeight = 0
		errs = append(errs, core.ErrInvalidParameter)
	}
	if out.StepBudgetFactor < 1 {
		out.StepBudgetFactor = 1
		errs = append(errs, core.ErrInvalidParameter)
	}
	if out.StagnationLimit < 1 {
		out.StagnationLimit = 1
		errs = append(errs, core.ErrInvalidParameter)
	}

	return out, errors.Join(errs...)
}
