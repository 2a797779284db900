// Package aco implements the ant-colony drainage-route optimizer: seeded
// stochastic walks over the city grid, pheromone reinforcement on directed
// edges, and stagnation-based convergence detection.
package aco

import (
	"math"

	"floodplan/internal/core"
)

// State tracks the optimizer lifecycle.
type State int

const (
	// StateSetup accepts configuration and drain edits; nothing runs.
	StateSetup State = iota
	// StateIterating advances one colony iteration per RunIteration call.
	StateIterating
	// StateConverged is reached after StagnationLimit non-improving
	// iterations. Further RunIteration calls are rejected.
	StateConverged
)

// String names the state for status reporting.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	default:
		return "unknown"
	}
}

// epsilon keeps the heuristic strictly positive and finite on flat terrain
// and makes edges into drain cells overwhelmingly attractive.
const epsilon = 1e-6

// Optimizer orchestrates colony iterations over a read-only grid. All
// randomness flows through one seeded generator so runs reproduce exactly.
type Optimizer struct {
	grid  *core.Grid
	field *Field
	rng   *core.RNG

	cfg     Params
	pending *Params

	state      State
	dist       []int
	openStarts []int
	visited    []int
	visitMark  int

	iteration     int
	bestCost      float64
	bestPath      []core.Point
	stagnation    int
	lastSuccesses int
	totalWalks    int
	totalSuccess  int
}

// Snapshot is the read-only view exposed to the renderer and telemetry.
type Snapshot struct {
	State      State
	Iteration  int
	BestCost   float64
	BestPath   []core.Point
	Converged  bool
	Stagnation int

	// Successes counts successful walks in the most recent iteration;
	// SuccessRate is cumulative across the run. A rate near zero signals
	// unreachable drains (degraded progress, not an error).
	Successes   int
	SuccessRate float64
}

// New returns an optimizer over the grid in StateSetup with default
// parameters and a deterministic generator for the seed.
func New(grid *core.Grid, seed int64) *Optimizer {
	return &Optimizer{
		grid:     grid,
		field:    NewField(grid),
		rng:      core.NewRNG(seed),
		cfg:      DefaultParams(),
		state:    StateSetup,
		visited:  make([]int, grid.W*grid.H),
		bestCost: math.Inf(1),
	}
}

// Configure validates and stages new parameters. Out-of-range values are
// clamped and reported via core.ErrInvalidParameter; the clamped set still
// takes effect on the next iteration.
func (o *Optimizer) Configure(p Params) error {
	clamped, err := p.Clamped()
	o.pending = &clamped
	if o.state == StateSetup {
		o.applyPending()
	}
	return err
}

// Params returns the currently active parameter set.
func (o *Optimizer) Params() Params { return o.cfg }

// Field exposes the pheromone field for read-only snapshots.
func (o *Optimizer) Field() *Field { return o.field }

// State reports the current lifecycle state.
func (o *Optimizer) State() State { return o.state }

// Start transitions SETUP -> ITERATING. It fails with ErrNoDrains when the
// grid has no drain cells and with ErrNotInSetup when already started.
func (o *Optimizer) Start() error {
	if o.state != StateSetup {
		return ErrNotInSetup
	}
	if o.grid.DrainCount() == 0 {
		return ErrNoDrains
	}

	o.applyPending()
	o.dist = drainDistances(o.grid)
	o.rebuildStarts()
	o.field.Initialize()
	o.iteration = 0
	o.bestCost = math.Inf(1)
	o.bestPath = nil
	o.stagnation = 0
	o.totalWalks = 0
	o.totalSuccess = 0
	o.state = StateIterating
	return nil
}

// Reset aborts the run from any state: accumulated pheromone and convergence
// state are discarded, the grid and drain set stay untouched, and the
// optimizer returns to StateSetup. Safe to call mid-run.
func (o *Optimizer) Reset() {
	o.field.Initialize()
	o.dist = nil
	o.iteration = 0
	o.bestCost = math.Inf(1)
	o.bestPath = nil
	o.stagnation = 0
	o.lastSuccesses = 0
	o.totalWalks = 0
	o.totalSuccess = 0
	o.state = StateSetup
	o.applyPending()
}

// RunIteration advances the colony by one iteration: N walks, evaporation,
// elitist deposit, convergence bookkeeping. An iteration with zero
// successful walks is not an error; it still evaporates and counts toward
// stagnation so pathological layouts converge instead of spinning.
func (o *Optimizer) RunIteration() error {
	if o.state != StateIterating {
		return ErrNotIterating
	}

	o.applyPending()
	o.iteration++

	budget := o.cfg.StepBudgetFactor * o.grid.Diameter()
	iterBest := math.Inf(1)
	var iterBestPath []core.Point
	successes := 0

	for ant := 0; ant < o.cfg.NumAnts; ant++ {
		o.totalWalks++
		path, ok := o.walk(budget)
		if !ok {
			continue
		}
		successes++
		o.totalSuccess++
		cost := o.pathCost(path)
		// Strict less-than: among equal-cost paths the first found wins.
		if cost < iterBest {
			iterBest = cost
			iterBestPath = path
		}
	}
	o.lastSuccesses = successes

	o.field.Evaporate(o.cfg.EvaporationRate)
	if iterBestPath != nil {
		o.field.Deposit(iterBestPath, o.cfg.PheromoneStrength)
	}

	if iterBest < o.bestCost {
		o.bestCost = iterBest
		o.bestPath = iterBestPath
		o.stagnation = 0
	} else {
		o.stagnation++
		if o.stagnation >= o.cfg.StagnationLimit {
			o.state = StateConverged
		}
	}
	return nil
}

// Snapshot returns a copy of the externally visible optimizer state.
func (o *Optimizer) Snapshot() Snapshot {
	path := make([]core.Point, len(o.bestPath))
	copy(path, o.bestPath)
	rate := 0.0
	if o.totalWalks > 0 {
		rate = float64(o.totalSuccess) / float64(o.totalWalks)
	}
	return Snapshot{
		State:       o.state,
		Iteration:   o.iteration,
		BestCost:    o.bestCost,
		BestPath:    path,
		Converged:   o.state == StateConverged,
		Stagnation:  o.stagnation,
		Successes:   o.lastSuccesses,
		SuccessRate: rate,
	}
}

func (o *Optimizer) applyPending() {
	if o.pending != nil {
		o.cfg = *o.pending
		o.pending = nil
	}
}

// rebuildStarts lists the cells ants may start from: open, non-drain.
func (o *Optimizer) rebuildStarts() {
	o.openStarts = o.openStarts[:0]
	total := o.grid.W * o.grid.H
	for idx := 0; idx < total; idx++ {
		if !o.grid.Obstacle(idx) && !o.grid.Drain(idx) {
			o.openStarts = append(o.openStarts, idx)
		}
	}
}

// walk performs one stochastic ant walk from a uniformly random start cell.
// It succeeds when a drain is reached within the step budget; dead ends and
// exhausted budgets discard the walk.
func (o *Optimizer) walk(budget int) ([]core.Point, bool) {
	if len(o.openStarts) == 0 {
		return nil, false
	}
	start := o.openStarts[o.rng.IntN(len(o.openStarts))]
	x, y := start%o.grid.W, start/o.grid.W

	o.visitMark++
	o.visited[start] = o.visitMark
	path := []core.Point{{X: x, Y: y}}

	offsets := o.grid.Conn.Offsets()
	weights := make([]float64, 0, len(offsets))
	moves := make([]core.Point, 0, len(offsets))

	for step := 0; step < budget; step++ {
		weights = weights[:0]
		moves = moves[:0]
		for d, off := range offsets {
			nx, ny := x+off[0], y+off[1]
			if o.grid.ObstacleAt(nx, ny) {
				continue
			}
			nIdx := o.grid.Index(nx, ny)
			if o.visited[nIdx] == o.visitMark {
				continue
			}
			w := o.transitionWeight(x, y, d, nx, ny)
			weights = append(weights, w)
			moves = append(moves, core.Point{X: nx, Y: ny})
		}
		if len(moves) == 0 {
			return nil, false
		}

		next := moves[o.rng.WeightedIndex(weights)]
		x, y = next.X, next.Y
		nIdx := o.grid.Index(x, y)
		o.visited[nIdx] = o.visitMark
		path = append(path, next)

		if o.grid.Drain(nIdx) {
			return path, true
		}
	}
	return nil, false
}

// transitionWeight computes w(i,j) = intensity^alpha * eta^beta. The
// heuristic eta favors downhill moves and proximity to the nearest drain and
// is strictly positive and finite for every valid edge.
func (o *Optimizer) transitionWeight(x, y, d, nx, ny int) float64 {
	elev := o.grid.Elevation()
	rise := elev[o.grid.Index(nx, ny)] - elev[o.grid.Index(x, y)]
	if rise < 0 {
		rise = 0
	}

	dist := o.dist[o.grid.Index(nx, ny)]
	if dist == unreachable {
		// No route to any drain from there; keep the edge possible but
		// deeply unattractive.
		dist = 2 * o.grid.Diameter()
	}

	eta := 1 / (epsilon + rise + o.cfg.DistanceWeight*float64(dist))
	tau := o.field.Intensity(x, y, d)
	return math.Pow(tau, o.cfg.Alpha) * math.Pow(eta, o.cfg.Beta)
}

// pathCost derives a path's cost: edge count, plus accumulated uphill rise
// when SlopeCostWeight is set.
func (o *Optimizer) pathCost(path []core.Point) float64 {
	cost := float64(len(path) - 1)
	if o.cfg.SlopeCostWeight <= 0 {
		return cost
	}
	elev := o.grid.Elevation()
	for i := 1; i < len(path); i++ {
		rise := elev[o.grid.Index(path[i].X, path[i].Y)] - elev[o.grid.Index(path[i-1].X, path[i-1].Y)]
		if rise > 0 {
			cost += o.cfg.SlopeCostWeight * rise
		}
	}
	return cost
}
