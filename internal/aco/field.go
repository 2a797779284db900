package aco

import "floodplan/internal/core"

// Pheromone intensity bounds. The floor keeps no edge permanently locked
// out; the ceiling keeps a dominant route from saturating the search.
const (
	TauMin = 0.1
	TauMax = 10.0
	Tau0   = 1.0
)

// Field stores pheromone intensity per directed adjacency edge of the grid.
// Edges touching an obstacle or leaving the grid are invalid and excluded
// from every operation. The field is owned exclusively by the optimizer.
type Field struct {
	grid      *core.Grid
	degree    int
	offsets   [][2]int
	intensity []float64
	valid     []bool
}

// NewField allocates a field over the grid's directed edges. Intensities
// start at zero; call Initialize before use.
func NewField(grid *core.Grid) *Field {
	degree := grid.Conn.Degree()
	total := grid.W * grid.H * degree
	f := &Field{
		grid:      grid,
		degree:    degree,
		offsets:   grid.Conn.Offsets(),
		intensity: make([]float64, total),
		valid:     make([]bool, total),
	}
	f.rebuildValidity()
	return f
}

func (f *Field) rebuildValidity() {
	g := f.grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			from := g.Index(x, y)
			for d, off := range f.offsets {
				idx := from*f.degree + d
				f.valid[idx] = !g.ObstacleAt(x, y) && !g.ObstacleAt(x+off[0], y+off[1])
			}
		}
	}
}

// Initialize sets every valid edge to the uniform baseline Tau0 and clears
// invalid edges.
func (f *Field) Initialize() {
	for i := range f.intensity {
		if f.valid[i] {
			f.intensity[i] = Tau0
		} else {
			f.intensity[i] = 0
		}
	}
}

// Evaporate multiplies every valid edge's intensity by (1 - rate) and
// re-clamps the result to [TauMin, TauMax].
func (f *Field) Evaporate(rate float64) {
	factor := 1 - rate
	for i := range f.intensity {
		if !f.valid[i] {
			continue
		}
		f.intensity[i] = clampTau(f.intensity[i] * factor)
	}
}

// Deposit reinforces every directed edge traversed by path with
// amount / cost(path), where cost is the path's edge count, clamped to
// TauMax. Shorter paths receive proportionally stronger reinforcement.
func (f *Field) Deposit(path []core.Point, amount float64) {
	edges := len(path) - 1
	if edges < 1 || amount <= 0 {
		return
	}
	per := amount / float64(edges)
	for i := 0; i < edges; i++ {
		idx, ok := f.edgeIndex(path[i], path[i+1])
		if !ok {
			continue
		}
		f.intensity[idx] = clampTau(f.intensity[idx] + per)
	}
}

// Intensity reads the pheromone level on the directed edge from (x, y) in
// neighbor direction d.
func (f *Field) Intensity(x, y, d int) float64 {
	return f.intensity[f.grid.Index(x, y)*f.degree+d]
}

// Snapshot copies the full intensity table for read-only consumers.
func (f *Field) Snapshot() []float64 {
	out := make([]float64, len(f.intensity))
	copy(out, f.intensity)
	return out
}

// Degree reports the per-cell directed edge count of the field.
func (f *Field) Degree() int { return f.degree }

func (f *Field) edgeIndex(from, to core.Point) (int, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	for d, off := range f.offsets {
		if off[0] == dx && off[1] == dy {
			idx := f.grid.Index(from.X, from.Y)*f.degree + d
			return idx, f.valid[idx]
		}
	}
	return 0, false
}

func clampTau(v float64) float64 {
	if v < TauMin {
		return TauMin
	}
	if v > TauMax {
		return TauMax
	}
	return v
}
