// Package water implements the discrete-time cellular flood simulation:
// rainfall, downhill flow by effective height, ponding and drain removal.
// Every operation is total over a well-formed grid; a cell with no reachable
// drain simply floods, which is expected behavior, not an error.
package water

import "floodplan/internal/core"

// Simulator evolves per-cell water volume over the shared terrain grid. The
// volume field is owned exclusively by the simulator; the grid is read-only.
type Simulator struct {
	grid *core.Grid
	cfg  Params

	volumes      []float64
	drainedTotal float64
	rainedTotal  float64
	ticks        int
}

// New returns a dry simulator over the grid with default parameters.
func New(grid *core.Grid) *Simulator {
	return &Simulator{
		grid:    grid,
		cfg:     DefaultParams(),
		volumes: make([]float64, grid.W*grid.H),
	}
}

// Configure validates and applies new parameters, effective from the next
// step. Out-of-range values are clamped and reported.
func (s *Simulator) Configure(p Params) error {
	clamped, err := p.Clamped()
	s.cfg = clamped
	return err
}

// Params returns the active parameter set.
func (s *Simulator) Params() Params { return s.cfg }

// Reset discards all water state while leaving the grid untouched.
func (s *Simulator) Reset() {
	for i := range s.volumes {
		s.volumes[i] = 0
	}
	s.drainedTotal = 0
	s.rainedTotal = 0
	s.ticks = 0
}

// ApplyRain adds amount to every non-obstacle cell, representing one rain
// event, and reports the total volume added. When amount is negative the
// configured rain intensity is used.
func (s *Simulator) ApplyRain(amount float64) float64 {
	if amount < 0 {
		amount = s.cfg.RainIntensity
	}
	if amount == 0 {
		return 0
	}
	added := 0.0
	for i := range s.volumes {
		if s.grid.Obstacle(i) {
			continue
		}
		s.volumes[i] += amount
		added += amount
	}
	s.rainedTotal += added
	return added
}

// Step advances the simulation by one tick: downhill flow toward pairwise
// equilibrium, then drain removal, then a non-negativity clamp. Total mass
// changes only by drain removal within a step.
func (s *Simulator) Step() {
	s.flow()
	s.drain()
	for i, v := range s.volumes {
		if v < 0 {
			s.volumes[i] = 0
		}
	}
	s.ticks++
}

// flow moves water from each wet cell to its strictly lower-effective-height
// open neighbors proportionally to the height differences. Each transfer is
// capped at half the difference, so a receiver never rises past the donor's
// effective height at donation time and the field cannot oscillate. Cells
// are processed in-place in row-major order, which keeps the pass
// deterministic and mass-conserving.
func (s *Simulator) flow() {
	g := s.grid
	elev := g.Elevation()
	offsets := g.Conn.Offsets()

	type outflow struct {
		idx    int
		amount float64
	}
	flows := make([]outflow, 0, len(offsets))

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			vol := s.volumes[idx]
			if vol <= 0 || g.Obstacle(idx) {
				continue
			}
			height := elev[idx] + vol

			flows = flows[:0]
			desired := 0.0
			for _, off := range offsets {
				nx, ny := x+off[0], y+off[1]
				if g.ObstacleAt(nx, ny) {
					continue
				}
				nIdx := g.Index(nx, ny)
				diff := height - (elev[nIdx] + s.volumes[nIdx])
				if diff <= 0 {
					continue
				}
				amount := s.cfg.FlowRate * diff / 2
				flows = append(flows, outflow{idx: nIdx, amount: amount})
				desired += amount
			}
			if desired <= 0 {
				continue
			}

			scale := 1.0
			if desired > vol {
				scale = vol / desired
			}
			for _, f := range flows {
				give := f.amount * scale
				s.volumes[f.idx] += give
				s.volumes[idx] -= give
			}
		}
	}
}

// drain removes up to the configured capacity from every drain cell.
func (s *Simulator) drain() {
	g := s.grid
	total := g.W * g.H
	for idx := 0; idx < total; idx++ {
		if !g.Drain(idx) {
			continue
		}
		removed := s.cfg.DrainCapacity
		if removed > s.volumes[idx] {
			removed = s.volumes[idx]
		}
		if removed <= 0 {
			continue
		}
		s.volumes[idx] -= removed
		s.drainedTotal += removed
	}
}

// Depth reports the water volume at (x, y).
func (s *Simulator) Depth(x, y int) float64 {
	if !s.grid.InBounds(x, y) {
		return 0
	}
	return s.volumes[s.grid.Index(x, y)]
}

// Volumes copies the per-cell volume field for read-only consumers.
func (s *Simulator) Volumes() []float64 {
	out := make([]float64, len(s.volumes))
	copy(out, s.volumes)
	return out
}

// TotalVolume reports the water currently on the grid.
func (s *Simulator) TotalVolume() float64 {
	total := 0.0
	for _, v := range s.volumes {
		total += v
	}
	return total
}

// DrainedTotal reports the cumulative volume removed by drains.
func (s *Simulator) DrainedTotal() float64 { return s.drainedTotal }

// RainedTotal reports the cumulative volume added by rain events.
func (s *Simulator) RainedTotal() float64 { return s.rainedTotal }

// Ticks reports the number of steps taken since the last reset.
func (s *Simulator) Ticks() int { return s.ticks }

// FloodedCells counts open cells holding more water than threshold.
func (s *Simulator) FloodedCells(threshold float64) int {
	count := 0
	for i, v := range s.volumes {
		if !s.grid.Obstacle(i) && v > threshold {
			count++
		}
	}
	return count
}
