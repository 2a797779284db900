package session

import (
	"sort"

	"floodplan/internal/core"
)

// minDrainSpacing keeps auto-placed drains from clustering in one basin.
const minDrainSpacing = 3

// AutoPlaceDrains places up to count drains on the lowest open cells,
// skipping candidates closer than a few cells to an already placed drain.
// It reports how many drains were actually placed. Valid only during setup.
func (s *Session) AutoPlaceDrains(count int) (int, error) {
	if s.phase != PhaseSetup {
		return 0, ErrWrongPhase
	}

	elev := s.grid.Elevation()
	type candidate struct {
		pt   core.Point
		elev float64
	}
	var candidates []candidate
	for y := 0; y < s.grid.H; y++ {
		for x := 0; x < s.grid.W; x++ {
			idx := s.grid.Index(x, y)
			m := s.grid.Markers()[idx]
			if s.grid.Obstacle(idx) || m == core.CellRoad || s.grid.Drain(idx) {
				continue
			}
			candidates = append(candidates, candidate{pt: core.Point{X: x, Y: y}, elev: elev[idx]})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].elev != candidates[j].elev {
			return candidates[i].elev < candidates[j].elev
		}
		// Stable tie order keeps placement deterministic per seed.
		a, b := candidates[i].pt, candidates[j].pt
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	var placed []core.Point
	for _, c := range candidates {
		if len(placed) >= count {
			break
		}
		tooClose := false
		for _, p := range placed {
			if chebyshev(p, c.pt) < minDrainSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		if err := s.grid.AddDrain(c.pt.X, c.pt.Y); err != nil {
			continue
		}
		placed = append(placed, c.pt)
	}
	return len(placed), nil
}

func chebyshev(a, b core.Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
