package core

import "errors"

// Sentinel errors for grid mutation.
var (
	// ErrOutOfBounds indicates coordinates outside the grid.
	ErrOutOfBounds = errors.New("core: cell coordinates out of bounds")
	// ErrCellOccupied indicates a drain cannot be placed on an obstacle or
	// a road/house/rock marker owned by the terrain generator.
	ErrCellOccupied = errors.New("core: cell occupied by terrain feature")
	// ErrNoDrain indicates an attempt to remove a drain from a cell that
	// has none.
	ErrNoDrain = errors.New("core: no drain at cell")
)

// CellType enumerates the terrain markers placed by the city generator.
// Markers are immutable for the lifetime of a session; only the drain mask
// is mutable, and only during setup.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellRoad
	CellHouse
	CellTree
	CellRock
)

// Grid is the shared terrain model: per-cell elevation, obstacle mask,
// terrain markers and the mutable drain set. Both engines read it; neither
// mutates it. Cells are stored row-major, index y*W+x.
type Grid struct {
	W, H int
	Conn Connectivity

	elevation []float64
	marker    []CellType
	obstacle  []bool
	drain     []bool
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(w, h int, conn Connectivity) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	total := w * h
	return &Grid{
		W:         w,
		H:         h,
		Conn:      conn,
		elevation: make([]float64, total),
		marker:    make([]CellType, total),
		obstacle:  make([]bool, total),
		drain:     make([]bool, total),
	}
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Elevation exposes the elevation field.
func (g *Grid) Elevation() []float64 { return g.elevation }

// Markers exposes the terrain marker layer.
func (g *Grid) Markers() []CellType { return g.marker }

// SetMarker places a terrain marker and keeps the obstacle mask in sync.
// Houses and rock block both ant walks and water flow.
func (g *Grid) SetMarker(x, y int, m CellType) {
	if !g.InBounds(x, y) {
		return
	}
	idx := g.Index(x, y)
	g.marker[idx] = m
	g.obstacle[idx] = m == CellHouse || m == CellRock
}

// Obstacle reports whether the cell at idx blocks movement and flow.
func (g *Grid) Obstacle(idx int) bool { return g.obstacle[idx] }

// ObstacleAt reports whether (x, y) blocks movement and flow. Out-of-bounds
// coordinates count as obstacles so callers can treat the border uniformly.
func (g *Grid) ObstacleAt(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.obstacle[g.Index(x, y)]
}

// Drain reports whether the cell at idx is a drain.
func (g *Grid) Drain(idx int) bool { return g.drain[idx] }

// AddDrain marks the cell at (x, y) as a drain. Only empty and tree cells
// accept drains; roads, houses and rock belong to the city generator.
func (g *Grid) AddDrain(x, y int) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	idx := g.Index(x, y)
	if g.obstacle[idx] || g.marker[idx] == CellRoad || g.marker[idx] == CellHouse {
		return ErrCellOccupied
	}
	g.drain[idx] = true
	return nil
}

// RemoveDrain clears the drain mark at (x, y).
func (g *Grid) RemoveDrain(x, y int) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	idx := g.Index(x, y)
	if !g.drain[idx] {
		return ErrNoDrain
	}
	g.drain[idx] = false
	return nil
}

// Drains returns the coordinates of every drain cell in row-major order.
func (g *Grid) Drains() []Point {
	var pts []Point
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.drain[g.Index(x, y)] {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// DrainCount reports the number of drain cells.
func (g *Grid) DrainCount() int {
	n := 0
	for _, d := range g.drain {
		if d {
			n++
		}
	}
	return n
}

// Diameter returns a step-count upper bound on the distance between any two
// cells, used to budget ant walks.
func (g *Grid) Diameter() int {
	if g.Conn == Conn8 {
		if g.W > g.H {
			return g.W
		}
		return g.H
	}
	return g.W + g.H
}
