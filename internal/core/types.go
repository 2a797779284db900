package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Point identifies a single cell by its grid coordinates.
type Point struct {
	X int
	Y int
}

// Connectivity selects the neighborhood used for edges and flow: orthogonal
// only (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

var conn4Offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var conn8Offsets = [][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Offsets returns the neighbor offset table for the connectivity. The order
// is fixed so walks driven by a seeded generator stay reproducible.
func (c Connectivity) Offsets() [][2]int {
	if c == Conn8 {
		return conn8Offsets
	}
	return conn4Offsets
}

// Degree reports the number of directed edges leaving a cell.
func (c Connectivity) Degree() int {
	if c == Conn8 {
		return 8
	}
	return 4
}
