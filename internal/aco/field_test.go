package aco

import (
	"testing"

	"github.com/stretchr/testify/require"

	"floodplan/internal/core"
)

func openGrid(w, h int) *core.Grid {
	return core.NewGrid(w, h, core.Conn4)
}

func TestFieldInitializeUniformBaseline(t *testing.T) {
	grid := openGrid(4, 4)
	field := NewField(grid)
	field.Initialize()

	for i, v := range field.intensity {
		if field.valid[i] {
			require.Equal(t, Tau0, v)
		} else {
			require.Zero(t, v)
		}
	}
}

func TestEvaporateDepositAlgebra(t *testing.T) {
	grid := openGrid(3, 1)
	field := NewField(grid)
	field.Initialize()

	path := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	field.Evaporate(0.2)
	field.Deposit(path, 2.0)

	// Two edges, so each traversed edge gains 2/2 = 1 on top of 1*0.8.
	const east, west = 1, 3
	require.InDelta(t, 1.8, field.Intensity(0, 0, east), 1e-12)
	require.InDelta(t, 1.8, field.Intensity(1, 0, east), 1e-12)

	// The reverse edges were not traversed; they only evaporated.
	require.InDelta(t, 0.8, field.Intensity(1, 0, west), 1e-12)
	require.InDelta(t, 0.8, field.Intensity(2, 0, west), 1e-12)
}

func TestFieldBoundsUnderAnyOpSequence(t *testing.T) {
	grid := openGrid(5, 5)
	field := NewField(grid)
	field.Initialize()

	path := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}

	checkBounds := func() {
		t.Helper()
		for i, v := range field.intensity {
			if !field.valid[i] {
				continue
			}
			require.GreaterOrEqual(t, v, TauMin)
			require.LessOrEqual(t, v, TauMax)
		}
	}

	// Heavy evaporation pins intensities at the floor instead of zero.
	for i := 0; i < 100; i++ {
		field.Evaporate(0.5)
		checkBounds()
	}
	edgeIdx, ok := field.edgeIndex(path[0], path[1])
	require.True(t, ok)
	require.Equal(t, TauMin, field.intensity[edgeIdx])

	// Massive deposits saturate at the ceiling.
	for i := 0; i < 100; i++ {
		field.Deposit(path, 1000)
		checkBounds()
	}
	require.Equal(t, TauMax, field.intensity[edgeIdx])
}

func TestFieldExcludesObstacleEdges(t *testing.T) {
	grid := openGrid(3, 3)
	grid.SetMarker(1, 1, core.CellRock)
	field := NewField(grid)
	field.Initialize()

	// Every directed edge touching the rock cell is invalid.
	const degree = 4
	for d := 0; d < degree; d++ {
		require.Zero(t, field.Intensity(1, 1, d))
	}
	// The edge from (0,1) east into the rock is invalid too.
	require.Zero(t, field.Intensity(0, 1, 1))
	// An open edge elsewhere carries the baseline.
	require.Equal(t, Tau0, field.Intensity(0, 0, 1))
}

func TestDepositIgnoresDegeneratePaths(t *testing.T) {
	grid := openGrid(3, 3)
	field := NewField(grid)
	field.Initialize()

	before := field.Snapshot()
	field.Deposit(nil, 2)
	field.Deposit([]core.Point{{X: 1, Y: 1}}, 2)
	field.Deposit([]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, 0)
	require.Equal(t, before, field.Snapshot())
}
