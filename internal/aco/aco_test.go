package aco

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"floodplan/internal/core"
)

func TestStartRequiresDrains(t *testing.T) {
	grid := openGrid(5, 5)
	opt := New(grid, 1)

	err := opt.Start()
	require.ErrorIs(t, err, ErrNoDrains)
	require.Equal(t, StateSetup, opt.State())

	require.NoError(t, grid.AddDrain(0, 0))
	require.NoError(t, opt.Start())
	require.Equal(t, StateIterating, opt.State())

	// A second start command is rejected without disturbing the run.
	require.ErrorIs(t, opt.Start(), ErrNotInSetup)
	require.Equal(t, StateIterating, opt.State())
}

func TestRunIterationRejectedOutsideIterating(t *testing.T) {
	grid := openGrid(3, 3)
	opt := New(grid, 1)
	require.ErrorIs(t, opt.RunIteration(), ErrNotIterating)
}

func TestGreedyShortestPathOnFlatGrid(t *testing.T) {
	grid := openGrid(3, 3)
	require.NoError(t, grid.AddDrain(0, 0))

	opt := New(grid, 7)
	params := DefaultParams()
	params.NumAnts = 50
	params.Alpha = 0
	params.Beta = 1
	require.NoError(t, opt.Configure(params))
	require.NoError(t, opt.Start())
	require.NoError(t, opt.RunIteration())

	snap := opt.Snapshot()
	require.NotEmpty(t, snap.BestPath, "flat 3x3 grid with 50 ants must produce a successful walk")

	start := snap.BestPath[0]
	end := snap.BestPath[len(snap.BestPath)-1]
	require.Equal(t, core.Point{X: 0, Y: 0}, end)
	require.Equal(t, float64(start.X+start.Y), snap.BestCost,
		"greedy heuristic must find a Manhattan-shortest route for the iteration best")
}

func TestBestPathIsAlwaysValid(t *testing.T) {
	grid := openGrid(8, 8)
	// A wall with one gap forces routes through (4,3).
	for y := 0; y < 8; y++ {
		if y != 3 {
			grid.SetMarker(4, y, core.CellRock)
		}
	}
	require.NoError(t, grid.AddDrain(7, 7))

	opt := New(grid, 11)
	require.NoError(t, opt.Start())
	for i := 0; i < 40 && opt.State() == StateIterating; i++ {
		require.NoError(t, opt.RunIteration())
	}

	snap := opt.Snapshot()
	require.NotEmpty(t, snap.BestPath)
	for i, p := range snap.BestPath {
		require.True(t, grid.InBounds(p.X, p.Y))
		require.False(t, grid.Obstacle(grid.Index(p.X, p.Y)), "path crosses obstacle at %v", p)
		if i > 0 {
			prev := snap.BestPath[i-1]
			dist := abs(p.X-prev.X) + abs(p.Y-prev.Y)
			require.Equal(t, 1, dist, "consecutive path cells must be adjacent")
		}
	}
	require.True(t, grid.Drain(grid.Index(snap.BestPath[len(snap.BestPath)-1].X, snap.BestPath[len(snap.BestPath)-1].Y)))
}

func TestStagnationTracksImprovement(t *testing.T) {
	grid := openGrid(10, 10)
	require.NoError(t, grid.AddDrain(0, 0))

	opt := New(grid, 3)
	require.NoError(t, opt.Start())

	prev := opt.Snapshot()
	for i := 0; i < 60 && opt.State() == StateIterating; i++ {
		require.NoError(t, opt.RunIteration())
		snap := opt.Snapshot()
		if snap.BestCost < prev.BestCost {
			require.Zero(t, snap.Stagnation, "strict improvement must reset the counter")
		} else {
			require.Equal(t, prev.Stagnation+1, snap.Stagnation, "non-improving iteration must increment the counter")
		}
		prev = snap
	}
}

func TestZeroSuccessIterationsConverge(t *testing.T) {
	grid := openGrid(5, 5)
	require.NoError(t, grid.AddDrain(4, 4))
	// Seal the drain behind rock so every walk fails.
	grid.SetMarker(3, 4, core.CellRock)
	grid.SetMarker(4, 3, core.CellRock)

	opt := New(grid, 5)
	require.NoError(t, opt.Start())

	for i := 1; i <= 20; i++ {
		require.NoError(t, opt.RunIteration(), "zero-success iterations must not error")
		snap := opt.Snapshot()
		require.Zero(t, snap.Successes)
		require.Equal(t, i, snap.Stagnation)
	}

	snap := opt.Snapshot()
	require.Equal(t, StateConverged, opt.State())
	require.True(t, snap.Converged)
	require.True(t, math.IsInf(snap.BestCost, 1))
	require.Zero(t, snap.SuccessRate)

	// Evaporation still ran every iteration: baseline decayed to the floor.
	require.Equal(t, TauMin, opt.field.Intensity(0, 0, 1))

	require.ErrorIs(t, opt.RunIteration(), ErrNotIterating)
}

func TestConvergesAtExactlyStagnationLimit(t *testing.T) {
	grid := openGrid(4, 4)
	require.NoError(t, grid.AddDrain(0, 0))
	grid.SetMarker(1, 0, core.CellRock)
	grid.SetMarker(0, 1, core.CellRock)

	opt := New(grid, 9)
	require.NoError(t, opt.Start())

	for i := 0; i < DefaultParams().StagnationLimit-1; i++ {
		require.NoError(t, opt.RunIteration())
		require.Equal(t, StateIterating, opt.State())
	}
	require.NoError(t, opt.RunIteration())
	require.Equal(t, StateConverged, opt.State())
}

func TestResetDiscardsRunStateKeepsGrid(t *testing.T) {
	grid := openGrid(6, 6)
	require.NoError(t, grid.AddDrain(2, 2))

	opt := New(grid, 13)
	require.NoError(t, opt.Start())
	for i := 0; i < 5; i++ {
		require.NoError(t, opt.RunIteration())
	}

	opt.Reset()
	snap := opt.Snapshot()
	require.Equal(t, StateSetup, opt.State())
	require.Zero(t, snap.Iteration)
	require.Empty(t, snap.BestPath)
	require.True(t, math.IsInf(snap.BestCost, 1))
	require.Equal(t, 1, grid.DrainCount(), "reset must leave the drain set untouched")

	// The same seed lineage can start a fresh run.
	require.NoError(t, opt.Start())
	require.NoError(t, opt.RunIteration())
}

func TestRunsAreReproduciblePerSeed(t *testing.T) {
	build := func(seed int64) Snapshot {
		grid := openGrid(9, 9)
		elev := grid.Elevation()
		for i := range elev {
			elev[i] = float64(i % 7)
		}
		require.NoError(t, grid.AddDrain(1, 7))
		opt := New(grid, seed)
		require.NoError(t, opt.Start())
		for i := 0; i < 30 && opt.State() == StateIterating; i++ {
			require.NoError(t, opt.RunIteration())
		}
		return opt.Snapshot()
	}

	a := build(21)
	b := build(21)
	require.Equal(t, a.BestCost, b.BestCost)
	require.Equal(t, a.BestPath, b.BestPath)
	require.Equal(t, a.Iteration, b.Iteration)
}

func TestConfigureClampsAndReports(t *testing.T) {
	grid := openGrid(4, 4)
	opt := New(grid, 1)

	params := DefaultParams()
	params.NumAnts = 500
	params.EvaporationRate = 0.9
	err := opt.Configure(params)
	require.ErrorIs(t, err, core.ErrInvalidParameter)

	applied := opt.Params()
	require.Equal(t, 50, applied.NumAnts)
	require.Equal(t, 0.5, applied.EvaporationRate)
}

func TestConfigureDuringRunTakesEffectNextIteration(t *testing.T) {
	grid := openGrid(6, 6)
	require.NoError(t, grid.AddDrain(0, 0))

	opt := New(grid, 2)
	require.NoError(t, opt.Start())
	require.NoError(t, opt.RunIteration())

	params := opt.Params()
	params.NumAnts = 5
	require.NoError(t, opt.Configure(params))
	// Staged, not yet active.
	require.Equal(t, 20, opt.Params().NumAnts)

	require.NoError(t, opt.RunIteration())
	require.Equal(t, 5, opt.Params().NumAnts)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
