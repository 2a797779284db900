// Package terrain generates the city grid consumed by the drainage engines:
// an elevation field from layered noise plus road, house, tree and rock
// markers. Generation is deterministic per seed.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"floodplan/internal/core"
)

// DefaultConnectivity is the neighborhood used throughout the planner.
// Orthogonal adjacency keeps path lengths and drain distances consistent
// between the optimizer heuristic and the flow model.
const DefaultConnectivity = core.Conn4

// Generate builds a city grid from the configuration. Houses and rock become
// obstacles for both engines; roads and trees stay passable.
func Generate(cfg Config, conn core.Connectivity) *core.Grid {
	grid := core.NewGrid(cfg.Width, cfg.Height, conn)
	rng := core.NewRNG(cfg.Seed)

	fillElevation(grid, cfg)
	layRoads(grid, cfg, rng)
	placeHouses(grid, cfg, rng)
	placeTrees(grid, cfg, rng)
	sprinkleRock(grid, cfg, rng)

	return grid
}

func fillElevation(grid *core.Grid, cfg Config) {
	noise := opensimplex.NewNormalized(cfg.Seed)
	octaves := cfg.Params.NoiseOctaves
	if octaves < 1 {
		octaves = 1
	}
	elev := grid.Elevation()
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			sum := 0.0
			amp := 1.0
			freq := cfg.Params.NoiseScale
			norm := 0.0
			for o := 0; o < octaves; o++ {
				sum += amp * noise.Eval2(float64(x)*freq, float64(y)*freq)
				norm += amp
				amp *= 0.5
				freq *= 2
			}
			elev[grid.Index(x, y)] = sum / norm * cfg.Params.ElevationMax
		}
	}
}

// layRoads places a road grid with gaps, matching the original city layout:
// every RoadSpacing-th row and column, each cell present with RoadChance.
func layRoads(grid *core.Grid, cfg Config, rng *core.RNG) {
	spacing := cfg.Params.RoadSpacing
	if spacing < 2 {
		spacing = 2
	}
	for y := 0; y < grid.H; y += spacing {
		for x := 0; x < grid.W; x++ {
			if rng.Float64() < cfg.Params.RoadChance {
				grid.SetMarker(x, y, core.CellRoad)
			}
		}
	}
	for x := 0; x < grid.W; x += spacing {
		for y := 0; y < grid.H; y++ {
			if rng.Float64() < cfg.Params.RoadChance {
				grid.SetMarker(x, y, core.CellRoad)
			}
		}
	}
}

func placeHouses(grid *core.Grid, cfg Config, rng *core.RNG) {
	count := randBetween(rng, cfg.Params.HouseMin, cfg.Params.HouseMax)
	markers := grid.Markers()
	for i := 0; i < count; i++ {
		if grid.W < 3 || grid.H < 3 {
			return
		}
		x := 1 + rng.IntN(grid.W-2)
		y := 1 + rng.IntN(grid.H-2)
		if markers[grid.Index(x, y)] == core.CellEmpty {
			grid.SetMarker(x, y, core.CellHouse)
		}
	}
}

func placeTrees(grid *core.Grid, cfg Config, rng *core.RNG) {
	count := randBetween(rng, cfg.Params.TreeMin, cfg.Params.TreeMax)
	markers := grid.Markers()
	for i := 0; i < count; i++ {
		x := rng.IntN(grid.W)
		y := rng.IntN(grid.H)
		if markers[grid.Index(x, y)] == core.CellEmpty {
			grid.SetMarker(x, y, core.CellTree)
		}
	}
}

func sprinkleRock(grid *core.Grid, cfg Config, rng *core.RNG) {
	if cfg.Params.RockChance <= 0 {
		return
	}
	markers := grid.Markers()
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			if markers[grid.Index(x, y)] != core.CellEmpty {
				continue
			}
			if rng.Float64() < cfg.Params.RockChance {
				grid.SetMarker(x, y, core.CellRock)
			}
		}
	}
}

func randBetween(rng *core.RNG, min, max int) int {
	if max < min {
		max = min
	}
	return min + rng.IntN(max-min+1)
}
