package aco

import "floodplan/internal/core"

const unreachable = -1

// drainDistances computes, for every open cell, the step distance to the
// nearest drain via a multi-source breadth-first search over non-obstacle
// cells. Cells with no route to any drain get unreachable (-1).
func drainDistances(grid *core.Grid) []int {
	total := grid.W * grid.H
	dist := make([]int, total)
	for i := range dist {
		dist[i] = unreachable
	}

	queue := make([]int, 0, total)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			idx := grid.Index(x, y)
			if grid.Drain(idx) && !grid.Obstacle(idx) {
				dist[idx] = 0
				queue = append(queue, idx)
			}
		}
	}

	offsets := grid.Conn.Offsets()
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x := idx % grid.W
		y := idx / grid.W
		for _, off := range offsets {
			nx, ny := x+off[0], y+off[1]
			if grid.ObstacleAt(nx, ny) {
				continue
			}
			nIdx := grid.Index(nx, ny)
			if dist[nIdx] != unreachable {
				continue
			}
			dist[nIdx] = dist[idx] + 1
			queue = append(queue, nIdx)
		}
	}

	return dist
}
