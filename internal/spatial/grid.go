// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package spatial provides a uniform hash grid for neighbour queries.
//
// The grid is rebuilt from scratch on every tick. Buckets keep their backing
// arrays across rebuilds so steady-state ticks do not allocate.
package spatial

import (
	"math"

	"github.com/jeranaias/constellation/internal/particle"
)

// Key identifies one grid cell. Negative coordinates map to negative cells.
type Key struct {
	X, Y int
}

// Grid maps cell keys to particle indices.
type Grid struct {
	cellSize float64
	cells    map[Key][]int
}

// NewGrid creates an empty grid. Non-positive cell sizes are treated as 1.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Key][]int),
	}
}

// KeyFor returns the cell containing (x, y).
func (g *Grid) KeyFor(x, y float64) Key {
	return Key{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Clear empties every bucket but keeps their capacity.
func (g *Grid) Clear() {
	for k, bucket := range g.cells {
		g.cells[k] = bucket[:0]
	}
}

// Reset drops every bucket. Use after a resize when old keys are useless.
func (g *Grid) Reset(cellSize float64) {
	if cellSize > 0 {
		g.cellSize = cellSize
	}
	clear(g.cells)
}

// Insert adds index i at (x, y).
func (g *Grid) Insert(i int, x, y float64) {
	k := g.KeyFor(x, y)
	g.cells[k] = append(g.cells[k], i)
}

// Rebuild clears the grid and inserts every particle at its current position.
func (g *Grid) Rebuild(ps []particle.Particle) {
	g.Clear()
	for i := range ps {
		g.Insert(i, ps[i].X, ps[i].Y)
	}
}

// ForEachNeighbor calls fn for every index j > i stored in the 3×3 block of
// cells around (x, y). Each unordered pair is therefore yielded once when
// every i is queried. Returning false from fn stops the walk.
func (g *Grid) ForEachNeighbor(i int, x, y float64, fn func(j int) bool) {
	center := g.KeyFor(x, y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			bucket := g.cells[Key{X: center.X + dx, Y: center.Y + dy}]
			for _, j := range bucket {
				if j <= i {
					continue
				}
				if !fn(j) {
					return
				}
			}
		}
	}
}
