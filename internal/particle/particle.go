// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package particle holds the point masses of the constellation field.
package particle

import (
	"math/rand/v2"
)

const (
	// MinSize is the smallest particle radius in logical pixels.
	MinSize = 0.7
	// SizeSpread is added to MinSize scaled by a uniform sample.
	SizeSpread = 1.7
)

// Particle is a point mass anchored to a home position.
type Particle struct {
	X, Y         float64
	HomeX, HomeY float64
	VX, VY       float64
	Size         float64
}

// New creates a particle at rest on its home position.
func New(x, y, size float64) Particle {
	return Particle{X: x, Y: y, HomeX: x, HomeY: y, Size: size}
}

// Seed creates count particles spread uniformly over a width×height area.
// Previous particles are never reused; callers replace their slice.
func Seed(rng *rand.Rand, count int, width, height float64) []Particle {
	if count <= 0 {
		return nil
	}
	ps := make([]Particle, count)
	for i := range ps {
		x := rng.Float64() * width
		y := rng.Float64() * height
		ps[i] = New(x, y, rng.Float64()*SizeSpread+MinSize)
	}
	return ps
}

// DistSq returns the squared distance between two particles.
func DistSq(a, b *Particle) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
