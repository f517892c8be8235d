// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package particle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ps := Seed(rng, 138, 1920, 1080)
	require.Len(t, ps, 138)

	for i, p := range ps {
		assert.GreaterOrEqual(t, p.X, 0.0, "particle %d", i)
		assert.Less(t, p.X, 1920.0, "particle %d", i)
		assert.GreaterOrEqual(t, p.Y, 0.0, "particle %d", i)
		assert.Less(t, p.Y, 1080.0, "particle %d", i)
		assert.Equal(t, p.X, p.HomeX)
		assert.Equal(t, p.Y, p.HomeY)
		assert.Zero(t, p.VX)
		assert.Zero(t, p.VY)
		assert.GreaterOrEqual(t, p.Size, MinSize)
		assert.Less(t, p.Size, MinSize+SizeSpread)
	}
}

func TestSeed_EmptyCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	assert.Empty(t, Seed(rng, 0, 100, 100))
	assert.Empty(t, Seed(rng, -5, 100, 100))
}

func TestSeed_Reproducible(t *testing.T) {
	a := Seed(rand.New(rand.NewPCG(7, 7)), 50, 800, 600)
	b := Seed(rand.New(rand.NewPCG(7, 7)), 50, 800, 600)
	assert.Equal(t, a, b)
}

func TestSeed_FreshSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	first := Seed(rng, 40, 640, 480)
	second := Seed(rng, 40, 640, 480)

	require.Len(t, second, 40)
	assert.NotEqual(t, first, second)

	// Mutating the new set must not touch the old one.
	second[0].X = -1
	assert.NotEqual(t, -1.0, first[0].X)
}

func TestDistSq(t *testing.T) {
	a := New(0, 0, 1)
	b := New(3, 4, 1)
	assert.Equal(t, 25.0, DistSq(&a, &b))
	assert.Equal(t, 0.0, DistSq(&a, &a))
}
