// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TIER NAME TESTS
// =============================================================================

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierReduced, "reduced"},
		{TierLow, "low"},
		{TierMedium, "medium"},
		{TierHigh, "high"},
		{Tier(42), "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.tier.String())
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}

	got, err := ParseTier("  HIGH ")
	require.NoError(t, err)
	assert.Equal(t, TierHigh, got)

	_, err = ParseTier("ultra")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    Tier
	}{
		{"strong device small viewport", Signals{Cores: 8, MemoryGB: 8, Pixels: 1920 * 1080}, TierHigh},
		{"strong device at pixel limit", Signals{Cores: 16, MemoryGB: 32, Pixels: 3_000_000}, TierHigh},
		{"strong device huge viewport", Signals{Cores: 16, MemoryGB: 32, Pixels: 3840 * 2160}, TierMedium},
		{"eight cores little memory", Signals{Cores: 8, MemoryGB: 4, Pixels: 1000}, TierMedium},
		{"two cores", Signals{Cores: 2, MemoryGB: 16, Pixels: 1000}, TierLow},
		{"two gigabytes", Signals{Cores: 8, MemoryGB: 2, Pixels: 1000}, TierLow},
		{"half gigabyte", Signals{Cores: 4, MemoryGB: 0.5, Pixels: 1000}, TierLow},
		{"middle of the road", Signals{Cores: 4, MemoryGB: 4, Pixels: 1920 * 1080}, TierMedium},
		{"unknown signals", Signals{Pixels: 1920 * 1080}, TierMedium},
		{"reduced motion wins", Signals{Cores: 32, MemoryGB: 64, Pixels: 100, ReducedMotion: true}, TierReduced},
		{"reduced motion on weak device", Signals{Cores: 1, MemoryGB: 1, ReducedMotion: true}, TierReduced},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Select(tc.signals))
		})
	}
}

func TestSelect_Deterministic(t *testing.T) {
	s := Signals{Cores: 6, MemoryGB: 8, Pixels: 2_560_000}
	first := Select(s)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Select(s))
	}
}

func TestSignals_Normalized(t *testing.T) {
	s := Signals{Cores: -1, MemoryGB: 0}.Normalized()
	assert.Equal(t, DefaultCores, s.Cores)
	assert.Equal(t, float64(DefaultMemoryGB), s.MemoryGB)

	kept := Signals{Cores: 12, MemoryGB: 0.25}.Normalized()
	assert.Equal(t, 12, kept.Cores)
	assert.Equal(t, 0.25, kept.MemoryGB)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestConfigFor(t *testing.T) {
	medium := ConfigFor(TierMedium)
	assert.Equal(t, 15000.0, medium.ParticleDivisor)
	assert.Equal(t, 90, medium.MinParticles)
	assert.Equal(t, 180, medium.MaxParticles)
	assert.Equal(t, 120.0, medium.LinkDistance)
	assert.Equal(t, 180.0, medium.RepulseRadius)
	assert.Equal(t, 45, medium.FPS)

	assert.Equal(t, medium, ConfigFor(Tier(99)))

	for _, tier := range Tiers {
		cfg := ConfigFor(tier)
		assert.Equal(t, tier, cfg.Tier)
		assert.LessOrEqual(t, cfg.MinParticles, cfg.MaxParticles)
		assert.Positive(t, cfg.LinkDistance)
		assert.Positive(t, cfg.FPS)
	}
}

func TestConfig_FrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/45, ConfigFor(TierMedium).FrameInterval())
	assert.Equal(t, time.Duration(0), Config{}.FrameInterval())
}

func TestConfig_ParticleCount(t *testing.T) {
	medium := ConfigFor(TierMedium)

	// 1920*1080/15000 = 138.24
	assert.Equal(t, 138, medium.ParticleCount(1920, 1080))
	assert.Equal(t, medium.MinParticles, medium.ParticleCount(320, 240))
	assert.Equal(t, medium.MaxParticles, medium.ParticleCount(7680, 4320))
	assert.Equal(t, medium.MinParticles, medium.ParticleCount(0, 0))
}

func TestConfig_ParticleCountBounds(t *testing.T) {
	sizes := [][2]float64{
		{1, 1}, {320, 200}, {800, 600}, {1280, 720}, {1920, 1080},
		{2560, 1440}, {3440, 1440}, {3840, 2160}, {7680, 4320},
	}

	for _, tier := range Tiers {
		cfg := ConfigFor(tier)
		for _, sz := range sizes {
			n := cfg.ParticleCount(sz[0], sz[1])
			assert.GreaterOrEqual(t, n, cfg.MinParticles, "%s %v", tier, sz)
			assert.LessOrEqual(t, n, cfg.MaxParticles, "%s %v", tier, sz)
		}
	}
}
