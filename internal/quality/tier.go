// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quality

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrUnknownTier is returned by ParseTier for names that are not a tier.
var ErrUnknownTier = errors.New("unknown quality tier")

// =============================================================================
// TIER DEFINITIONS
// =============================================================================

// Tier is a named preset of simulation parameters.
type Tier int

const (
	// TierReduced is used whenever the user asks for reduced motion.
	TierReduced Tier = iota
	// TierLow targets weak devices (few cores or little memory).
	TierLow
	// TierMedium is the default.
	TierMedium
	// TierHigh targets strong devices with moderately sized viewports.
	TierHigh
)

// Tiers lists every tier from lightest to heaviest.
var Tiers = []Tier{TierReduced, TierLow, TierMedium, TierHigh}

// String returns the lower-case tier name.
func (t Tier) String() string {
	switch t {
	case TierReduced:
		return "reduced"
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseTier parses a tier name. Matching is case-insensitive.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "reduced":
		return TierReduced, nil
	case "low":
		return TierLow, nil
	case "medium":
		return TierMedium, nil
	case "high":
		return TierHigh, nil
	default:
		return TierMedium, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
}

// =============================================================================
// SELECTION
// =============================================================================

const (
	// DefaultCores is assumed when the core count is unknown.
	DefaultCores = 4
	// DefaultMemoryGB is assumed when device memory is unknown.
	DefaultMemoryGB = 4

	highMinCores    = 8
	highMinMemoryGB = 8
	highMaxPixels   = 3_000_000
	lowMaxCores     = 2
	lowMaxMemoryGB  = 2
)

// Signals are the device capability inputs to Select.
// Zero or negative Cores and MemoryGB mean "unknown".
type Signals struct {
	Cores         int
	MemoryGB      float64
	Pixels        float64
	ReducedMotion bool
}

// Normalized returns the signals with unknown values replaced by defaults.
func (s Signals) Normalized() Signals {
	if s.Cores <= 0 {
		s.Cores = DefaultCores
	}
	if s.MemoryGB <= 0 {
		s.MemoryGB = DefaultMemoryGB
	}
	return s
}

// Select picks exactly one tier for the given signals.
//
// Reduced motion overrides everything. Otherwise a device with at least
// 8 cores and 8 GB that renders at most 3,000,000 pixels gets TierHigh, a
// device with at most 2 cores or 2 GB gets TierLow, and everything else
// gets TierMedium.
func Select(s Signals) Tier {
	if s.ReducedMotion {
		return TierReduced
	}
	s = s.Normalized()

	if s.Cores >= highMinCores && s.MemoryGB >= highMinMemoryGB && s.Pixels <= highMaxPixels {
		return TierHigh
	}
	if s.Cores <= lowMaxCores || s.MemoryGB <= lowMaxMemoryGB {
		return TierLow
	}
	return TierMedium
}

// =============================================================================
// TIER CONFIGURATION
// =============================================================================

// Config is the constant parameter record of a tier.
type Config struct {
	Tier Tier

	// ParticleDivisor is the viewport area (px²) per particle.
	ParticleDivisor float64
	MinParticles    int
	MaxParticles    int

	// LinkDistance is both the connection threshold and the grid cell size.
	LinkDistance  float64
	RepulseRadius float64
	FPS           int
}

var configs = map[Tier]Config{
	TierReduced: {
		Tier:            TierReduced,
		ParticleDivisor: 26000,
		MinParticles:    40,
		MaxParticles:    70,
		LinkDistance:    78,
		RepulseRadius:   120,
		FPS:             26,
	},
	TierLow: {
		Tier:            TierLow,
		ParticleDivisor: 21000,
		MinParticles:    55,
		MaxParticles:    95,
		LinkDistance:    90,
		RepulseRadius:   140,
		FPS:             34,
	},
	TierMedium: {
		Tier:            TierMedium,
		ParticleDivisor: 15000,
		MinParticles:    90,
		MaxParticles:    180,
		LinkDistance:    120,
		RepulseRadius:   180,
		FPS:             45,
	},
	TierHigh: {
		Tier:            TierHigh,
		ParticleDivisor: 10500,
		MinParticles:    140,
		MaxParticles:    260,
		LinkDistance:    140,
		RepulseRadius:   210,
		FPS:             58,
	},
}

// ConfigFor returns the configuration of a tier. Unknown tiers get the
// medium configuration.
func ConfigFor(t Tier) Config {
	if cfg, ok := configs[t]; ok {
		return cfg
	}
	return configs[TierMedium]
}

// FrameInterval is the minimum spacing between executed ticks.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// ParticleCount returns clamp(floor(width*height/divisor), min, max).
func (c Config) ParticleCount(width, height float64) int {
	raw := 0
	if c.ParticleDivisor > 0 && width > 0 && height > 0 {
		raw = int(math.Floor(width * height / c.ParticleDivisor))
	}
	return max(c.MinParticles, min(c.MaxParticles, raw))
}
