// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quality selects the rendering tier for the particle field.
//
// A tier is a fixed bundle of simulation parameters (density, particle
// bounds, link distance, repulsion radius, frame rate) chosen once per
// initialization from device capability signals.
//
// # Key Types
//
//   - Tier: one of reduced, low, medium, high
//   - Signals: core count, memory, viewport pixels, reduced-motion flag
//   - Config: the constant parameter record for a tier
//
// # Usage
//
//	tier := quality.Select(quality.Signals{Cores: 8, MemoryGB: 16, Pixels: 1920 * 1080})
//	cfg := quality.ConfigFor(tier)
//	n := cfg.ParticleCount(1920, 1080) // 197
package quality
