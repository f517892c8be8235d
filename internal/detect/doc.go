// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect probes the device capabilities used for quality tier
// selection.
//
// # Key Types
//
//   - Capabilities: logical core count, approximate memory and the
//     reduced-motion preference
//
// # Sources
//
//   - Cores: gopsutil cpu.Counts, falling back to runtime.NumCPU
//   - Memory: sysinfo(2) on Linux, gopsutil mem.VirtualMemory elsewhere,
//     rounded to the nearest power of two in GB
//   - Reduced motion: the CONSTELLATION_REDUCED_MOTION environment variable
//
// # Usage
//
//	caps, err := detect.ProbeCached(ctx)
//	if err != nil {
//		log.Printf("DETECT_FAILED | error=%v", err)
//	}
//	tier := quality.Select(caps.Signals(width * height))
package detect
