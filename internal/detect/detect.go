// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/jeranaias/constellation/internal/quality"
)

// probeTimeout bounds a single capability probe.
// CANCELLATION: Context enables timeout and cancellation
const probeTimeout = 3 * time.Second

// ReducedMotionEnv is the environment variable carrying the reduced-motion
// preference.
const ReducedMotionEnv = "CONSTELLATION_REDUCED_MOTION"

const bytesPerGB = 1 << 30

// =============================================================================
// CAPABILITIES
// =============================================================================

// Capabilities describes the device for tier selection.
type Capabilities struct {
	// Cores is the logical core count.
	Cores int `json:"cores"`
	// MemoryGB is the approximate memory, a power of two. Zero means unknown.
	MemoryGB float64 `json:"memory_gb"`
	// MemoryBytes is the exact total reported by the OS.
	MemoryBytes uint64 `json:"memory_bytes"`
	// ReducedMotion is the user's reduced-motion preference.
	ReducedMotion bool `json:"reduced_motion"`
	// MemorySource names how memory was read ("sysinfo", "gopsutil", "").
	MemorySource string `json:"memory_source,omitempty"`
}

// Signals converts the capabilities into tier selection input for a
// viewport of the given pixel count.
func (c Capabilities) Signals(pixels float64) quality.Signals {
	return quality.Signals{
		Cores:         c.Cores,
		MemoryGB:      c.MemoryGB,
		Pixels:        pixels,
		ReducedMotion: c.ReducedMotion,
	}
}

// String formats the capabilities for the tiers command.
func (c Capabilities) String() string {
	mem := "unknown"
	if c.MemoryGB > 0 {
		mem = strconv.FormatFloat(c.MemoryGB, 'g', -1, 64) + " GB"
	}
	return fmt.Sprintf("%d cores, %s memory, reduced motion %v", c.Cores, mem, c.ReducedMotion)
}

// =============================================================================
// DETECTION CACHE
// =============================================================================

var (
	capsCache         *Capabilities
	capsCacheTime     time.Time
	capsCacheMu       sync.Mutex
	capsCacheDuration = 5 * time.Minute
)

// =============================================================================
// PROBING
// =============================================================================

// Probe reads the current capabilities, giving up after probeTimeout.
// Partial failures are not fatal: whatever could be read is returned
// together with the first error.
func Probe(ctx context.Context) (Capabilities, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var caps Capabilities
	var firstErr error

	cores, err := coresWithContext(ctx)
	if err != nil {
		firstErr = err
	}
	caps.Cores = cores

	if err := ctx.Err(); err != nil {
		return caps, fmt.Errorf("probe cancelled: %w", err)
	}

	total, source, err := totalMemoryWithContext(ctx)
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("read memory: %w", err)
	}
	caps.MemoryBytes = total
	caps.MemoryGB = RoundMemoryGB(total)
	if total > 0 {
		caps.MemorySource = source
	}

	caps.ReducedMotion = ReducedMotionFromEnv()
	return caps, firstErr
}

// ProbeCached returns the cached capabilities if they are fresh, otherwise
// probes and caches the result. Cache TTL is 5 minutes.
// Thread-safe: Uses mutex to protect cache access.
func ProbeCached(ctx context.Context) (Capabilities, error) {
	capsCacheMu.Lock()
	defer capsCacheMu.Unlock()

	if capsCache != nil && time.Since(capsCacheTime) < capsCacheDuration {
		return *capsCache, nil
	}

	caps, err := Probe(ctx)
	if err != nil {
		// Don't cache partial results.
		return caps, err
	}

	capsCache = &caps
	capsCacheTime = time.Now()
	return caps, nil
}

// ClearCache forces a fresh probe on the next ProbeCached call.
func ClearCache() {
	capsCacheMu.Lock()
	defer capsCacheMu.Unlock()
	capsCache = nil
	capsCacheTime = time.Time{}
}

// coresWithContext returns the logical core count. runtime.NumCPU is the
// fallback, so the count is always positive.
func coresWithContext(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil || n <= 0 {
		if err == nil {
			err = fmt.Errorf("cpu count returned %d", n)
		}
		return runtime.NumCPU(), fmt.Errorf("count cores: %w", err)
	}
	return n, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// RoundMemoryGB converts bytes to GB rounded to the nearest power of two,
// the way browsers approximate device memory. Zero stays zero.
func RoundMemoryGB(bytes uint64) float64 {
	if bytes == 0 {
		return 0
	}
	gb := float64(bytes) / bytesPerGB
	return math.Exp2(math.Round(math.Log2(gb)))
}

// ReducedMotionFromEnv reports whether ReducedMotionEnv is set to a true
// value ("1", "true", "yes", "on"; case-insensitive).
func ReducedMotionFromEnv() bool {
	return parseBool(os.Getenv(ReducedMotionEnv))
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true
	default:
		return false
	}
}
