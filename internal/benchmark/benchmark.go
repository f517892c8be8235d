// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
)

// Surface names accepted by Options.Surface.
const (
	SurfaceRaster = "raster"
	SurfaceNull   = "null"
)

// Defaults applied by NewRunner.
const (
	DefaultFrames = 300
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultSeed   = 1
)

// ErrUnknownSurface is returned for a surface other than raster or null.
var ErrUnknownSurface = errors.New("unknown benchmark surface")

// maxSkippedFrames bounds callbacks that did not execute a tick.
const maxSkippedFrames = 1000

// =============================================================================
// RUNNER
// =============================================================================

// Options configure a Runner. Zero fields take the defaults above.
type Options struct {
	// Frames is the number of executed ticks per tier.
	Frames int
	// Viewport is the logical viewport and device pixel ratio.
	Viewport field.Viewport
	// Seed makes runs comparable. Zero means DefaultSeed.
	Seed uint64
	// Surface is "raster" (draw with gg) or "null" (simulation cost only).
	Surface string
	// Scenario names the pointer behaviour.
	Scenario string
	// Capabilities are recorded with the results.
	Capabilities detect.Capabilities
	// Progress is called after every executed tick when set.
	Progress func(tier quality.Tier, done, total int)
}

// Runner executes benchmarks.
type Runner struct {
	opts     Options
	scenario Scenario
}

// NewRunner creates a benchmark runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = field.NewViewport(DefaultWidth, DefaultHeight, 1)
	}
	opts.Viewport = opts.Viewport.Normalized()
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	opts.Surface = strings.ToLower(strings.TrimSpace(opts.Surface))
	if opts.Surface == "" {
		opts.Surface = SurfaceRaster
	}
	if opts.Surface != SurfaceRaster && opts.Surface != SurfaceNull {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, opts.Surface)
	}

	scenario, err := GetScenario(opts.Scenario)
	if err != nil {
		return nil, err
	}
	opts.Scenario = scenario.Name

	return &Runner{opts: opts, scenario: scenario}, nil
}

// Options returns the effective options.
func (r *Runner) Options() Options {
	return r.opts
}

// Run benchmarks each tier in order. A cancelled context stops the run and
// returns the results gathered so far together with the context error.
func (r *Runner) Run(ctx context.Context, tiers []quality.Tier) (*Suite, error) {
	suite := &Suite{
		StartedAt:    time.Now(),
		Scenario:     r.opts.Scenario,
		Surface:      r.opts.Surface,
		Viewport:     r.opts.Viewport,
		Frames:       r.opts.Frames,
		Seed:         r.opts.Seed,
		Capabilities: r.opts.Capabilities,
	}

	log.Printf("BENCH_START | scenario=%s surface=%s tiers=%d frames=%d viewport=%.0fx%.0f",
		suite.Scenario, suite.Surface, len(tiers), suite.Frames, suite.Viewport.Width, suite.Viewport.Height)

	for _, tier := range tiers {
		result, err := r.RunTier(ctx, tier)
		if err != nil {
			suite.Duration = time.Since(suite.StartedAt)
			return suite, err
		}
		suite.Results = append(suite.Results, *result)
	}

	suite.Duration = time.Since(suite.StartedAt)
	log.Printf("BENCH_DONE | tiers=%d duration=%s", len(suite.Results), suite.Duration)
	return suite, nil
}

// RunTier benchmarks a single tier.
//
// Frames are stamped on a synthetic clock that advances by the tier's frame
// interval, so every callback executes a tick and the measured cost is the
// tick body alone.
func (r *Runner) RunTier(ctx context.Context, tier quality.Tier) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface, raster := r.newSurface()
	sim, err := field.New(surface, field.Options{Tier: &tier, Seed: r.opts.Seed})
	if err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	defer sim.Dispose()

	vp := r.opts.Viewport
	sim.Initialize(vp)
	cfg := sim.Config()
	interval := cfg.FrameInterval()
	if interval <= 0 {
		interval = time.Millisecond
	}

	result := &Result{
		Tier:      cfg.Tier,
		Particles: len(sim.Particles()),
		Frames:    r.opts.Frames,
	}
	samples := make([]time.Duration, 0, r.opts.Frames)
	var links int

	start := time.Now()
	now := time.Unix(0, 0)
	skipped := 0
	for len(samples) < r.opts.Frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if x, y, ok := r.scenario.Pointer(len(samples), vp); ok {
			sim.PointerMove(x, y)
		} else {
			sim.PointerLeave()
		}

		if sim.Frame(now) == field.FrameExecuted {
			stats := sim.Stats()
			samples = append(samples, stats.LastTick)
			links += stats.Links
			result.MaxLinks = max(result.MaxLinks, stats.Links)
			if r.opts.Progress != nil {
				r.opts.Progress(cfg.Tier, len(samples), r.opts.Frames)
			}
		} else if skipped++; skipped > maxSkippedFrames {
			return nil, fmt.Errorf("tier %s stopped executing ticks", cfg.Tier)
		}
		now = now.Add(interval)
	}
	result.Duration = time.Since(start)

	result.computeAggregates(samples, links)
	if raster != nil {
		result.RasterWidth, result.RasterHeight = raster.Size()
	}

	log.Printf("BENCH_TIER | tier=%s particles=%d mean=%s p95=%s max=%s links=%.1f",
		result.Tier, result.Particles, result.MeanTick, result.P95Tick, result.MaxTick, result.MeanLinks)
	return result, nil
}

func (r *Runner) newSurface() (canvas.Surface, *canvas.Raster) {
	if r.opts.Surface == SurfaceNull {
		return canvas.Discard{}, nil
	}
	raster := canvas.NewRaster(1, 1, canvas.RasterOptions{})
	return raster, raster
}

// computeAggregates fills the tick statistics from the per-tick samples.
func (r *Result) computeAggregates(samples []time.Duration, links int) {
	if len(samples) == 0 {
		return
	}

	var total time.Duration
	for _, d := range samples {
		total += d
	}
	r.MeanTick = total / time.Duration(len(samples))
	r.MeanLinks = float64(links) / float64(len(samples))

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	r.MinTick = sorted[0]
	r.MaxTick = sorted[len(sorted)-1]
	r.P95Tick = Percentile(sorted, 95)
}

// Percentile returns the nearest-rank percentile of sorted samples.
func Percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	rank = max(1, min(len(sorted), rank))
	return sorted[rank-1]
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// FormatTick formats a tick cost with a precision that suits its size.
func FormatTick(d time.Duration) string {
	switch {
	case d <= 0:
		return "N/A"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return FormatDuration(d)
	}
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "N/A"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// Budget returns the share of the tier's frame interval a tick of cost d
// uses, as a percentage.
func Budget(d time.Duration, tier quality.Tier) float64 {
	interval := quality.ConfigFor(tier).FrameInterval()
	if interval <= 0 {
		return 0
	}
	return float64(d) / float64(interval) * 100
}
