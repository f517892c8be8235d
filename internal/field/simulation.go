// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package field runs the constellation particle simulation.
//
// A Simulation owns the particles, the spatial grid and the pointer state.
// Hosts drive it: they call Initialize on start and on every resize, forward
// pointer and visibility events, and call Frame from their scheduler. A
// Simulation is not safe for concurrent use; every call must come from the
// host's event loop.
package field

import (
	"errors"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/particle"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/spatial"
)

// ErrNoSurface is returned by New when no drawing surface is available.
var ErrNoSurface = errors.New("field: no drawing surface")

// =============================================================================
// STATE
// =============================================================================

// State is the lifecycle state of a Simulation. Between scheduler callbacks
// a running simulation is suspended; that state is implicit.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// FrameResult reports what one scheduler callback did.
type FrameResult int

const (
	// FrameExecuted means a full tick ran and the surface was redrawn.
	FrameExecuted FrameResult = iota
	// FrameThrottled means the tick was skipped by the frame cap.
	FrameThrottled
	// FrameHidden means the view is hidden and nothing ran.
	FrameHidden
	// FrameDisposed means the simulation is disposed; hosts must stop
	// scheduling.
	FrameDisposed
)

func (r FrameResult) String() string {
	switch r {
	case FrameExecuted:
		return "executed"
	case FrameThrottled:
		return "throttled"
	case FrameHidden:
		return "hidden"
	case FrameDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Stats are counters for the HUD and benchmarks.
type Stats struct {
	Tier        quality.Tier
	Particles   int
	Links       int // links drawn by the last executed tick
	Executed    uint64
	Throttled   uint64
	Hidden      uint64
	Inits       int
	LastTick    time.Duration // wall time spent in the last executed tick
	LastExecute time.Time     // frame time of the last executed tick
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configure a Simulation.
type Options struct {
	// Signals returns device capabilities. Pixels is filled in from the
	// viewport. Nil means unknown capabilities.
	Signals func() quality.Signals

	// Tier forces a tier. Reduced motion still wins.
	Tier *quality.Tier

	// Seed makes particle placement reproducible. Zero seeds from the clock.
	Seed uint64

	// StatsLogInterval logs counters at most this often. Zero disables it.
	StatsLogInterval time.Duration
}

// =============================================================================
// SIMULATION
// =============================================================================

// Simulation is the particle field.
type Simulation struct {
	surface canvas.Surface
	opts    Options
	rng     *rand.Rand
	id      string

	viewport  Viewport
	cfg       quality.Config
	particles []particle.Particle
	grid      *spatial.Grid
	pointer   Pointer
	gate      frameGate

	visible  bool
	disposed bool
	stats    Stats
	statLog  *rate.Sometimes
}

// New creates a simulation drawing on surface. It does not initialize; the
// host calls Initialize with the first viewport.
func New(surface canvas.Surface, opts Options) (*Simulation, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Simulation{
		surface: surface,
		opts:    opts,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		id:      uuid.NewString(),
		cfg:     quality.ConfigFor(quality.TierMedium),
		grid:    spatial.NewGrid(quality.ConfigFor(quality.TierMedium).LinkDistance),
		pointer: inactivePointer,
		visible: true,
	}
	if opts.StatsLogInterval > 0 {
		s.statLog = &rate.Sometimes{Interval: opts.StatsLogInterval}
	}
	return s, nil
}

// Initialize (re)builds the field for a viewport: it resizes the surface,
// selects the tier and seeds a fresh particle set. Previous particles are
// discarded. It is a no-op after Dispose.
func (s *Simulation) Initialize(vp Viewport) {
	if s.disposed {
		return
	}
	vp = vp.Normalized()
	s.viewport = vp

	rw, rh := vp.RasterSize()
	s.surface.Resize(rw, rh)
	s.surface.SetTransform(vp.PixelRatioX, vp.PixelRatioY)

	s.cfg = quality.ConfigFor(s.selectTier(vp))
	s.gate.setInterval(s.cfg.FrameInterval())
	s.grid.Reset(s.cfg.LinkDistance)

	count := s.cfg.ParticleCount(vp.Width, vp.Height)
	s.particles = particle.Seed(s.rng, count, vp.Width, vp.Height)

	s.stats.Tier = s.cfg.Tier
	s.stats.Particles = len(s.particles)
	s.stats.Links = 0
	s.stats.Inits++

	log.Printf("FIELD_INIT | session=%s tier=%s particles=%d viewport=%.0fx%.0f raster=%dx%d",
		s.id, s.cfg.Tier, len(s.particles), vp.Width, vp.Height, rw, rh)
}

func (s *Simulation) selectTier(vp Viewport) quality.Tier {
	var sig quality.Signals
	if s.opts.Signals != nil {
		sig = s.opts.Signals()
	}
	sig.Pixels = vp.Pixels()

	if s.opts.Tier != nil && !sig.ReducedMotion {
		return *s.opts.Tier
	}
	return quality.Select(sig)
}

// SetTier replaces the forced tier. It takes effect on the next Initialize.
func (s *Simulation) SetTier(t *quality.Tier) {
	s.opts.Tier = t
}

// SetVisible pauses or resumes ticking.
func (s *Simulation) SetVisible(visible bool) {
	s.visible = visible
}

// PointerMove records the pointer at logical (x, y).
func (s *Simulation) PointerMove(x, y float64) {
	s.pointer = Pointer{X: x, Y: y, Active: true}
}

// PointerLeave deactivates the pointer. The last position is kept.
func (s *Simulation) PointerLeave() {
	s.pointer.Active = false
}

// Dispose stops the simulation for good.
func (s *Simulation) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.particles = nil
	s.grid.Reset(0)
	log.Printf("FIELD_DISPOSED | session=%s executed=%d throttled=%d", s.id, s.stats.Executed, s.stats.Throttled)
}

// Frame is the scheduler callback. now is the frame timestamp.
func (s *Simulation) Frame(now time.Time) FrameResult {
	if s.disposed {
		return FrameDisposed
	}
	if !s.visible {
		s.stats.Hidden++
		return FrameHidden
	}
	if !s.gate.allow(now) {
		s.stats.Throttled++
		return FrameThrottled
	}

	start := time.Now()
	s.tick()
	s.stats.LastTick = time.Since(start)
	s.stats.LastExecute = now
	s.stats.Executed++

	if s.statLog != nil {
		s.statLog.Do(func() {
			log.Printf("FIELD_STATS | session=%s tier=%s particles=%d links=%d executed=%d throttled=%d tick=%s",
				s.id, s.cfg.Tier, s.stats.Particles, s.stats.Links, s.stats.Executed, s.stats.Throttled, s.stats.LastTick)
		})
	}
	return FrameExecuted
}

// tick clears the surface, paints the backdrop, advances every particle and
// draws particles and links.
func (s *Simulation) tick() {
	w, h := s.viewport.Width, s.viewport.Height
	s.surface.Clear(w, h)
	s.surface.FillLinearGradient(0, 0, w, h, BackdropStops, w, h)

	s.grid.Rebuild(s.particles)

	ps := s.particles
	link := s.cfg.LinkDistance
	links := 0
	for i := range ps {
		p := &ps[i]
		Integrate(p, s.pointer, s.cfg.RepulseRadius)
		s.surface.FillCircle(p.X, p.Y, p.Size, ParticleColor)

		s.grid.ForEachNeighbor(i, p.X, p.Y, func(j int) bool {
			q := &ps[j]
			d := math.Sqrt(particle.DistSq(p, q))
			if d <= link {
				s.surface.StrokeLine(p.X, p.Y, q.X, q.Y, LinkWidth, LinkColor.WithAlpha(LinkAlpha(d, link)))
				links++
			}
			return true
		})
	}
	s.stats.Links = links
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the lifecycle state.
func (s *Simulation) State() State {
	switch {
	case s.disposed:
		return StateDisposed
	case !s.visible:
		return StatePaused
	default:
		return StateRunning
	}
}

// SessionID identifies this simulation in logs and benchmark rows.
func (s *Simulation) SessionID() string { return s.id }

// Config returns the active tier configuration.
func (s *Simulation) Config() quality.Config { return s.cfg }

// Viewport returns the viewport of the last Initialize.
func (s *Simulation) Viewport() Viewport { return s.viewport }

// Pointer returns the pointer state.
func (s *Simulation) Pointer() Pointer { return s.pointer }

// Stats returns a copy of the counters.
func (s *Simulation) Stats() Stats { return s.stats }

// Particles exposes the particle slice for inspection. Callers must not
// retain it across Initialize.
func (s *Simulation) Particles() []particle.Particle { return s.particles }
