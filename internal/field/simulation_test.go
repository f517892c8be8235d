// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package field

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/particle"
	"github.com/jeranaias/constellation/internal/quality"
)

func newTestSim(t *testing.T, opts Options) (*Simulation, *canvas.Recorder) {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	rec := canvas.NewRecorder()
	sim, err := New(rec, opts)
	require.NoError(t, err)
	return sim, rec
}

func tierPtr(t quality.Tier) *quality.Tier { return &t }

// =============================================================================
// CONSTRUCTION AND INITIALIZATION
// =============================================================================

func TestNew_NoSurface(t *testing.T) {
	sim, err := New(nil, Options{})
	assert.Nil(t, sim)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestNew_Defaults(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	assert.Equal(t, StateRunning, sim.State())
	assert.False(t, sim.Pointer().Active)
	assert.NotEmpty(t, sim.SessionID())
	assert.Empty(t, sim.Particles())
}

func TestInitialize_MediumFullHD(t *testing.T) {
	sim, rec := newTestSim(t, Options{})
	sim.Initialize(NewViewport(1920, 1080, 2))

	assert.Equal(t, quality.TierMedium, sim.Config().Tier)
	assert.Len(t, sim.Particles(), 138)
	assert.Equal(t, 138, sim.Stats().Particles)
	assert.Equal(t, 3840, rec.Width)
	assert.Equal(t, 2160, rec.Height)
	assert.Equal(t, 2.0, rec.ScaleX)
	assert.Equal(t, 2.0, rec.ScaleY)
}

func TestInitialize_UsesSignals(t *testing.T) {
	strong := func() quality.Signals { return quality.Signals{Cores: 16, MemoryGB: 16} }

	sim, _ := newTestSim(t, Options{Signals: strong})
	sim.Initialize(NewViewport(1920, 1080, 1))
	assert.Equal(t, quality.TierHigh, sim.Config().Tier)

	// Pixels come from the viewport, so a 4K viewport drops to medium.
	sim.Initialize(NewViewport(3840, 2160, 1))
	assert.Equal(t, quality.TierMedium, sim.Config().Tier)
}

func TestInitialize_ForcedTier(t *testing.T) {
	sim, _ := newTestSim(t, Options{Tier: tierPtr(quality.TierLow)})
	sim.Initialize(NewViewport(1280, 720, 1))
	assert.Equal(t, quality.TierLow, sim.Config().Tier)
}

func TestSetTier_AppliesOnNextInitialize(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	sim.Initialize(NewViewport(1280, 720, 1))
	assert.Equal(t, quality.TierMedium, sim.Config().Tier)

	sim.SetTier(tierPtr(quality.TierHigh))
	assert.Equal(t, quality.TierMedium, sim.Config().Tier)

	sim.Initialize(NewViewport(1280, 720, 1))
	assert.Equal(t, quality.TierHigh, sim.Config().Tier)

	sim.SetTier(nil)
	sim.Initialize(NewViewport(1280, 720, 1))
	assert.Equal(t, quality.TierMedium, sim.Config().Tier)
}

func TestInitialize_ReducedMotionBeatsForcedTier(t *testing.T) {
	reduced := func() quality.Signals { return quality.Signals{ReducedMotion: true} }
	sim, _ := newTestSim(t, Options{Tier: tierPtr(quality.TierHigh), Signals: reduced})
	sim.Initialize(NewViewport(1280, 720, 1))
	assert.Equal(t, quality.TierReduced, sim.Config().Tier)
}

func TestInitialize_Idempotent(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	vp := NewViewport(1600, 900, 1)

	sim.Initialize(vp)
	first := append([]particle.Particle(nil), sim.Particles()...)

	for i := 0; i < 5; i++ {
		sim.Initialize(vp)
		cfg := sim.Config()
		n := len(sim.Particles())
		assert.Equal(t, cfg.ParticleCount(vp.Width, vp.Height), n)
		assert.GreaterOrEqual(t, n, cfg.MinParticles)
		assert.LessOrEqual(t, n, cfg.MaxParticles)
	}
	assert.Equal(t, 6, sim.Stats().Inits)
	assert.NotEqual(t, first, sim.Particles())
}

func TestInitialize_ResizeReplacesSet(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	sim.Initialize(NewViewport(1920, 1080, 1))
	require.Len(t, sim.Particles(), 138)

	sim.Initialize(NewViewport(640, 480, 1))
	assert.Len(t, sim.Particles(), 90)
	for _, p := range sim.Particles() {
		assert.Less(t, p.HomeX, 640.0)
		assert.Less(t, p.HomeY, 480.0)
	}
}

// =============================================================================
// FRAME GATING
// =============================================================================

func TestFrame_FirstExecutesThenThrottles(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	sim.Initialize(NewViewport(800, 600, 1))

	now := time.Unix(1000, 0)
	assert.Equal(t, FrameExecuted, sim.Frame(now))
	assert.Equal(t, FrameThrottled, sim.Frame(now.Add(time.Millisecond)))
	assert.Equal(t, FrameExecuted, sim.Frame(now.Add(sim.Config().FrameInterval())))

	st := sim.Stats()
	assert.Equal(t, uint64(2), st.Executed)
	assert.Equal(t, uint64(1), st.Throttled)
}

func TestFrame_ExecutedTicksRespectInterval(t *testing.T) {
	for _, tier := range quality.Tiers {
		t.Run(tier.String(), func(t *testing.T) {
			sim, _ := newTestSim(t, Options{Tier: tierPtr(tier)})
			sim.Initialize(NewViewport(640, 360, 1))
			interval := sim.Config().FrameInterval()

			start := time.Unix(5000, 0)
			var executed []time.Time
			for ms := 0; ms < 2000; ms++ {
				now := start.Add(time.Duration(ms) * time.Millisecond)
				if sim.Frame(now) == FrameExecuted {
					executed = append(executed, now)
				}
			}

			require.Greater(t, len(executed), 1)
			for i := 1; i < len(executed); i++ {
				assert.GreaterOrEqual(t, executed[i].Sub(executed[i-1]), interval)
			}
			// A 1ms scheduler never waits more than one extra millisecond.
			maxTicks := int(2*time.Second/interval) + 1
			assert.LessOrEqual(t, len(executed), maxTicks)
			assert.GreaterOrEqual(t, len(executed), maxTicks/2)
		})
	}
}

func TestFrame_HiddenSkipsWithoutDrawing(t *testing.T) {
	sim, rec := newTestSim(t, Options{})
	sim.Initialize(NewViewport(800, 600, 1))
	rec.Reset()

	sim.SetVisible(false)
	assert.Equal(t, StatePaused, sim.State())
	assert.Equal(t, FrameHidden, sim.Frame(time.Unix(1, 0)))
	assert.Empty(t, rec.Calls)
	assert.Equal(t, uint64(1), sim.Stats().Hidden)

	sim.SetVisible(true)
	assert.Equal(t, StateRunning, sim.State())
	assert.Equal(t, FrameExecuted, sim.Frame(time.Unix(2, 0)))
}

func TestFrame_HiddenDoesNotConsumeInterval(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	sim.Initialize(NewViewport(800, 600, 1))

	now := time.Unix(10, 0)
	require.Equal(t, FrameExecuted, sim.Frame(now))
	sim.SetVisible(false)
	sim.Frame(now.Add(time.Second))
	sim.SetVisible(true)
	assert.Equal(t, FrameExecuted, sim.Frame(now.Add(time.Second+time.Millisecond)))
}

func TestDispose(t *testing.T) {
	sim, rec := newTestSim(t, Options{})
	sim.Initialize(NewViewport(800, 600, 1))
	sim.Dispose()
	sim.Dispose()
	rec.Reset()

	assert.Equal(t, StateDisposed, sim.State())
	assert.Equal(t, FrameDisposed, sim.Frame(time.Unix(100, 0)))
	assert.Empty(t, sim.Particles())

	sim.Initialize(NewViewport(800, 600, 1))
	sim.SetVisible(true)
	assert.Equal(t, FrameDisposed, sim.Frame(time.Unix(200, 0)))
	assert.Empty(t, rec.Calls)
	assert.Empty(t, sim.Particles())
}

// =============================================================================
// TICK CONTENTS
// =============================================================================

func TestTick_DrawOrder(t *testing.T) {
	sim, rec := newTestSim(t, Options{})
	sim.Initialize(NewViewport(400, 300, 1))
	rec.Reset()

	require.Equal(t, FrameExecuted, sim.Frame(time.Unix(1, 0)))
	require.GreaterOrEqual(t, len(rec.Calls), 3)

	assert.Equal(t, canvas.OpClear, rec.Calls[0].Op)
	assert.Equal(t, 400.0, rec.Calls[0].W)
	assert.Equal(t, 300.0, rec.Calls[0].H)

	grad := rec.Calls[1]
	assert.Equal(t, canvas.OpGradient, grad.Op)
	assert.Equal(t, 400.0, grad.X1)
	assert.Equal(t, 300.0, grad.Y1)
	assert.Equal(t, BackdropStops, grad.Stops)

	assert.Equal(t, len(sim.Particles()), rec.Count(canvas.OpCircle))
	for _, c := range rec.Filter(canvas.OpCircle) {
		assert.Equal(t, ParticleColor, c.Color)
	}
}

func TestTick_KnownLinks(t *testing.T) {
	sim, rec := newTestSim(t, Options{Tier: tierPtr(quality.TierMedium)})
	sim.Initialize(NewViewport(1000, 1000, 1))
	sim.particles = []particle.Particle{
		particle.New(100, 100, 1),
		particle.New(150, 100, 1),
		particle.New(300, 100, 1),
		particle.New(100, 220, 1),
	}
	rec.Reset()

	require.Equal(t, FrameExecuted, sim.Frame(time.Unix(1, 0)))

	lines := rec.Filter(canvas.OpLine)
	// (0,3) d=120 exactly, (0,1) d=50, (1,2) d=150 too far, (1,3) d=130 too far.
	// Neighbour cells are walked column by column, so (0,3) comes first.
	require.Len(t, lines, 2)
	assert.InDelta(t, 0, lines[0].Color.A, 1e-12)
	assert.InDelta(t, (1-50.0/120)*MaxLinkAlpha, lines[1].Color.A, 1e-12)
	assert.Equal(t, LinkWidth, lines[0].Width)
	assert.Equal(t, 2, sim.Stats().Links)
}

func TestTick_NoDuplicateEdgesAndDistanceGate(t *testing.T) {
	sim, rec := newTestSim(t, Options{Tier: tierPtr(quality.TierHigh), Seed: 99})
	sim.Initialize(NewViewport(1280, 800, 1))
	link := sim.Config().LinkDistance

	now := time.Unix(50, 0)
	for f := 0; f < 5; f++ {
		rec.Reset()
		now = now.Add(time.Second)
		require.Equal(t, FrameExecuted, sim.Frame(now))

		type seg struct{ x0, y0, x1, y1 float64 }
		seen := make(map[seg]bool)
		for _, l := range rec.Filter(canvas.OpLine) {
			d := math.Hypot(l.X1-l.X0, l.Y1-l.Y0)
			assert.LessOrEqual(t, d, link+1e-9)
			assert.InDelta(t, LinkAlpha(d, link), l.Color.A, 1e-12)

			a := seg{l.X0, l.Y0, l.X1, l.Y1}
			b := seg{l.X1, l.Y1, l.X0, l.Y0}
			assert.False(t, seen[a] || seen[b], "duplicate edge %v", a)
			seen[a] = true
		}
		assert.Equal(t, len(seen), sim.Stats().Links)
	}
}

func TestTick_SpringHoldsRestingParticle(t *testing.T) {
	sim, _ := newTestSim(t, Options{})
	sim.Initialize(NewViewport(500, 500, 1))
	sim.particles = []particle.Particle{particle.New(250, 250, 1)}

	sim.Frame(time.Unix(1, 0))
	p := sim.Particles()[0]
	assert.Equal(t, 250.0, p.X)
	assert.Equal(t, 250.0, p.Y)
}

func TestTick_PointerRepelsAndLeaveStops(t *testing.T) {
	sim, _ := newTestSim(t, Options{Tier: tierPtr(quality.TierMedium)})
	sim.Initialize(NewViewport(500, 500, 1))
	sim.particles = []particle.Particle{particle.New(100, 100, 1)}

	sim.PointerMove(90, 100)
	require.True(t, sim.Pointer().Active)
	sim.Frame(time.Unix(1, 0))

	power := ((180.0 - 10) / 180) * RepulseStrength
	p := sim.Particles()[0]
	assert.InDelta(t, 100+power*Damping, p.X, 1e-12)
	assert.InDelta(t, 100, p.Y, 1e-12)

	sim.PointerLeave()
	assert.False(t, sim.Pointer().Active)
	assert.Equal(t, 90.0, sim.Pointer().X)
}

func TestSimulation_Reproducible(t *testing.T) {
	a, _ := newTestSim(t, Options{Seed: 7})
	b, _ := newTestSim(t, Options{Seed: 7})
	a.Initialize(NewViewport(900, 700, 1))
	b.Initialize(NewViewport(900, 700, 1))

	now := time.Unix(1, 0)
	for i := 0; i < 20; i++ {
		now = now.Add(100 * time.Millisecond)
		a.PointerMove(450, 350)
		b.PointerMove(450, 350)
		a.Frame(now)
		b.Frame(now)
	}
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "throttled", FrameThrottled.String())
	assert.Equal(t, "unknown", FrameResult(9).String())
}
