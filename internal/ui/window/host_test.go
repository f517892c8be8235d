// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	cfg := config.Default()
	cfg.Field.Tier = "medium"
	cfg.Field.Seed = 3
	cfg.UI.Background = "#102030"
	h, err := NewHost(Options{Config: cfg})
	require.NoError(t, err)
	return h
}

func frame(at time.Duration) Input {
	return Input{
		Now:     time.Unix(0, 0).Add(at),
		Width:   1280,
		Height:  720,
		Scale:   2,
		CursorX: -1,
		CursorY: -1,
	}
}

func TestNewHost(t *testing.T) {
	h := newTestHost(t)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, h.Background())
	assert.Equal(t, 60, h.TPS())
	assert.Len(t, h.Layers(), 2)

	cfg := config.Default()
	cfg.UI.Background = "nope"
	_, err := NewHost(Options{Config: cfg})
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Field.Tier = "ultra"
	_, err = NewHost(Options{Config: cfg})
	assert.ErrorIs(t, err, quality.ErrUnknownTier)
}

func TestStep_FirstFrameInitializesAtDeviceScale(t *testing.T) {
	h := newTestHost(t)
	require.NoError(t, h.Step(frame(0)))

	sim := h.Simulation()
	assert.Equal(t, 1280.0, sim.Viewport().Width)
	assert.Equal(t, quality.TierMedium, sim.Config().Tier)
	// 1280*720/15000 = 61.44, clamped to 90.
	assert.Len(t, sim.Particles(), 90)
	assert.EqualValues(t, 1, sim.Stats().Executed)

	for _, layer := range h.Layers() {
		w, hh := layer.Size()
		assert.Equal(t, 2560, w)
		assert.Equal(t, 1440, hh)
	}
}

func TestStep_ResizeReinitializes(t *testing.T) {
	h := newTestHost(t)
	require.NoError(t, h.Step(frame(0)))
	inits := h.Simulation().Stats().Inits

	require.NoError(t, h.Step(frame(time.Second)))
	assert.Equal(t, inits, h.Simulation().Stats().Inits)

	in := frame(2 * time.Second)
	in.Width = 1920
	in.Height = 1080
	require.NoError(t, h.Step(in))
	assert.Equal(t, inits+1, h.Simulation().Stats().Inits)
	assert.Len(t, h.Simulation().Particles(), 138)
}

func TestStep_PointerInsideAndOutside(t *testing.T) {
	h := newTestHost(t)

	in := frame(0)
	in.CursorX, in.CursorY = 100, 200
	require.NoError(t, h.Step(in))
	ptr := h.Simulation().Pointer()
	assert.True(t, ptr.Active)
	assert.Equal(t, 100.0, ptr.X)
	assert.Equal(t, 200.0, ptr.Y)

	in = frame(time.Second)
	in.CursorX, in.CursorY = 1280, 10
	require.NoError(t, h.Step(in))
	ptr = h.Simulation().Pointer()
	assert.False(t, ptr.Active)
	assert.Equal(t, 100.0, ptr.X)
}

func TestStep_MinimizedHides(t *testing.T) {
	h := newTestHost(t)

	in := frame(0)
	in.Minimized = true
	require.NoError(t, h.Step(in))
	assert.Equal(t, field.StatePaused, h.Simulation().State())
	assert.Zero(t, h.Simulation().Stats().Executed)

	require.NoError(t, h.Step(frame(time.Second)))
	assert.Equal(t, field.StateRunning, h.Simulation().State())
	assert.EqualValues(t, 1, h.Simulation().Stats().Executed)
}

func TestStep_ClickBurstsInsideOnly(t *testing.T) {
	h := newTestHost(t)

	in := frame(0)
	in.Click = true
	require.NoError(t, h.Step(in))
	assert.False(t, h.Confetti().Active())

	in = frame(time.Second)
	in.CursorX, in.CursorY = 640, 360
	in.Click = true
	require.NoError(t, h.Step(in))
	assert.True(t, h.Confetti().Active())
}

func TestStep_ResizeKeepsConfetti(t *testing.T) {
	h := newTestHost(t)
	in := frame(0)
	in.CursorX, in.CursorY = 640, 360
	in.Click = true
	require.NoError(t, h.Step(in))
	require.Equal(t, 1, h.Confetti().Bursts())

	in = frame(time.Second)
	in.Width, in.Height = 800, 600
	require.NoError(t, h.Step(in))
	assert.Equal(t, 800.0, h.Simulation().Viewport().Width)
	assert.Equal(t, 1, h.Confetti().Bursts())
}

func TestStep_EscapeTerminates(t *testing.T) {
	h := newTestHost(t)
	require.NoError(t, h.Step(frame(0)))

	in := frame(time.Second)
	in.Escape = true
	assert.ErrorIs(t, h.Step(in), ErrTerminated)
	assert.True(t, h.Disposed())
	assert.Equal(t, field.StateDisposed, h.Simulation().State())

	assert.ErrorIs(t, h.Step(frame(2*time.Second)), ErrTerminated)
	h.Dispose()
}

func TestLayers_ConfettiDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Field.Confetti = false
	h, err := NewHost(Options{Config: cfg})
	require.NoError(t, err)
	assert.Len(t, h.Layers(), 1)

	in := frame(0)
	in.CursorX, in.CursorY = 5, 5
	in.Click = true
	require.NoError(t, h.Step(in))
	assert.False(t, h.Confetti().Active())
}
