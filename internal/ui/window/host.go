// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package window hosts the particle field in a desktop window.
//
// Host holds the window-independent logic and is driven by one Input per
// frame. The ebiten adapter polls the window into an Input, calls Step from
// Update and uploads the layers in Draw. Building with the nowindow tag
// leaves only Host; Run then returns ErrUnavailable.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/confetti"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
)

var (
	// ErrTerminated is returned by Step once the host has been disposed.
	ErrTerminated = errors.New("window: terminated")

	// ErrUnavailable is returned by Run in builds without a window.
	ErrUnavailable = errors.New("window: not available in this build")
)

// Options configure the window host.
type Options struct {
	Config       *config.Config
	Capabilities detect.Capabilities
}

// Input is the window state sampled once per frame.
type Input struct {
	Now time.Time

	// Width and Height are the logical window size.
	Width, Height int
	// Scale is the device scale factor.
	Scale float64

	CursorX, CursorY int

	Minimized bool
	Click     bool
	Escape    bool
}

// Host owns the simulation and its layers.
type Host struct {
	cfg  *config.Config
	caps detect.Capabilities

	sim      *field.Simulation
	confetti *confetti.System
	backdrop *canvas.Raster
	overlay  *canvas.Raster
	bg       color.RGBA

	width, height int
	scale         float64
	inside        bool
	disposed      bool
}

// NewHost creates a host. The field is initialized by the first Step.
func NewHost(opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	tier, err := cfg.TierOverride()
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	bg, err := colorful.Hex(cfg.UI.Background)
	if err != nil {
		return nil, fmt.Errorf("window: background %q: %w", cfg.UI.Background, err)
	}
	r, g, b := bg.RGB255()

	h := &Host{
		cfg:      cfg,
		caps:     opts.Capabilities,
		confetti: confetti.New(uint64(cfg.Field.Seed)),
		backdrop: canvas.NewRaster(1, 1, canvas.RasterOptions{}),
		overlay:  canvas.NewRaster(1, 1, canvas.RasterOptions{}),
		bg:       color.RGBA{R: r, G: g, B: b, A: 0xff},
	}

	h.sim, err = field.New(h.backdrop, field.Options{
		Signals:          h.signals,
		Tier:             tier,
		Seed:             uint64(cfg.Field.Seed),
		StatsLogInterval: 10 * time.Second,
	})
	if err != nil {
		log.Printf("WINDOW_NO_FIELD | err=%v", err)
	}
	return h, nil
}

func (h *Host) signals() quality.Signals {
	s := h.caps.Signals(0)
	s.ReducedMotion = s.ReducedMotion || h.cfg.Field.ReducedMotion
	return s
}

// Step runs one scheduler callback.
func (h *Host) Step(in Input) error {
	if h.disposed {
		return ErrTerminated
	}
	if in.Escape {
		h.Dispose()
		return ErrTerminated
	}

	if in.Scale <= 0 {
		in.Scale = 1
	}
	if in.Width != h.width || in.Height != h.height || in.Scale != h.scale {
		h.resize(in.Width, in.Height, in.Scale)
	}

	inside := in.CursorX >= 0 && in.CursorY >= 0 && in.CursorX < h.width && in.CursorY < h.height
	if h.sim != nil {
		h.sim.SetVisible(!in.Minimized)
		switch {
		case inside:
			h.sim.PointerMove(float64(in.CursorX), float64(in.CursorY))
		case h.inside:
			h.sim.PointerLeave()
		}
		h.sim.Frame(in.Now)
	}
	h.inside = inside

	if h.cfg.Field.Confetti {
		if in.Click && inside {
			h.confetti.Burst(in.Now, float64(in.CursorX), float64(in.CursorY))
		}
		h.confetti.Step(h.overlay, float64(h.width), float64(h.height))
	}
	return nil
}

func (h *Host) resize(width, height int, scale float64) {
	h.width, h.height, h.scale = width, height, scale
	if width <= 0 || height <= 0 {
		return
	}

	vp := field.NewViewport(float64(width), float64(height), scale)
	rw, rh := vp.RasterSize()
	if h.sim != nil {
		h.sim.Initialize(vp)
	} else {
		h.backdrop.Resize(rw, rh)
	}
	h.overlay.Resize(rw, rh)
	h.overlay.SetTransform(scale, scale)

	log.Printf("WINDOW_RESIZE | size=%dx%d scale=%.2f", width, height, scale)
}

// Dispose stops the field. It is idempotent.
func (h *Host) Dispose() {
	if h.disposed {
		return
	}
	h.disposed = true
	if h.sim != nil {
		h.sim.Dispose()
	}
	h.confetti.Reset()
}

// Layers returns the rasters to draw, bottom first.
func (h *Host) Layers() []*canvas.Raster {
	if !h.cfg.Field.Confetti {
		return []*canvas.Raster{h.backdrop}
	}
	return []*canvas.Raster{h.backdrop, h.overlay}
}

// Background is the colour under every layer.
func (h *Host) Background() color.RGBA { return h.bg }

// Scale is the device scale factor of the current layers.
func (h *Host) Scale() float64 { return h.scale }

// Simulation returns the hosted field.
func (h *Host) Simulation() *field.Simulation { return h.sim }

// Confetti returns the confetti system.
func (h *Host) Confetti() *confetti.System { return h.confetti }

// Disposed reports whether the host has terminated.
func (h *Host) Disposed() bool { return h.disposed }

// TPS is the scheduler rate.
func (h *Host) TPS() int { return h.cfg.Field.RefreshHz }
