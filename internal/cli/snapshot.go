// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// snapshot.go - Headless render of the field to a PNG.

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/util"
)

// Snapshot defaults.
const (
	defaultSnapshotPath   = "constellation.png"
	defaultSnapshotSize   = "1280x720"
	defaultSnapshotFrames = 60
	maxSnapshotFrames     = 100000
)

// snapshotOptions describe one headless render.
type snapshotOptions struct {
	Viewport field.Viewport
	Frames   int
	Tier     *quality.Tier
	Seed     uint64
	Caps     detect.Capabilities

	// Pointer holds the pointer at a logical position when HasPointer.
	HasPointer         bool
	PointerX, PointerY float64
}

// renderSnapshot runs opts.Frames executed ticks on a synthetic clock and
// returns the raster and the simulation that drew it.
func renderSnapshot(opts snapshotOptions) (*canvas.Raster, *field.Simulation, error) {
	raster := canvas.NewRaster(1, 1, canvas.RasterOptions{})
	sim, err := field.New(raster, field.Options{
		Signals: func() quality.Signals { return opts.Caps.Signals(0) },
		Tier:    opts.Tier,
		Seed:    opts.Seed,
	})
	if err != nil {
		return nil, nil, err
	}

	sim.Initialize(opts.Viewport)
	if opts.HasPointer {
		sim.PointerMove(opts.PointerX, opts.PointerY)
	}

	interval := sim.Config().FrameInterval()
	now := time.Unix(0, 0)
	for sim.Stats().Executed < uint64(opts.Frames) {
		sim.Frame(now)
		now = now.Add(interval)
	}
	return raster, sim, nil
}

// HandleSnapshot handles the "snapshot" command.
func HandleSnapshot(args Args) error {
	cfg, cleanup, err := prepare(CmdSnapshot, args)
	if err != nil {
		return err
	}
	defer cleanup()

	p := NewArgParser(args.Raw, "transparent")
	opts, err := parseSnapshotOptions(p, cfg)
	if err != nil {
		return err
	}
	opts.Caps = probe(context.Background())
	opts.Caps.ReducedMotion = opts.Caps.ReducedMotion || cfg.Field.ReducedMotion

	raster, sim, err := renderSnapshot(opts)
	if err != nil {
		return NewCommandError("snapshot", "render", err)
	}
	defer sim.Dispose()

	out := p.FlagOrDefault("out", defaultSnapshotPath)
	transparent := p.BoolFlag("transparent")
	bg, _ := colorful.Hex(cfg.UI.Background)
	err = util.AtomicWriteWith(out, 0644, func(w io.Writer) error {
		if transparent {
			return raster.EncodePNG(w)
		}
		return raster.EncodePNGOver(w, bg.Clamped())
	})
	if err != nil {
		return NewCommandError("snapshot", "write", err)
	}

	w, h := raster.Size()
	stats := sim.Stats()
	fmt.Fprintf(stdout, "%s Wrote %s (%dx%d, tier %s, %d particles, %d links)\n",
		RenderStatus("ok"), out, w, h, stats.Tier, stats.Particles, stats.Links)
	return nil
}

func parseSnapshotOptions(p *ArgParser, cfg *config.Config) (snapshotOptions, error) {
	var opts snapshotOptions

	width, height, err := ParseSize(p.FlagOrDefault("size", defaultSnapshotSize))
	if err != nil {
		return opts, err
	}
	scale, err := p.FlagFloat("scale", 1)
	if err != nil {
		return opts, err
	}
	if scale <= 0 || scale > 8 {
		return opts, NewValidationError("scale", p.Flag("scale"), "must be in (0, 8]")
	}
	opts.Viewport = field.NewViewport(width, height, scale)

	opts.Frames, err = p.FlagInt("frames", defaultSnapshotFrames)
	if err != nil {
		return opts, err
	}
	if opts.Frames < 1 || opts.Frames > maxSnapshotFrames {
		return opts, NewValidationError("frames", p.Flag("frames"), fmt.Sprintf("must be between 1 and %d", maxSnapshotFrames))
	}

	if pt := p.Flag("pointer"); pt != "" {
		opts.PointerX, opts.PointerY, err = ParsePoint(pt)
		if err != nil {
			return opts, err
		}
		opts.HasPointer = true
	}

	opts.Tier, err = cfg.TierOverride()
	if err != nil {
		return opts, NewValidationError("tier", cfg.Field.Tier, err.Error())
	}
	opts.Seed = uint64(cfg.Field.Seed)
	return opts, nil
}
