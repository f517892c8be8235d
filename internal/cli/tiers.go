// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tiers.go - The tiers command.

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/quality"
)

// tierReport is what the tiers command shows.
type tierReport struct {
	Caps        detect.Capabilities
	Cols, Rows  int
	Width       float64
	Height      float64
	Selected    quality.Tier
	Override    *quality.Tier
	Effective   quality.Tier
	Particles   int
	FromReduced bool
}

// buildTierReport decides the tier a terminal of cols×rows cells would get.
func buildTierReport(cfg *config.Config, caps detect.Capabilities, cols, rows int) (tierReport, error) {
	r := tierReport{
		Caps:   caps,
		Cols:   cols,
		Rows:   rows,
		Width:  float64(cols * cfg.Field.CellWidthPx),
		Height: float64(rows * cfg.Field.CellHeightPx),
	}

	sig := caps.Signals(r.Width * r.Height)
	sig.ReducedMotion = sig.ReducedMotion || cfg.Field.ReducedMotion
	r.Selected = quality.Select(sig)
	r.FromReduced = sig.ReducedMotion

	override, err := cfg.TierOverride()
	if err != nil {
		return r, NewValidationError("tier", cfg.Field.Tier, err.Error())
	}
	r.Override = override

	r.Effective = r.Selected
	if override != nil && !sig.ReducedMotion {
		r.Effective = *override
	}
	r.Particles = quality.ConfigFor(r.Effective).ParticleCount(r.Width, r.Height)
	return r, nil
}

// HandleTiers handles the "tiers" command.
func HandleTiers(args Args) error {
	cfg, cleanup, err := prepare(CmdTiers, args)
	if err != nil {
		return err
	}
	defer cleanup()

	cols, rows := GetTerminalSize()
	report, err := buildTierReport(cfg, probe(context.Background()), cols, rows)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("tiers", newTiersData(report)).Print()
	}
	printTierReport(stdout, report)
	return nil
}

func printTierReport(w io.Writer, r tierReport) {
	fmt.Fprintln(w, TitleStyle.Render("Quality tiers"))
	fmt.Fprintf(w, "%-8s %7s %4s %4s %5s %7s %4s\n", "Tier", "Divisor", "Min", "Max", "Link", "Repulse", "FPS")
	fmt.Fprintln(w, RenderSeparator(45))
	for _, t := range quality.Tiers {
		c := quality.ConfigFor(t)
		line := fmt.Sprintf("%-8s %7.0f %4d %4d %5.0f %7.0f %4d",
			t, c.ParticleDivisor, c.MinParticles, c.MaxParticles, c.LinkDistance, c.RepulseRadius, c.FPS)
		if t == r.Effective {
			line = HighlightStyle.Render(line + "  <")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, SectionStyle.Render("This machine"))
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Device:"), ValueStyle.Render(r.Caps.String()))
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Terminal:"),
		ValueStyle.Render(fmt.Sprintf("%dx%d cells = %.0fx%.0f px", r.Cols, r.Rows, r.Width, r.Height)))
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Selected:"), ValueStyle.Render(r.Selected.String()))

	switch {
	case r.Override != nil && r.FromReduced:
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Override:"),
			WarningStyle.Render(fmt.Sprintf("%s ignored, reduced motion wins", r.Override)))
	case r.Override != nil:
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Override:"), ValueStyle.Render(r.Override.String()))
	}
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Particles:"), ValueStyle.Render(fmt.Sprintf("%d", r.Particles)))
}
