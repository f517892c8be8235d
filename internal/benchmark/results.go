// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/storage"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result holds the measurements of one tier.
type Result struct {
	Tier      quality.Tier
	Particles int
	Frames    int

	MeanTick time.Duration
	P95Tick  time.Duration
	MinTick  time.Duration
	MaxTick  time.Duration

	MeanLinks float64
	MaxLinks  int

	// RasterWidth and RasterHeight are zero on the null surface.
	RasterWidth, RasterHeight int

	// Duration is the wall time of the whole tier run.
	Duration time.Duration
}

// Budget returns the mean tick cost as a share of the tier's frame interval.
func (r *Result) Budget() float64 {
	return Budget(r.MeanTick, r.Tier)
}

// Suite is the outcome of one Runner.Run.
type Suite struct {
	StartedAt    time.Time
	Duration     time.Duration
	Scenario     string
	Surface      string
	Viewport     field.Viewport
	Frames       int
	Seed         uint64
	Capabilities detect.Capabilities
	Results      []Result
}

// Fastest returns the result with the lowest mean tick cost.
func (s *Suite) Fastest() (*Result, bool) {
	if len(s.Results) == 0 {
		return nil, false
	}
	best := &s.Results[0]
	for i := range s.Results[1:] {
		if r := &s.Results[i+1]; r.MeanTick < best.MeanTick {
			best = r
		}
	}
	return best, true
}

// Runs converts the suite to storage records sharing one batch id.
func (s *Suite) Runs(version string) []storage.Run {
	batch := uuid.NewString()
	runs := make([]storage.Run, 0, len(s.Results))
	for _, r := range s.Results {
		runs = append(runs, storage.Run{
			Batch:     batch,
			CreatedAt: s.StartedAt,
			Tier:      r.Tier.String(),
			Width:     s.Viewport.Width,
			Height:    s.Viewport.Height,
			Scale:     s.Viewport.PixelRatioX,
			Frames:    r.Frames,
			Particles: r.Particles,
			MeanTick:  r.MeanTick,
			P95Tick:   r.P95Tick,
			MaxTick:   r.MaxTick,
			MeanLinks: r.MeanLinks,
			Surface:   s.Surface,
			Cores:     s.Capabilities.Cores,
			MemoryGB:  s.Capabilities.MemoryGB,
			Version:   version,
		})
	}
	return runs
}

// =============================================================================
// TEXT REPORT
// =============================================================================

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// viewportLabel and scaleLabel bypass digit grouping.
func viewportLabel(w, h float64) string {
	return fmt.Sprintf("%.0fx%.0f", w, h)
}

func scaleLabel(scale float64) string {
	return strconv.FormatFloat(scale, 'g', -1, 64)
}

// Summary returns a short header describing the suite.
func (s *Suite) Summary() string {
	p := printer()
	return p.Sprintf(
		"Scenario: %s (%s surface)\n"+
			"Viewport: %s @ %sx\n"+
			"Frames:   %d per tier, seed %d\n"+
			"Device:   %s\n"+
			"Duration: %s",
		s.Scenario, s.Surface,
		viewportLabel(s.Viewport.Width, s.Viewport.Height), scaleLabel(s.Viewport.PixelRatioX),
		s.Frames, s.Seed,
		s.Capabilities.String(),
		FormatDuration(s.Duration),
	)
}

// Table formats the results as a fixed-width table.
func (s *Suite) Table() string {
	p := printer()
	var b strings.Builder

	b.WriteString(s.Summary())
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf("%-8s %9s %10s %10s %10s %10s %7s\n",
		"Tier", "Particles", "Mean", "P95", "Max", "Links", "Budget"))
	b.WriteString(strings.Repeat("-", 70))
	b.WriteString("\n")
	for _, r := range s.Results {
		b.WriteString(p.Sprintf("%-8s %9d %10s %10s %10s %10.1f %6.1f%%\n",
			r.Tier, r.Particles,
			FormatTick(r.MeanTick), FormatTick(r.P95Tick), FormatTick(r.MaxTick),
			r.MeanLinks, r.Budget()))
	}
	return b.String()
}

// Markdown formats the suite as a Markdown document.
func (s *Suite) Markdown() string {
	p := printer()
	var b strings.Builder

	b.WriteString("# Constellation benchmark\n\n")
	b.WriteString(p.Sprintf("- **Scenario:** %s on the %s surface\n", s.Scenario, s.Surface))
	b.WriteString(p.Sprintf("- **Viewport:** %s at %sx\n", viewportLabel(s.Viewport.Width, s.Viewport.Height), scaleLabel(s.Viewport.PixelRatioX)))
	b.WriteString(p.Sprintf("- **Frames:** %d per tier (seed %d)\n", s.Frames, s.Seed))
	b.WriteString(p.Sprintf("- **Device:** %s\n\n", s.Capabilities.String()))

	b.WriteString("| Tier | Particles | Mean | P95 | Max | Mean links | Frame budget |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, r := range s.Results {
		b.WriteString(p.Sprintf("| %s | %d | %s | %s | %s | %.1f | %.1f%% |\n",
			r.Tier, r.Particles,
			FormatTick(r.MeanTick), FormatTick(r.P95Tick), FormatTick(r.MaxTick),
			r.MeanLinks, r.Budget()))
	}

	if best, ok := s.Fastest(); ok {
		b.WriteString(p.Sprintf("\nCheapest tier per tick: **%s** (%s mean).\n", best.Tier, FormatTick(best.MeanTick)))
	}
	return b.String()
}

// RenderMarkdown renders Markdown for the terminal. It falls back to the
// raw text if the renderer cannot be built.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// =============================================================================
// HISTORY
// =============================================================================

// HistoryTable formats stored runs, newest first, as a fixed-width table.
func HistoryTable(runs []storage.Run) string {
	if len(runs) == 0 {
		return "No benchmark runs recorded.\n"
	}

	p := printer()
	var b strings.Builder
	b.WriteString(p.Sprintf("%-8s %-16s %-8s %-11s %9s %10s %10s %10s\n",
		"ID", "When", "Tier", "Viewport", "Particles", "Mean", "P95", "Links"))
	b.WriteString(strings.Repeat("=", 88))
	b.WriteString("\n")
	for _, r := range runs {
		b.WriteString(p.Sprintf("%-8s %-16s %-8s %-11s %9d %10s %10s %10.1f\n",
			r.ShortID(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Tier,
			viewportLabel(r.Width, r.Height),
			r.Particles,
			FormatTick(r.MeanTick), FormatTick(r.P95Tick),
			r.MeanLinks))
	}
	return b.String()
}

// RunDetail formats a single stored run.
func RunDetail(r *storage.Run) string {
	p := printer()
	return p.Sprintf(
		"Run:       %s\n"+
			"Batch:     %s\n"+
			"When:      %s\n"+
			"Tier:      %s\n"+
			"Viewport:  %s @ %sx (%s surface)\n"+
			"Frames:    %d\n"+
			"Particles: %d\n"+
			"Tick:      mean %s, p95 %s, max %s\n"+
			"Links:     %.1f per tick\n"+
			"Device:    %d cores, %g GB\n"+
			"Version:   %s",
		r.ID, r.Batch,
		r.CreatedAt.Local().Format(time.RFC3339),
		r.Tier,
		viewportLabel(r.Width, r.Height), scaleLabel(r.Scale), r.Surface,
		r.Frames, r.Particles,
		FormatTick(r.MeanTick), FormatTick(r.P95Tick), FormatTick(r.MaxTick),
		r.MeanLinks,
		r.Cores, r.MemoryGB,
		r.Version,
	)
}
