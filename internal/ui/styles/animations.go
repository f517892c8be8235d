// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig is a looping sequence of glyphs.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// The HUD heartbeat advances once per executed tick. LineSpinner is the
// ASCII fallback.
var (
	PulseSpinner = SpinnerConfig{Frames: []string{"·", "∙", "•", "●", "•", "∙"}, FPS: 8}
	LineSpinner  = SpinnerConfig{Frames: []string{"|", "/", "-", "\\"}, FPS: 10}
)

// Duration returns how long one frame is shown at FPS.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame for step n, wrapping around.
func (s SpinnerConfig) Frame(n uint64) string {
	if len(s.Frames) == 0 {
		return ""
	}
	return s.Frames[n%uint64(len(s.Frames))]
}

// =============================================================================
// PROGRESS BAR
// =============================================================================

// Progress bar glyphs. The partial glyphs fill one cell in thirds.
var (
	ProgressFull    = "#"
	ProgressEmpty   = "-"
	ProgressPartial = []string{".", ":", "+"}
)

// RenderProgressBar draws a bar of width cells at percent (clamped to
// 0-100). The result always has exactly width cells.
func RenderProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	filled := float64(width) * max(0, min(100, percent)) / 100
	full := int(filled)
	bar := strings.Repeat(ProgressFull, full)

	if full < width {
		if part := int((filled - float64(full)) * float64(len(ProgressPartial)+1)); part > 0 {
			bar += ProgressPartial[part-1]
			full++
		}
		bar += strings.Repeat(ProgressEmpty, width-full)
	}
	return bar
}
