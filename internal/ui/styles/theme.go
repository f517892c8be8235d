// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by ui.color_mode.
const (
	ColorModeAuto      = "auto"
	ColorModeTrueColor = "truecolor"
	ColorModeANSI256   = "ansi256"
	ColorModeANSI      = "ansi"
	ColorModeASCII     = "ascii"
)

// ColorModes lists every accepted color mode.
var ColorModes = []string{ColorModeAuto, ColorModeTrueColor, ColorModeANSI256, ColorModeANSI, ColorModeASCII}

// ProfileFor maps a color mode to a termenv profile. "auto" (and anything
// unrecognised) asks the terminal.
func ProfileFor(mode string) termenv.Profile {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorModeTrueColor:
		return termenv.TrueColor
	case ColorModeANSI256:
		return termenv.ANSI256
	case ColorModeANSI:
		return termenv.ANSI
	case ColorModeASCII:
		return termenv.Ascii
	default:
		return termenv.ColorProfile()
	}
}

// Theme holds the HUD styles.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// HUD bar
	HUD       lipgloss.Style
	Brand     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
	Session   lipgloss.Style

	// Tier badge
	Badge lipgloss.Style

	// State badges
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Disposed lipgloss.Style

	// Help overlay
	Help lipgloss.Style

	// Notices (config reload, errors)
	Notice      lipgloss.Style
	NoticeError lipgloss.Style
}

// NewTheme creates a theme for the given termenv profile.
func NewTheme(profile termenv.Profile) *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.HUD = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sky)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Separator = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Session = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Badge = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sky).
		Background(SkyDeep)

	t.Running = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Paused = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.Disposed = lipgloss.NewStyle().Foreground(Rose).Bold(true)

	t.Help = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Notice = lipgloss.NewStyle().Foreground(Link)
	t.NoticeError = lipgloss.NewStyle().Foreground(Rose).Bold(true)
}

// StateStyle returns the badge style for a simulation state name.
func (t *Theme) StateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return t.Running
	case "paused":
		return t.Paused
	default:
		return t.Disposed
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
