// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Sky - Brand color, tier badge, particle tint
var Sky = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#89D6FF"}

// SkyDeep - Darker sky for badge backgrounds
var SkyDeep = lipgloss.AdaptiveColor{Light: "#BAE6FD", Dark: "#04102A"}

// Link - Matches the colour of particle links
var Link = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#76BDFF"}

// Emerald - Running state
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Paused state, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - Disposed state, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE & TEXT COLORS
// =============================================================================

// SurfaceDim - HUD bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#020818"}

// TextPrimary - Main HUD text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Session id, separators
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// ACCESSIBILITY: Shapes and high contrast for colorblind users
// =============================================================================

// StatusIndicatorSet contains text/shape indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Active  string
	Paused  string
}

// StatusIndicators provides ASCII shape indicators alongside colors.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Active:  "[*]",
	Paused:  "[=]",
}

var (
	SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}
	ErrorHighContrast   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	InfoHighContrast    = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
)

// RenderSuccess renders a success message with the [OK] indicator.
func RenderSuccess(message string) string {
	return render(SuccessHighContrast, StatusIndicators.Success, message)
}

// RenderError renders an error message with the [X] indicator.
func RenderError(message string) string {
	return render(ErrorHighContrast, StatusIndicators.Error, message)
}

// RenderWarning renders a warning message with the [!] indicator.
func RenderWarning(message string) string {
	return render(WarningHighContrast, StatusIndicators.Warning, message)
}

// RenderInfo renders an info message with the [i] indicator.
func RenderInfo(message string) string {
	return render(InfoHighContrast, StatusIndicators.Info, message)
}

// RenderStatus renders a success or error message.
func RenderStatus(success bool, message string) string {
	if success {
		return RenderSuccess(message)
	}
	return RenderError(message)
}

func render(color lipgloss.AdaptiveColor, indicator, message string) string {
	style := lipgloss.NewStyle().
		Foreground(color).
		Bold(true)
	return style.Render(indicator + " " + message)
}
