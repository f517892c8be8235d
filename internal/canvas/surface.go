// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas defines the immediate-mode 2D surface the field draws on
// and the implementations the hosts use: a gg-backed raster, a terminal
// half-block encoder for rasters, and an in-memory recorder.
//
// Coordinates passed to a Surface are logical pixels. The surface scales
// them by the transform set with SetTransform, the way a browser canvas
// scales by its device pixel ratio.
package canvas

import (
	"image/color"
	"math"
)

// Color is a straight-alpha colour with a fractional alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGBA builds a Color.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to a non-premultiplied 8-bit colour.
func (c Color) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// Stop is one colour stop of a linear gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// Surface is the drawing target of the simulation and the confetti layer.
type Surface interface {
	// Resize sets the backing raster size in device pixels. Sizes below 1
	// are clamped to 1. Resizing discards the contents.
	Resize(width, height int)
	// SetTransform sets the logical to device scale.
	SetTransform(sx, sy float64)
	// Clear makes the logical rectangle (0, 0, w, h) transparent.
	Clear(w, h float64)
	// FillLinearGradient fills (0, 0, w, h) with a gradient running from
	// (x0, y0) to (x1, y1).
	FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop, w, h float64)
	FillCircle(x, y, r float64, c Color)
	FillRect(x, y, w, h float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}
