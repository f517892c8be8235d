// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package field

import "math"

// Viewport is the logical drawing area and its device pixel ratio.
//
// The ratio is kept per axis because terminal cells are not square: a cell
// of 8×16 logical pixels maps to one raster column and two raster rows.
type Viewport struct {
	Width, Height            float64
	PixelRatioX, PixelRatioY float64
}

// NewViewport builds a viewport with a single device pixel ratio.
func NewViewport(width, height, dpr float64) Viewport {
	return Viewport{Width: width, Height: height, PixelRatioX: dpr, PixelRatioY: dpr}
}

// Normalized replaces missing ratios with 1 and negative sizes with 0.
func (v Viewport) Normalized() Viewport {
	if v.PixelRatioX <= 0 {
		v.PixelRatioX = 1
	}
	if v.PixelRatioY <= 0 {
		v.PixelRatioY = 1
	}
	v.Width = math.Max(0, v.Width)
	v.Height = math.Max(0, v.Height)
	return v
}

// RasterSize returns floor(size*ratio) per axis.
func (v Viewport) RasterSize() (int, int) {
	v = v.Normalized()
	return int(math.Floor(v.Width * v.PixelRatioX)), int(math.Floor(v.Height * v.PixelRatioY))
}

// Pixels returns the logical area used for tier selection.
func (v Viewport) Pixels() float64 {
	return v.Width * v.Height
}
