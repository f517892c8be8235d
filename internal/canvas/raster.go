// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// RasterOptions tune how logical shapes land on a small raster.
type RasterOptions struct {
	// MinDotRadius is the smallest circle radius in device pixels.
	MinDotRadius float64
	// MinLineWidth is the smallest stroke width in device pixels.
	MinLineWidth float64
}

// Raster is a Surface backed by a fogleman/gg context.
type Raster struct {
	dc     *gg.Context
	sx, sy float64
	opts   RasterOptions
}

// NewRaster creates a raster of the given device size.
func NewRaster(width, height int, opts RasterOptions) *Raster {
	r := &Raster{sx: 1, sy: 1, opts: opts}
	r.Resize(width, height)
	return r
}

// Resize replaces the backing context.
func (r *Raster) Resize(width, height int) {
	r.dc = gg.NewContext(max(1, width), max(1, height))
}

// SetTransform sets the logical to device scale.
func (r *Raster) SetTransform(sx, sy float64) {
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	r.sx, r.sy = sx, sy
}

// Size returns the device size.
func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

// Clear resets the whole raster to transparent. The logical rectangle
// always covers the raster after a resize.
func (r *Raster) Clear(w, h float64) {
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

// FillLinearGradient paints a gradient rectangle.
func (r *Raster) FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop, w, h float64) {
	grad := gg.NewLinearGradient(x0*r.sx, y0*r.sy, x1*r.sx, y1*r.sy)
	for _, s := range stops {
		grad.AddColorStop(s.Offset, s.Color.NRGBA())
	}
	r.dc.SetFillStyle(grad)
	r.dc.DrawRectangle(0, 0, w*r.sx, h*r.sy)
	r.dc.Fill()
}

// FillCircle paints a disc. The device radius is the mean scale times r.
func (r *Raster) FillCircle(x, y, radius float64, c Color) {
	dr := math.Max(radius*(r.sx+r.sy)/2, r.opts.MinDotRadius)
	r.dc.SetColor(c.NRGBA())
	r.dc.DrawCircle(x*r.sx, y*r.sy, dr)
	r.dc.Fill()
}

// FillRect paints an axis-aligned rectangle.
func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	r.dc.SetColor(c.NRGBA())
	r.dc.DrawRectangle(x*r.sx, y*r.sy, w*r.sx, h*r.sy)
	r.dc.Fill()
}

// StrokeLine strokes a segment.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	lw := math.Max(width*(r.sx+r.sy)/2, r.opts.MinLineWidth)
	r.dc.SetColor(c.NRGBA())
	r.dc.SetLineWidth(lw)
	r.dc.DrawLine(x0*r.sx, y0*r.sy, x1*r.sx, y1*r.sy)
	r.dc.Stroke()
}

// Image returns the backing image. It is premultiplied RGBA.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// Pixels returns the premultiplied RGBA bytes, row by row.
func (r *Raster) Pixels() []byte {
	if img, ok := r.dc.Image().(*image.RGBA); ok {
		return img.Pix
	}
	b := r.dc.Image().Bounds()
	img := image.NewRGBA(b)
	draw.Draw(img, b, r.dc.Image(), b.Min, draw.Src)
	return img.Pix
}

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodePNGOver writes the raster composited over an opaque background.
func (r *Raster) EncodePNGOver(w io.Writer, bg color.Color) error {
	img := r.dc.Image()
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawImage(img, 0, 0)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
