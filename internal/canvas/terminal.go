// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// HalfBlock is the glyph used for one terminal cell: its foreground paints
// the upper raster row and its background the lower one.
const HalfBlock = "▀"

// Encoder turns stacked raster layers into terminal text, two raster rows
// per terminal line.
type Encoder struct {
	profile    termenv.Profile
	background colorful.Color
}

// NewEncoder creates an encoder that composites layers over a background
// given as a hex colour such as "#000000".
func NewEncoder(profile termenv.Profile, background string) (*Encoder, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("parse background %q: %w", background, err)
	}
	return &Encoder{profile: profile, background: bg}, nil
}

// Profile returns the colour profile in use.
func (e *Encoder) Profile() termenv.Profile {
	return e.profile
}

// Composite returns the colour at (x, y) after blending every layer, in
// order, over the background.
func (e *Encoder) Composite(x, y int, layers ...image.Image) colorful.Color {
	out := e.background
	pt := image.Pt(x, y)
	for _, layer := range layers {
		if layer == nil || !pt.In(layer.Bounds()) {
			continue
		}
		px := color.NRGBAModel.Convert(layer.At(x, y)).(color.NRGBA)
		if px.A == 0 {
			continue
		}
		src := colorful.Color{
			R: float64(px.R) / 255,
			G: float64(px.G) / 255,
			B: float64(px.B) / 255,
		}
		out = out.BlendRgb(src, float64(px.A)/255)
	}
	return out
}

// Encode renders the layers. The first layer decides the size; an odd
// final raster row is painted against the background.
func (e *Encoder) Encode(layers ...image.Image) string {
	if len(layers) == 0 || layers[0] == nil {
		return ""
	}
	b := layers[0].Bounds()
	lines := (b.Dy() + 1) / 2

	var sb strings.Builder
	for line := 0; line < lines; line++ {
		if line > 0 {
			sb.WriteByte('\n')
		}
		y := b.Min.Y + line*2

		run := 0
		var runTop, runBottom string
		flush := func() {
			if run == 0 {
				return
			}
			glyphs := strings.Repeat(HalfBlock, run)
			sb.WriteString(e.profile.String(glyphs).
				Foreground(e.profile.Color(runTop)).
				Background(e.profile.Color(runBottom)).
				String())
			run = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			top := e.Composite(x, y, layers...).Clamped().Hex()
			bottom := e.background.Hex()
			if y+1 < b.Max.Y {
				bottom = e.Composite(x, y+1, layers...).Clamped().Hex()
			}
			if run > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run++
		}
		flush()
	}
	return sb.String()
}
