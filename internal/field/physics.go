// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package field

import (
	"math"

	"github.com/jeranaias/constellation/internal/canvas"
	"github.com/jeranaias/constellation/internal/particle"
)

const (
	// SpringK pulls a particle back towards its home position.
	SpringK = 0.023
	// RepulseStrength is the peak pointer push at zero distance.
	RepulseStrength = 1.4
	// Damping scales velocity after forces are applied.
	Damping = 0.89
	// MaxLinkAlpha is the link alpha at zero distance.
	MaxLinkAlpha = 0.22
	// LinkWidth is the link stroke width in logical pixels.
	LinkWidth = 1.0
)

var (
	ParticleColor = canvas.RGBA(137, 214, 255, 0.85)
	LinkColor     = canvas.RGBA(118, 189, 255, MaxLinkAlpha)

	// BackdropStops run diagonally from the top-left corner.
	BackdropStops = []canvas.Stop{
		{Offset: 0, Color: canvas.RGBA(4, 16, 42, 0.66)},
		{Offset: 0.55, Color: canvas.RGBA(2, 8, 24, 0.72)},
		{Offset: 1, Color: canvas.RGBA(1, 4, 14, 0.86)},
	}
)

// Pointer is the last known pointer position.
type Pointer struct {
	X, Y   float64
	Active bool
}

// inactivePointer matches the position used before any pointer event.
var inactivePointer = Pointer{X: -1000, Y: -1000}

// Repulsion returns the push on a particle at (x, y). Its magnitude is
// ((radius-d)/radius)*RepulseStrength along the pointer-to-particle
// direction. A particle exactly under the pointer has no direction and
// gets no push.
func Repulsion(x, y float64, ptr Pointer, radius float64) (float64, float64) {
	if !ptr.Active || radius <= 0 {
		return 0, 0
	}
	dx := x - ptr.X
	dy := y - ptr.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		d = 1
	}
	if d >= radius {
		return 0, 0
	}
	power := ((radius - d) / radius) * RepulseStrength
	return dx / d * power, dy / d * power
}

// Integrate advances one particle by one tick.
func Integrate(p *particle.Particle, ptr Pointer, repulseRadius float64) {
	ax := (p.HomeX - p.X) * SpringK
	ay := (p.HomeY - p.Y) * SpringK

	rx, ry := Repulsion(p.X, p.Y, ptr, repulseRadius)
	ax += rx
	ay += ry

	p.VX = (p.VX + ax) * Damping
	p.VY = (p.VY + ay) * Damping
	p.X += p.VX
	p.Y += p.VY
}

// LinkAlpha fades a link linearly from MaxLinkAlpha at distance 0 to 0 at
// the link distance. Longer links return 0.
func LinkAlpha(d, linkDistance float64) float64 {
	if linkDistance <= 0 || d >= linkDistance {
		return 0
	}
	return (1 - d/linkDistance) * MaxLinkAlpha
}
