// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package confetti draws short-lived celebratory bursts on an overlay layer.
package confetti

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/time/rate"

	"github.com/jeranaias/constellation/internal/canvas"
)

const (
	// PiecesPerBurst is the number of pieces spawned by one burst.
	PiecesPerBurst = 70

	minSpeed   = 3.0
	speedRange = 6.0
	lift       = 1.2
	minSize    = 2.0
	sizeRange  = 4.0
	minTTL     = 55.0
	ttlRange   = 45.0
	drag       = 0.985
	gravity    = 0.16
)

// Palette is the set of piece colours.
var Palette = []string{"#58d7ff", "#6f8bff", "#6affc6", "#ff6abf", "#ffd36e"}

var paletteColors = func() []canvas.Color {
	out := make([]canvas.Color, len(Palette))
	for i, hex := range Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("confetti: bad palette colour " + hex)
		}
		r, g, b := c.RGB255()
		out[i] = canvas.RGBA(r, g, b, 1)
	}
	return out
}()

// Piece is one confetti square. Life and TTL are counted in frames.
type Piece struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   int
	TTL    float64
	Color  canvas.Color
}

// Alpha fades the piece out over its lifetime.
func (p *Piece) Alpha() float64 {
	return math.Max(0, 1-float64(p.Life)/p.TTL)
}

type burst struct {
	pieces []Piece
}

// System owns every live burst.
type System struct {
	rng     *rand.Rand
	bursts  []burst
	limiter *rate.Limiter
}

// New creates an empty system. Zero seeds from the clock. Bursts are
// limited to 8 per second with a burst allowance of 4.
func New(seed uint64) *System {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &System{
		rng:     rand.New(rand.NewPCG(seed, ^seed)),
		limiter: rate.NewLimiter(rate.Limit(8), 4),
	}
}

// Burst spawns a burst at logical (x, y) if the rate limit allows it at now.
func (s *System) Burst(now time.Time, x, y float64) bool {
	if !s.limiter.AllowN(now, 1) {
		return false
	}

	pieces := make([]Piece, PiecesPerBurst)
	for i := range pieces {
		angle := s.rng.Float64() * math.Pi * 2
		speed := s.rng.Float64()*speedRange + minSpeed
		pieces[i] = Piece{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - lift,
			Size:  s.rng.Float64()*sizeRange + minSize,
			TTL:   s.rng.Float64()*ttlRange + minTTL,
			Color: paletteColors[s.rng.IntN(len(paletteColors))],
		}
	}
	s.bursts = append(s.bursts, burst{pieces: pieces})
	return true
}

// Active reports whether any piece is alive.
func (s *System) Active() bool {
	return len(s.bursts) > 0
}

// Pieces returns the number of live pieces.
func (s *System) Pieces() int {
	n := 0
	for _, b := range s.bursts {
		n += len(b.pieces)
	}
	return n
}

// Bursts returns the number of live bursts.
func (s *System) Bursts() int {
	return len(s.bursts)
}

// Step advances every piece by one frame and redraws the layer. Expired
// pieces are dropped before the update and empty bursts after it.
func (s *System) Step(surface canvas.Surface, w, h float64) {
	surface.Clear(w, h)

	live := s.bursts[:0]
	for _, b := range s.bursts {
		kept := b.pieces[:0]
		for _, p := range b.pieces {
			if float64(p.Life) < p.TTL {
				kept = append(kept, p)
			}
		}
		b.pieces = kept

		for i := range b.pieces {
			p := &b.pieces[i]
			p.Life++
			p.VX *= drag
			p.VY += gravity
			p.X += p.VX
			p.Y += p.VY
			surface.FillRect(p.X, p.Y, p.Size, p.Size, p.Color.WithAlpha(p.Alpha()))
		}

		if len(b.pieces) > 0 {
			live = append(live, b)
		}
	}
	clear(s.bursts[len(live):])
	s.bursts = live
}

// Reset drops every burst.
func (s *System) Reset() {
	s.bursts = nil
}
