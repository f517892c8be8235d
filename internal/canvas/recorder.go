// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

// Op names a recorded drawing operation.
type Op int

const (
	OpResize Op = iota
	OpTransform
	OpClear
	OpGradient
	OpCircle
	OpRect
	OpLine
)

func (o Op) String() string {
	switch o {
	case OpResize:
		return "resize"
	case OpTransform:
		return "transform"
	case OpClear:
		return "clear"
	case OpGradient:
		return "gradient"
	case OpCircle:
		return "circle"
	case OpRect:
		return "rect"
	case OpLine:
		return "line"
	default:
		return "unknown"
	}
}

// Call is one recorded operation. Unused fields are zero.
type Call struct {
	Op     Op
	X0, Y0 float64
	X1, Y1 float64
	W, H   float64
	R      float64
	Width  float64
	Color  Color
	Stops  []Stop
}

// Recorder is a Surface that records calls instead of drawing. Headless
// benchmarks use it to measure the simulation without rasterization cost.
type Recorder struct {
	Calls          []Call
	Width, Height  int
	ScaleX, ScaleY float64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{ScaleX: 1, ScaleY: 1}
}

// Reset drops recorded calls but keeps size and transform.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the calls of op in order.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = max(1, width), max(1, height)
	r.Calls = append(r.Calls, Call{Op: OpResize, W: float64(r.Width), H: float64(r.Height)})
}

func (r *Recorder) SetTransform(sx, sy float64) {
	r.ScaleX, r.ScaleY = sx, sy
	r.Calls = append(r.Calls, Call{Op: OpTransform, X0: sx, Y0: sy})
}

func (r *Recorder) Clear(w, h float64) {
	r.Calls = append(r.Calls, Call{Op: OpClear, W: w, H: h})
}

func (r *Recorder) FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop, w, h float64) {
	r.Calls = append(r.Calls, Call{
		Op: OpGradient, X0: x0, Y0: y0, X1: x1, Y1: y1, W: w, H: h,
		Stops: append([]Stop(nil), stops...),
	})
}

func (r *Recorder) FillCircle(x, y, radius float64, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpCircle, X0: x, Y0: y, R: radius, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpRect, X0: x, Y0: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

// Discard is a Surface that drops every call.
type Discard struct{}

func (Discard) Resize(int, int) {}
func (Discard) SetTransform(float64, float64) {}
func (Discard) Clear(float64, float64) {}
func (Discard) FillLinearGradient(_, _, _, _ float64, _ []Stop, _, _ float64) {}
func (Discard) FillCircle(_, _, _ float64, _ Color) {}
func (Discard) FillRect(_, _, _, _ float64, _ Color) {}
func (Discard) StrokeLine(_, _, _, _, _ float64, _ Color) {}
