// Package viewport tracks the size and density of the render target.
package viewport

import "math"

// MaxPixelRatio caps the device pixel ratio used for the drawing buffer.
const MaxPixelRatio = 2.0

// State is the on-screen area the scene is drawn into, in logical (window)
// pixels, plus the density of the display it currently sits on.
type State struct {
	Width            int
	Height           int
	DevicePixelRatio float64
}

// New returns a viewport of the given logical size at device pixel ratio 1.
func New(width, height int) *State {
	return &State{Width: width, Height: height, DevicePixelRatio: 1}
}

// Valid reports whether both dimensions are positive.
func (s State) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Aspect returns Width/Height. Callers must check Valid first.
func (s State) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// PixelRatio returns the effective pixel ratio: the device ratio capped at
// MaxPixelRatio. Unknown or non-positive ratios count as 1.
func (s State) PixelRatio() float64 {
	return ClampPixelRatio(s.DevicePixelRatio)
}

// ClampPixelRatio applies the MaxPixelRatio cap to a raw device pixel ratio.
func ClampPixelRatio(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		return 1
	}
	return math.Min(dpr, MaxPixelRatio)
}

// DrawingBufferSize returns the size in physical pixels of a buffer backing
// a width x height logical surface at the given pixel ratio.
func DrawingBufferSize(width, height int, ratio float64) (int32, int32) {
	w := int32(math.Floor(float64(width) * ratio))
	h := int32(math.Floor(float64(height) * ratio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
