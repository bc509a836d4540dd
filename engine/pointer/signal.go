package pointer

import (
	"math"

	"github.com/Carmen-Shannon/onin-go/common"
)

// Signal is a normalized pointer position over the interactive surface.
// Both axes are in [-1, 1]; +Y points up. The zero value means "no pointer".
type Signal struct {
	X, Y float32
}

// NewSignal builds a Signal, clamping both axes into [-1, 1] and mapping NaN to 0.
//
// Parameters:
//   - x: horizontal position, -1 at the left edge
//   - y: vertical position, -1 at the bottom edge
//
// Returns:
//   - Signal: the sanitized signal
func NewSignal(x, y float32) Signal {
	return Signal{
		X: float32(common.ClampFinite(float64(x), -1, 1, 0)),
		Y: float32(common.ClampFinite(float64(y), -1, 1, 0)),
	}
}

// FromClient converts a pointer position in surface pixels into a Signal.
// The surface origin is its top-left corner, so the Y axis is flipped.
// Degenerate surface sizes produce the zero Signal.
//
// Parameters:
//   - clientX, clientY: pointer position in pixels
//   - width, height: surface size in pixels
//
// Returns:
//   - Signal: the normalized, clamped signal
func FromClient(clientX, clientY, width, height float32) Signal {
	if !(width > 0) || !(height > 0) {
		return Signal{}
	}
	return NewSignal(clientX/width*2-1, -(clientY/height)*2+1)
}

// Distance returns the distance of the signal from the surface centre.
func (s Signal) Distance() float32 {
	return float32(math.Sqrt(float64(s.X*s.X + s.Y*s.Y)))
}
