package motion

import "math"

// Easing maps normalized time t in [0, 1] to normalized progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return clampUnit(t)
}

// EaseOut is the standard CSS ease-out curve, cubic-bezier(0, 0, 0.58, 1).
var EaseOut = CubicBezier(0, 0, 0.58, 1)

// EaseInOut is the standard CSS ease-in-out curve, cubic-bezier(0.42, 0, 0.58, 1).
var EaseInOut = CubicBezier(0.42, 0, 0.58, 1)

// ExpoOut is the smooth-scroll easing min(1, 1.001 - 2^(-10t)).
func ExpoOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// CubicBezier builds an Easing from the CSS cubic-bezier control points (x1, y1) and (x2, y2).
// x1 and x2 are clamped into [0, 1] so the curve stays a function of time.
//
// Parameters:
//   - x1, y1: the first control point
//   - x2, y2: the second control point
//
// Returns:
//   - Easing: the easing function
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clampUnit(x1)
	x2 = clampUnit(x2)

	// Polynomial coefficients for B(s) = ((a*s + b)*s + c)*s.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			err := sampleX(s) - x
			if math.Abs(err) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= err / d
		}

		// Newton stalled on a flat section; fall back to bisection.
		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 32; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		t = clampUnit(t)
		if t == 0 || t == 1 {
			return t
		}
		return sampleY(solve(t))
	}
}

func clampUnit(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
