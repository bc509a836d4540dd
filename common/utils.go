package common

import "math"

// Number is the set of numeric types accepted by the clamp helpers.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFinite clamps v to [lo, hi] and maps NaN to fallback.
// Infinities clamp to the nearest bound.
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//   - fallback: the value returned for NaN
//
// Returns:
//   - float64: the sanitized value
func ClampFinite(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return Clamp(v, lo, hi)
}
