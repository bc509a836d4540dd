package motion

import (
	"math"

	"github.com/pkg/errors"
)

// Keyframes is a piecewise-linear mapping from an input domain to an output range.
// Inputs outside the first/last knot are clamped to the end values.
type Keyframes struct {
	inputs  []float64
	outputs []float64
}

// NewKeyframes builds a Keyframes map from matching input and output knots.
// Inputs must be finite and strictly increasing.
//
// Parameters:
//   - inputs: the knot positions, strictly increasing
//   - outputs: the value at each knot
//
// Returns:
//   - Keyframes: the mapping
//   - error: error if the knots are empty, mismatched or not increasing
func NewKeyframes(inputs, outputs []float64) (Keyframes, error) {
	if len(inputs) == 0 {
		return Keyframes{}, errors.New("keyframes: no knots")
	}
	if len(inputs) != len(outputs) {
		return Keyframes{}, errors.Errorf("keyframes: %d inputs but %d outputs", len(inputs), len(outputs))
	}
	for i, in := range inputs {
		if math.IsNaN(in) || math.IsInf(in, 0) {
			return Keyframes{}, errors.Errorf("keyframes: input %d is not finite", i)
		}
		if i > 0 && in <= inputs[i-1] {
			return Keyframes{}, errors.Errorf("keyframes: input %d (%v) does not increase past %v", i, in, inputs[i-1])
		}
	}

	k := Keyframes{
		inputs:  make([]float64, len(inputs)),
		outputs: make([]float64, len(outputs)),
	}
	copy(k.inputs, inputs)
	copy(k.outputs, outputs)
	return k, nil
}

// MustKeyframes is NewKeyframes for package-level literals; it panics on invalid knots.
func MustKeyframes(inputs, outputs []float64) Keyframes {
	k, err := NewKeyframes(inputs, outputs)
	if err != nil {
		panic(err)
	}
	return k
}

// Map evaluates the mapping at x with linear interpolation between adjacent knots.
// NaN maps to the first output.
//
// Parameters:
//   - x: the input value
//
// Returns:
//   - float64: the interpolated output
func (k Keyframes) Map(x float64) float64 {
	n := len(k.inputs)
	if n == 0 {
		return 0
	}
	if math.IsNaN(x) || x <= k.inputs[0] {
		return k.outputs[0]
	}
	if x >= k.inputs[n-1] {
		return k.outputs[n-1]
	}

	for i := 1; i < n; i++ {
		if x > k.inputs[i] {
			continue
		}
		x0, x1 := k.inputs[i-1], k.inputs[i]
		y0, y1 := k.outputs[i-1], k.outputs[i]
		if x == x1 {
			return y1
		}
		t := (x - x0) / (x1 - x0)
		return y0 + (y1-y0)*t
	}
	return k.outputs[n-1]
}

// Len returns the number of knots.
func (k Keyframes) Len() int {
	return len(k.inputs)
}

// Knot returns the input and output of knot i.
func (k Keyframes) Knot(i int) (input, output float64) {
	return k.inputs[i], k.outputs[i]
}
