// Package motion holds the pure time-domain primitives shared by the interactive layer:
// exponential smoothing, piecewise keyframe maps, the damped spring filter, and easing curves.
// Nothing in this package touches a render surface.
package motion

import (
	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Smooth moves current toward target by the fraction factor of the remaining distance.
// Factors <= 0 leave current unchanged and factors >= 1 snap to target, so repeated calls
// with a fixed target leave (1-factor)^n of the initial error after n calls.
//
// Parameters:
//   - current: the current value
//   - target: the value being approached
//   - factor: the fraction of the remaining distance closed per call, in (0, 1]
//
// Returns:
//   - float32: the updated value
func Smooth(current, target, factor float32) float32 {
	if !(factor > 0) {
		return current
	}
	if factor >= 1 {
		return target
	}
	return current + (target-current)*factor
}

// SmoothVec2 applies Smooth independently to each component.
//
// Parameters:
//   - current: the current vector
//   - target: the target vector
//   - factor: the per-call smoothing factor
//
// Returns:
//   - mgl32.Vec2: the updated vector
func SmoothVec2(current, target mgl32.Vec2, factor float32) mgl32.Vec2 {
	return mgl32.Vec2{
		Smooth(current[0], target[0], factor),
		Smooth(current[1], target[1], factor),
	}
}

// SmoothVec3 applies Smooth independently to each component.
//
// Parameters:
//   - current: the current vector
//   - target: the target vector
//   - factor: the per-call smoothing factor
//
// Returns:
//   - mgl32.Vec3: the updated vector
func SmoothVec3(current, target mgl32.Vec3, factor float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Smooth(current[0], target[0], factor),
		Smooth(current[1], target[1], factor),
		Smooth(current[2], target[2], factor),
	}
}

// SmoothTransform smooths every rotation, position and scale channel of current toward target.
//
// Parameters:
//   - current: the live transform
//   - target: the target transform
//   - factor: the per-call smoothing factor
//
// Returns:
//   - common.Transform: the next live transform
func SmoothTransform(current, target common.Transform, factor float32) common.Transform {
	return common.Transform{
		Rotation: SmoothVec2(current.Rotation, target.Rotation, factor),
		Position: SmoothVec3(current.Position, target.Position, factor),
		Scale:    SmoothVec3(current.Scale, target.Scale, factor),
	}
}
