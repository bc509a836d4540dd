package flipgrid

import (
	"math"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
)

// FlipOffsets are the normalized times of the three flip keyframes.
var FlipOffsets = [3]float64{0, 0.5, 1}

// FlipKeyframes returns the X-axis rotation keyframes in degrees for the n-th flip:
// a full backward turn from the previous resting angle with a 20° overshoot at the midpoint.
//
// Parameters:
//   - n: the flip count after the flip started
//
// Returns:
//   - [3]float64: the keyframe angles [-360(n-1), -360n-20, -360n]
func FlipKeyframes(n int) [3]float64 {
	return [3]float64{
		-360 * float64(n-1),
		-360*float64(n) - 20,
		-360 * float64(n),
	}
}

// IntroKeyframes are the keyframes of the optional mount spin, equal to FlipKeyframes(0).
var IntroKeyframes = FlipKeyframes(0)

// RestAngle returns the angle in degrees a cell rests at after n flips.
func RestAngle(n int) float64 {
	return -360 * float64(n)
}

// SampleKeyframes evaluates three keyframes at normalized time t, applying easing to each
// segment independently.
//
// Parameters:
//   - kf: the keyframe angles at FlipOffsets
//   - t: normalized time, clamped into [0, 1]
//   - easing: the per-segment easing curve
//
// Returns:
//   - float64: the interpolated angle
func SampleKeyframes(kf [3]float64, t float64, easing motion.Easing) float64 {
	t = common.ClampFinite(t, 0, 1, 0)
	if easing == nil {
		easing = motion.Linear
	}

	seg := 0
	if t >= FlipOffsets[1] {
		seg = 1
	}
	start, end := FlipOffsets[seg], FlipOffsets[seg+1]
	local := (t - start) / (end - start)
	return kf[seg] + (kf[seg+1]-kf[seg])*easing(local)
}

// BackVisible reports whether a card rotated by angle degrees about X shows its back face.
func BackVisible(angle float64) bool {
	return math.Cos(angle*math.Pi/180) < 0
}
