package pointer

import (
	"math"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultThreshold is the pointer distance above which the engaged pose is selected.
	DefaultThreshold float32 = 0.01

	// DefaultParallax scales the pointer coordinates into a position offset.
	DefaultParallax float32 = 0.7

	// DefaultRotationRange is the rotation in radians at full pointer deflection: (π/2)·0.5.
	DefaultRotationRange float32 = math.Pi / 2 * 0.5
)

// DefaultRestingPose is the compact pose used while the pointer is centred or absent.
func DefaultRestingPose() common.Pose {
	return common.Pose{
		Position: mgl32.Vec3{-0.05, 0, -1},
		Scale:    common.UniformScale(0.01),
	}
}

// DefaultEngagedPose is the enlarged, offset pose used while the pointer is active.
func DefaultEngagedPose() common.Pose {
	return common.Pose{
		Position: mgl32.Vec3{0, 0.3, 0.1},
		Scale:    common.UniformScale(0.015),
	}
}

// resolver is the implementation of the Resolver interface.
type resolver struct {
	resting, engaged common.Pose
	threshold        float32
	parallax         float32
	rotationRange    float32
}

// Resolver maps a pointer Signal to the featured object's target transform.
// It is a pure function of its input: nothing is remembered between calls.
type Resolver interface {
	// Resolve computes the target transform for a pointer signal.
	// Yaw follows horizontal motion and pitch is inverted so moving up tilts toward the viewer.
	// The base pose is chosen by Active and a parallax offset proportional to the signal is
	// added to its X and Y position.
	//
	// Parameters:
	//   - s: the pointer signal
	//
	// Returns:
	//   - common.Transform: the target transform
	Resolve(s Signal) common.Transform

	// Active reports whether the pointer is far enough from centre to select the engaged pose.
	// The comparison is strict: a distance equal to the threshold is not active.
	//
	// Parameters:
	//   - s: the pointer signal
	//
	// Returns:
	//   - bool: true when the engaged pose applies
	Active(s Signal) bool

	// RestingPose returns the pose used when the pointer is inactive.
	//
	// Returns:
	//   - common.Pose: the resting pose
	RestingPose() common.Pose

	// EngagedPose returns the pose used when the pointer is active.
	//
	// Returns:
	//   - common.Pose: the engaged pose
	EngagedPose() common.Pose

	// Threshold returns the activity threshold distance.
	//
	// Returns:
	//   - float32: the threshold
	Threshold() float32
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver with the reference poses and constants, then applies options.
//
// Parameters:
//   - options: functional options to override poses and constants
//
// Returns:
//   - Resolver: the configured resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolver{
		resting:       DefaultRestingPose(),
		engaged:       DefaultEngagedPose(),
		threshold:     DefaultThreshold,
		parallax:      DefaultParallax,
		rotationRange: DefaultRotationRange,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) Resolve(s Signal) common.Transform {
	s = NewSignal(s.X, s.Y)

	base := r.resting
	if r.Active(s) {
		base = r.engaged
	}

	return common.Transform{
		Rotation: mgl32.Vec2{
			-s.Y * r.rotationRange,
			s.X * r.rotationRange,
		},
		Position: mgl32.Vec3{
			base.Position[0] + s.X*r.parallax,
			base.Position[1] + s.Y*r.parallax,
			base.Position[2],
		},
		Scale: base.Scale,
	}
}

func (r *resolver) Active(s Signal) bool {
	return s.Distance() > r.threshold
}

func (r *resolver) RestingPose() common.Pose {
	return r.resting
}

func (r *resolver) EngagedPose() common.Pose {
	return r.engaged
}

func (r *resolver) Threshold() float32 {
	return r.threshold
}
