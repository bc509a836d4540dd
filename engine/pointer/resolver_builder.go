package pointer

import "github.com/Carmen-Shannon/onin-go/common"

// ResolverBuilderOption is a functional option for configuring a Resolver via NewResolver.
type ResolverBuilderOption func(*resolver)

// WithRestingPose is an option builder that sets the pose used while the pointer is inactive.
//
// Parameters:
//   - p: the resting pose
//
// Returns:
//   - ResolverBuilderOption: a function that applies the resting pose option to a resolver
func WithRestingPose(p common.Pose) ResolverBuilderOption {
	return func(r *resolver) {
		r.resting = p
	}
}

// WithEngagedPose is an option builder that sets the pose used while the pointer is active.
//
// Parameters:
//   - p: the engaged pose
//
// Returns:
//   - ResolverBuilderOption: a function that applies the engaged pose option to a resolver
func WithEngagedPose(p common.Pose) ResolverBuilderOption {
	return func(r *resolver) {
		r.engaged = p
	}
}

// WithThreshold is an option builder that sets the activity threshold distance.
// Negative values are ignored.
//
// Parameters:
//   - threshold: the distance from centre above which the pointer is active
//
// Returns:
//   - ResolverBuilderOption: a function that applies the threshold option to a resolver
func WithThreshold(threshold float32) ResolverBuilderOption {
	return func(r *resolver) {
		if threshold >= 0 {
			r.threshold = threshold
		}
	}
}

// WithParallax is an option builder that sets the pointer-to-position offset factor.
//
// Parameters:
//   - parallax: the offset per unit of pointer deflection
//
// Returns:
//   - ResolverBuilderOption: a function that applies the parallax option to a resolver
func WithParallax(parallax float32) ResolverBuilderOption {
	return func(r *resolver) {
		r.parallax = parallax
	}
}

// WithRotationRange is an option builder that sets the rotation at full pointer deflection.
//
// Parameters:
//   - radians: the rotation in radians when a signal axis is ±1
//
// Returns:
//   - ResolverBuilderOption: a function that applies the rotation range option to a resolver
func WithRotationRange(radians float32) ResolverBuilderOption {
	return func(r *resolver) {
		r.rotationRange = radians
	}
}
