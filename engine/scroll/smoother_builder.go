package scroll

import "github.com/Carmen-Shannon/onin-go/engine/motion"

// SmootherBuilderOption is a functional option for configuring a Smoother via NewSmoother.
type SmootherBuilderOption func(*smoother)

// WithDuration is an option builder that sets how long one wheel animation lasts, in seconds.
// A non-positive duration makes wheel input jump without easing.
//
// Parameters:
//   - seconds: the animation duration
//
// Returns:
//   - SmootherBuilderOption: a function that applies the duration option to a smoother
func WithDuration(seconds float64) SmootherBuilderOption {
	return func(s *smoother) {
		s.duration = seconds
	}
}

// WithEasing is an option builder that sets the wheel animation easing curve.
//
// Parameters:
//   - easing: the easing function; nil is ignored
//
// Returns:
//   - SmootherBuilderOption: a function that applies the easing option to a smoother
func WithEasing(easing motion.Easing) SmootherBuilderOption {
	return func(s *smoother) {
		if easing != nil {
			s.easing = easing
		}
	}
}

// WithWheelMultiplier is an option builder that scales every wheel delta.
//
// Parameters:
//   - m: the multiplier
//
// Returns:
//   - SmootherBuilderOption: a function that applies the wheel multiplier option to a smoother
func WithWheelMultiplier(m float64) SmootherBuilderOption {
	return func(s *smoother) {
		s.wheelMultiplier = m
	}
}

// WithLimit is an option builder that sets the initial scrollable length.
//
// Parameters:
//   - limit: the maximum scroll position
//
// Returns:
//   - SmootherBuilderOption: a function that applies the limit option to a smoother
func WithLimit(limit float64) SmootherBuilderOption {
	return func(s *smoother) {
		if limit > 0 {
			s.limit = limit
		}
	}
}
