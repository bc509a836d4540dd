package animator

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithSpeed is an option builder that sets the playback rate multiplier. Negative values are ignored.
//
// Parameters:
//   - speed: the rate multiplier
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the speed option to an animator
func WithSpeed(speed float32) AnimatorBuilderOption {
	return func(a *animator) {
		if speed >= 0 {
			a.speed = speed
		}
	}
}

// WithAutoPlay is an option builder that starts every clip of the asset with the given loop
// mode as soon as the Animator is created.
//
// Parameters:
//   - mode: the loop mode applied to every clip
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the auto-play option to an animator
func WithAutoPlay(mode LoopMode) AnimatorBuilderOption {
	return func(a *animator) {
		for _, name := range a.instance.Asset().ClipNames() {
			_ = a.play(name, mode)
		}
	}
}
