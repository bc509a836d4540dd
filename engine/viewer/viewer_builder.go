package viewer

import (
	"log"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/animator"
)

// ViewerBuilderOption is a functional option for configuring a Viewer via NewViewer.
type ViewerBuilderOption func(*viewer)

// WithSmoothing is an option builder that sets the per-tick smoothing factor.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: the fraction of the remaining distance closed per tick
//
// Returns:
//   - ViewerBuilderOption: a function that applies the smoothing option to a viewer
func WithSmoothing(factor float32) ViewerBuilderOption {
	return func(v *viewer) {
		if factor > 0 && factor <= 1 {
			v.factor = factor
		}
	}
}

// WithInitialTransform is an option builder that sets the live transform before the first tick.
//
// Parameters:
//   - t: the starting live transform
//
// Returns:
//   - ViewerBuilderOption: a function that applies the initial transform to a viewer
func WithInitialTransform(t common.Transform) ViewerBuilderOption {
	return func(v *viewer) {
		v.live = t
	}
}

// WithViewportWidth is an option builder that sets the starting viewport width.
//
// Parameters:
//   - width: the viewport width; non-positive values are ignored
//
// Returns:
//   - ViewerBuilderOption: a function that applies the viewport option to a viewer
func WithViewportWidth(width float32) ViewerBuilderOption {
	return func(v *viewer) {
		if width > 0 {
			v.groupScale = width / ViewportDivisor
		}
	}
}

// WithLoopMode is an option builder that sets the loop mode clips auto-play with once ready.
//
// Parameters:
//   - mode: the loop mode
//
// Returns:
//   - ViewerBuilderOption: a function that applies the loop mode to a viewer
func WithLoopMode(mode animator.LoopMode) ViewerBuilderOption {
	return func(v *viewer) {
		v.loopMode = mode
	}
}

// WithAutoPlay is an option builder that toggles playing every clip once the asset is ready.
//
// Parameters:
//   - enabled: whether clips start automatically
//
// Returns:
//   - ViewerBuilderOption: a function that applies the auto-play option to a viewer
func WithAutoPlay(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.autoPlay = enabled
	}
}

// WithLogger is an option builder that sets the logger for load transitions.
//
// Parameters:
//   - logger: the logger; nil is ignored
//
// Returns:
//   - ViewerBuilderOption: a function that applies the logger option to a viewer
func WithLogger(logger *log.Logger) ViewerBuilderOption {
	return func(v *viewer) {
		if logger != nil {
			v.logger = logger
		}
	}
}
