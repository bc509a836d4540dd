package terminal

import "time"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*Model)

// WithTickInterval sets how often the controller is ticked.
//
// Parameters:
//   - interval: the tick interval; non-positive values are ignored
//
// Returns:
//   - ModelBuilderOption: a function that applies the interval option to a model
func WithTickInterval(interval time.Duration) ModelBuilderOption {
	return func(m *Model) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithWheelStep sets the scroll distance one wheel notch feeds the controller's smoother.
//
// Parameters:
//   - step: the wheel delta per notch
//
// Returns:
//   - ModelBuilderOption: a function that applies the wheel option to a model
func WithWheelStep(step float64) ModelBuilderOption {
	return func(m *Model) {
		m.wheelStep = step
	}
}

// WithScrollStep sets the progress one wheel notch adds when the controller has no smoother.
//
// Parameters:
//   - step: the progress per notch
//
// Returns:
//   - ModelBuilderOption: a function that applies the scroll option to a model
func WithScrollStep(step float64) ModelBuilderOption {
	return func(m *Model) {
		m.scrollStep = step
	}
}

// WithCellPixels sets the assumed pixel width of one terminal column, used to derive the
// viewport width the featured group scale is computed from.
//
// Parameters:
//   - px: pixels per column; non-positive values are ignored
//
// Returns:
//   - ModelBuilderOption: a function that applies the option to a model
func WithCellPixels(px int) ModelBuilderOption {
	return func(m *Model) {
		if px > 0 {
			m.cellPixels = px
		}
	}
}
