package scroll

import (
	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
)

// PipelineBuilderOption is a functional option for configuring a Pipeline via NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithKeyframes is an option builder that sets the progress-to-offset keyframe map.
// A zero Keyframes value is ignored.
//
// Parameters:
//   - k: the keyframe map
//
// Returns:
//   - PipelineBuilderOption: a function that applies the keyframes option to a pipeline
func WithKeyframes(k motion.Keyframes) PipelineBuilderOption {
	return func(p *pipeline) {
		if k.Len() > 0 {
			p.keyframes = k
		}
	}
}

// WithSpring is an option builder that sets the spring filter configuration.
//
// Parameters:
//   - cfg: the spring configuration
//
// Returns:
//   - PipelineBuilderOption: a function that applies the spring option to a pipeline
func WithSpring(cfg motion.SpringConfig) PipelineBuilderOption {
	return func(p *pipeline) {
		p.springCfg = cfg
	}
}

// WithInitialProgress is an option builder that sets the starting scroll progress.
// The spring starts at rest on the matching raw offset.
//
// Parameters:
//   - progress: the initial progress, clamped into [0, 1]
//
// Returns:
//   - PipelineBuilderOption: a function that applies the initial progress option to a pipeline
func WithInitialProgress(progress float64) PipelineBuilderOption {
	return func(p *pipeline) {
		p.progress = common.ClampFinite(progress, 0, 1, 0)
	}
}
