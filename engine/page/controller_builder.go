package page

import (
	"log"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/config"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/Carmen-Shannon/onin-go/engine/flipgrid"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
	"github.com/Carmen-Shannon/onin-go/engine/pointer"
	"github.com/Carmen-Shannon/onin-go/engine/scroll"
	"github.com/Carmen-Shannon/onin-go/engine/viewer"
)

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controller)

// WithLibrary is an option builder that sets the asset library the featured asset loads from.
//
// Parameters:
//   - lib: the asset library
//
// Returns:
//   - ControllerBuilderOption: a function that applies the library option to a controller
func WithLibrary(lib asset.Library) ControllerBuilderOption {
	return func(c *controller) {
		c.library = lib
	}
}

// WithAsset is an option builder that sets the featured asset mounted with the page.
//
// Parameters:
//   - key: the asset key
//   - mode: the consumption mode
//
// Returns:
//   - ControllerBuilderOption: a function that applies the asset option to a controller
func WithAsset(key string, mode asset.Mode) ControllerBuilderOption {
	return func(c *controller) {
		c.assetKey = key
		c.assetMode = mode
	}
}

// WithGrids is an option builder that sets how many flip grids the page stacks and how each
// is built.
//
// Parameters:
//   - count: the number of grids; negative values are ignored
//   - options: options applied to every grid
//
// Returns:
//   - ControllerBuilderOption: a function that applies the grid option to a controller
func WithGrids(count int, options ...flipgrid.GridBuilderOption) ControllerBuilderOption {
	return func(c *controller) {
		if count >= 0 {
			c.gridCount = count
		}
		c.gridOpts = append(c.gridOpts, options...)
	}
}

// WithResolver is an option builder that replaces the pointer resolver.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - ControllerBuilderOption: a function that applies the resolver option to a controller
func WithResolver(r pointer.Resolver) ControllerBuilderOption {
	return func(c *controller) {
		c.resolver = r
	}
}

// WithViewerOptions is an option builder that adds options for the featured viewer.
//
// Parameters:
//   - options: viewer options
//
// Returns:
//   - ControllerBuilderOption: a function that applies the viewer options to a controller
func WithViewerOptions(options ...viewer.ViewerBuilderOption) ControllerBuilderOption {
	return func(c *controller) {
		c.viewerOpts = append(c.viewerOpts, options...)
	}
}

// WithPipelineOptions is an option builder that adds options for the scroll pipeline.
// The pipeline is rebuilt from them on every Mount.
//
// Parameters:
//   - options: pipeline options
//
// Returns:
//   - ControllerBuilderOption: a function that applies the pipeline options to a controller
func WithPipelineOptions(options ...scroll.PipelineBuilderOption) ControllerBuilderOption {
	return func(c *controller) {
		c.pipelineOpts = append(c.pipelineOpts, options...)
	}
}

// WithScrollSource is an option builder that sets where the scroll pipeline reads progress from.
// It takes precedence over the wheel smoother as the pipeline's source.
//
// Parameters:
//   - src: the progress source
//
// Returns:
//   - ControllerBuilderOption: a function that applies the source option to a controller
func WithScrollSource(src scroll.Source) ControllerBuilderOption {
	return func(c *controller) {
		c.source = src
	}
}

// WithSmoothScroll is an option builder that enables wheel smoothing over a scrollable distance.
// The smoother becomes the pipeline's progress source unless WithScrollSource is given.
//
// Parameters:
//   - limit: the scrollable distance; non-positive values disable smoothing
//   - options: smoother options
//
// Returns:
//   - ControllerBuilderOption: a function that applies the smoothing option to a controller
func WithSmoothScroll(limit float64, options ...scroll.SmootherBuilderOption) ControllerBuilderOption {
	return func(c *controller) {
		c.smoothLimit = limit
		c.smootherOpts = append(c.smootherOpts, options...)
	}
}

// WithLogger is an option builder that sets the logger for the controller and its viewer.
//
// Parameters:
//   - logger: the logger; nil is ignored
//
// Returns:
//   - ControllerBuilderOption: a function that applies the logger option to a controller
func WithLogger(logger *log.Logger) ControllerBuilderOption {
	return func(c *controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConfig is an option builder that maps a configuration onto every component.
// Options given after it override the values it sets.
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - ControllerBuilderOption: a function that applies the configuration to a controller
func WithConfig(cfg config.Config) ControllerBuilderOption {
	return func(c *controller) {
		p := cfg.Pointer
		resting := poseOf(p.Resting)
		c.resolverOpts = append(c.resolverOpts,
			pointer.WithThreshold(p.Threshold),
			pointer.WithParallax(p.Parallax),
			pointer.WithRotationRange(p.RotationRange),
			pointer.WithRestingPose(resting),
			pointer.WithEngagedPose(poseOf(p.Engaged)),
		)

		v := cfg.Viewer
		c.viewerOpts = append(c.viewerOpts,
			viewer.WithSmoothing(v.Smoothing),
			viewer.WithLoopMode(v.LoopMode()),
			viewer.WithAutoPlay(v.AutoPlay),
			viewer.WithInitialTransform(common.TransformFromPose(resting)),
		)
		if v.Asset != "" {
			c.assetKey = v.Asset
			c.assetMode = v.AssetMode()
		}

		s := cfg.Scroll
		if k, err := motion.NewKeyframes(s.Inputs(), s.Outputs()); err == nil {
			c.pipelineOpts = append(c.pipelineOpts, scroll.WithKeyframes(k))
		}
		spring := motion.DefaultSpringConfig()
		spring.Stiffness = s.Spring.Stiffness
		spring.Damping = s.Spring.Damping
		spring.Mass = s.Spring.Mass
		c.pipelineOpts = append(c.pipelineOpts, scroll.WithSpring(spring))
		c.smootherOpts = append(c.smootherOpts,
			scroll.WithDuration(s.Smoother.Duration),
			scroll.WithWheelMultiplier(s.Smoother.WheelMultiplier),
		)
		c.smoothLimit = s.Smoother.Limit

		g := cfg.Grid
		c.gridCount = g.Count
		c.gridOpts = append(c.gridOpts,
			flipgrid.WithRows(g.Rows),
			flipgrid.WithColumns(g.Columns),
			flipgrid.WithDuration(g.FlipDuration),
			flipgrid.WithIntro(g.Intro),
		)
	}
}

func poseOf(p config.PoseConfig) common.Pose {
	return common.Pose{
		Position: p.Position,
		Scale:    common.UniformScale(p.Scale),
	}
}
