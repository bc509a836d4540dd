package scroll

import (
	"sync"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
	"github.com/pkg/errors"
)

// ErrClosed is returned when subscribing a pipeline that has already been closed.
var ErrClosed = errors.New("scroll: pipeline closed")

// DefaultKeyframes returns the reference progress-to-offset map:
// 0 → 0, 0.33 → -300, 0.66 → 200, 1 → 0.
//
// Returns:
//   - motion.Keyframes: the default keyframe map
func DefaultKeyframes() motion.Keyframes {
	return motion.MustKeyframes(
		[]float64{0, 0.33, 0.66, 1},
		[]float64{0, -300, 200, 0},
	)
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	mu sync.Mutex

	keyframes motion.Keyframes
	springCfg motion.SpringConfig
	spring    *motion.Spring
	progress  float64
	cancel    func()
	closed    bool
}

// Pipeline maps scroll progress through a keyframe map into a raw offset and filters that
// raw offset through a damped spring into the applied offset.
// Progress may be set from any goroutine; Tick is expected from the frame loop.
type Pipeline interface {
	// SetProgress records new scroll progress, clamped into [0, 1]. NaN is ignored.
	// It has no effect after Close.
	//
	// Parameters:
	//   - p: the scroll progress
	SetProgress(p float64)

	// Tick advances the spring by dt seconds toward the current raw offset.
	// After Close it returns the last offset without stepping.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous tick
	//
	// Returns:
	//   - float64: the smoothed offset
	Tick(dt float64) float64

	// Raw returns the keyframe-mapped offset for the current progress.
	//
	// Returns:
	//   - float64: the raw offset
	Raw() float64

	// Offset returns the current smoothed offset without stepping.
	//
	// Returns:
	//   - float64: the smoothed offset
	Offset() float64

	// Progress returns the current clamped scroll progress.
	//
	// Returns:
	//   - float64: the progress in [0, 1]
	Progress() float64

	// Subscribe connects the pipeline to a progress Source, replacing any previous subscription.
	//
	// Parameters:
	//   - src: the source to follow
	//
	// Returns:
	//   - error: ErrClosed if the pipeline has been closed
	Subscribe(src Source) error

	// Close cancels the source subscription and releases the spring.
	// Source notifications and ticks after Close have no effect. Close is idempotent.
	Close()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline with the reference keyframes and spring, then applies options.
//
// Parameters:
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		keyframes: DefaultKeyframes(),
		springCfg: motion.DefaultSpringConfig(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.spring = motion.NewSpring(p.springCfg, p.keyframes.Map(p.progress))
	return p
}

func (p *pipeline) SetProgress(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setProgress(progress)
}

func (p *pipeline) setProgress(progress float64) {
	if p.closed {
		return
	}
	p.progress = common.ClampFinite(progress, 0, 1, p.progress)
}

func (p *pipeline) Tick(dt float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return p.spring.Value()
	}
	return p.spring.Update(p.keyframes.Map(p.progress), dt)
}

func (p *pipeline) Raw() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keyframes.Map(p.progress)
}

func (p *pipeline) Offset() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spring.Value()
}

func (p *pipeline) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

func (p *pipeline) Subscribe(src Source) error {
	if src == nil {
		return errors.New("scroll: nil source")
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	previous := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if previous != nil {
		previous()
	}

	cancel := src.Subscribe(func(progress float64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.setProgress(progress)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		// Closed while subscribing.
		cancel()
		return ErrClosed
	}
	p.cancel = cancel
	return nil
}

func (p *pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	cancel := p.cancel
	p.cancel = nil
	p.spring.Release()
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
