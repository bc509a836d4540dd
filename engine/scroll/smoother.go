package scroll

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
)

// smoother is the implementation of the Smoother interface.
type smoother struct {
	mu   sync.Mutex
	subs subscribers

	duration        float64
	easing          motion.Easing
	wheelMultiplier float64
	limit           float64

	position  float64
	target    float64
	from      float64
	elapsed   float64
	animating bool
	destroyed bool
}

// Smoother converts discrete wheel deltas into an eased scroll position and publishes the
// resulting page progress. Each wheel event retargets the animation from the current position.
type Smoother interface {
	Source

	// Wheel adds a wheel delta (in scroll units) to the target position.
	// The target is clamped into [0, limit]; non-finite deltas are ignored.
	//
	// Parameters:
	//   - delta: the wheel delta, positive scrolls down
	Wheel(delta float64)

	// ScrollTo retargets the animation to an absolute position.
	//
	// Parameters:
	//   - position: the target position, clamped into [0, limit]
	//   - immediate: when true the position jumps without easing
	ScrollTo(position float64, immediate bool)

	// Advance steps the easing animation by dt seconds and publishes the current progress.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous advance
	Advance(dt float64)

	// SetLimit sets the scrollable length. Position and target are re-clamped.
	//
	// Parameters:
	//   - limit: the maximum scroll position, >= 0
	SetLimit(limit float64)

	// Position returns the current eased scroll position.
	Position() float64

	// Target returns the position the animation is heading toward.
	Target() float64

	// Progress returns Position divided by the limit, or 0 for a zero limit.
	Progress() float64

	// Animating reports whether an easing animation is in flight.
	Animating() bool

	// Destroy drops every subscriber and stops the smoother. Later calls are no-ops.
	Destroy()
}

var _ Smoother = &smoother{}

// NewSmoother creates a Smoother with a 1.2s exponential ease-out and a wheel multiplier of 1.
//
// Parameters:
//   - options: functional options to configure the smoother
//
// Returns:
//   - Smoother: the configured smoother
func NewSmoother(options ...SmootherBuilderOption) Smoother {
	s := &smoother{
		duration:        1.2,
		easing:          motion.ExpoOut,
		wheelMultiplier: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *smoother) Subscribe(fn func(progress float64)) func() {
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return func() {}
	}
	return s.subs.add(fn)
}

func (s *smoother) Wheel(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	s.retarget(s.target+delta*s.wheelMultiplier, false)
}

func (s *smoother) ScrollTo(position float64, immediate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || math.IsNaN(position) {
		return
	}
	s.retarget(position, immediate)
}

func (s *smoother) retarget(to float64, immediate bool) {
	s.target = common.Clamp(to, 0, s.limit)
	if immediate || s.duration <= 0 {
		s.position = s.target
		s.animating = false
		return
	}
	s.from = s.position
	s.elapsed = 0
	s.animating = s.from != s.target
}

func (s *smoother) Advance(dt float64) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	if s.animating && dt > 0 {
		s.elapsed += dt
		linear := common.Clamp(s.elapsed/s.duration, 0, 1)
		eased := 1.0
		if linear < 1 {
			eased = s.easing(linear)
		} else {
			s.animating = false
		}
		s.position = s.from + (s.target-s.from)*eased
	}
	progress := s.progress()
	s.mu.Unlock()

	s.subs.publish(progress)
}

func (s *smoother) SetLimit(limit float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(limit) || limit < 0 {
		limit = 0
	}
	s.limit = limit
	s.position = common.Clamp(s.position, 0, limit)
	s.target = common.Clamp(s.target, 0, limit)
	s.from = common.Clamp(s.from, 0, limit)
}

func (s *smoother) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *smoother) Target() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *smoother) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

func (s *smoother) progress() float64 {
	if s.limit <= 0 {
		return 0
	}
	return common.Clamp(s.position/s.limit, 0, 1)
}

func (s *smoother) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}

func (s *smoother) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.animating = false
	s.mu.Unlock()

	s.subs.clear()
}
