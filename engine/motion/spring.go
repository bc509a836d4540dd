package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a damped spring physically. It is converted to harmonica's
// angular frequency and damping ratio when the filter is stepped.
type SpringConfig struct {
	// Stiffness is the spring constant k.
	Stiffness float64

	// Damping is the damping coefficient c.
	Damping float64

	// Mass is the attached mass m.
	Mass float64

	// RestDelta is the distance from the target under which the spring may snap to rest.
	RestDelta float64

	// RestSpeed is the speed under which the spring may snap to rest.
	RestSpeed float64

	// MaxStep is the longest single integration step in seconds; longer ticks are sub-stepped.
	MaxStep float64
}

// maxSubSteps bounds the work done for one very long tick (e.g. after the process was suspended).
// Past that the steps grow so the whole tick is still integrated.
const maxSubSteps = 8

// MinDampingRatio is the lowest damping ratio a spring runs with. Below it the filter rings
// for too long to count as settling.
const MinDampingRatio = 0.1

// DefaultSpringConfig returns the reference scroll spring: stiffness 30, damping 20, mass 1.
// This is overdamped (damping ratio ≈ 1.83) and never overshoots.
//
// Returns:
//   - SpringConfig: the default configuration
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness: 30,
		Damping:   20,
		Mass:      1,
		RestDelta: 0.01,
		RestSpeed: 0.01,
		MaxStep:   1.0 / 30.0,
	}
}

// AngularFrequency returns sqrt(k/m) in radians per second.
func (c SpringConfig) AngularFrequency() float64 {
	if c.Mass <= 0 || c.Stiffness <= 0 {
		return 0
	}
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)). 1 is critical damping.
func (c SpringConfig) DampingRatio() float64 {
	if c.Mass <= 0 || c.Stiffness <= 0 {
		return 0
	}
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring is a second-order lag-and-settle filter over a scalar stream.
// It is not safe for concurrent use.
type Spring struct {
	cfg SpringConfig

	spring   harmonica.Spring
	springDT float64

	pos, vel, target float64
	atRest           bool
	released         bool
}

// NewSpring creates a Spring resting at initial. Non-positive damping falls back to the
// default and any damping ratio under MinDampingRatio is raised to it.
//
// Parameters:
//   - cfg: the spring parameters
//   - initial: the initial output value
//
// Returns:
//   - *Spring: the filter
func NewSpring(cfg SpringConfig, initial float64) *Spring {
	def := DefaultSpringConfig()
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = def.MaxStep
	}
	if !(cfg.Damping > 0) {
		cfg.Damping = def.Damping
	}
	if cfg.Mass > 0 && cfg.Stiffness > 0 && cfg.DampingRatio() < MinDampingRatio {
		cfg.Damping = MinDampingRatio * 2 * math.Sqrt(cfg.Stiffness*cfg.Mass)
	}
	return &Spring{
		cfg:    cfg,
		pos:    initial,
		target: initial,
		atRest: true,
	}
}

// Update feeds target into the filter, advances it by dt seconds and returns the output.
// Non-positive or NaN dt only records the target. After Release the filter is inert and
// returns its last output.
//
// Parameters:
//   - target: the raw input value
//   - dt: elapsed time since the previous update in seconds
//
// Returns:
//   - float64: the filtered value
func (s *Spring) Update(target, dt float64) float64 {
	if s.released {
		return s.pos
	}
	if !math.IsNaN(target) && !math.IsInf(target, 0) {
		if target != s.target {
			s.atRest = false
		}
		s.target = target
	}
	if !(dt > 0) || s.atRest {
		return s.pos
	}

	base := math.Max(s.cfg.MaxStep, dt/maxSubSteps)
	remaining := dt
	for i := 0; i < maxSubSteps && remaining > 1e-9; i++ {
		step := math.Min(remaining, base)
		s.ensure(step)
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
		remaining -= step
	}

	if math.Abs(s.pos-s.target) <= s.cfg.RestDelta && math.Abs(s.vel) <= s.cfg.RestSpeed {
		s.pos = s.target
		s.vel = 0
		s.atRest = true
	}
	return s.pos
}

// ensure rebuilds the harmonica coefficients when the step duration changes.
func (s *Spring) ensure(step float64) {
	if s.springDT != 0 && math.Abs(s.springDT-step) < 1e-9 {
		return
	}
	s.spring = harmonica.NewSpring(step, s.cfg.AngularFrequency(), s.cfg.DampingRatio())
	s.springDT = step
}

// Value returns the current output.
func (s *Spring) Value() float64 {
	return s.pos
}

// Velocity returns the current output velocity in units per second.
func (s *Spring) Velocity() float64 {
	return s.vel
}

// Target returns the last accepted input.
func (s *Spring) Target() float64 {
	return s.target
}

// AtRest reports whether the output has settled on the target.
func (s *Spring) AtRest() bool {
	return s.atRest
}

// Reset jumps the filter to value with zero velocity.
//
// Parameters:
//   - value: the new output and target
func (s *Spring) Reset(value float64) {
	if s.released {
		return
	}
	s.pos, s.target, s.vel = value, value, 0
	s.atRest = true
}

// Release drops the integration state. Subsequent updates are no-ops.
func (s *Spring) Release() {
	s.released = true
	s.spring = harmonica.Spring{}
	s.springDT = 0
	s.vel = 0
	s.atRest = true
}

// Released reports whether Release has been called.
func (s *Spring) Released() bool {
	return s.released
}
