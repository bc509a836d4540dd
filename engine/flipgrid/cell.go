// Package flipgrid drives a grid of independently flipping cards. Every cell is a small
// idle/flipping state machine with a re-entrancy guard: a hover that arrives while the cell
// is already flipping is dropped, never queued.
package flipgrid

// Phase is the animation phase of one cell.
type Phase int

const (
	// PhaseIdle means the cell is at rest and accepts a new flip.
	PhaseIdle Phase = iota

	// PhaseFlipping means a flip animation is in flight.
	PhaseFlipping
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFlipping:
		return "flipping"
	default:
		return "unknown"
	}
}

// Event is an input to the cell state machine.
type Event int

const (
	// EventHoverEnter is raised when the pointer enters the cell.
	EventHoverEnter Event = iota

	// EventAnimationComplete is raised when the flip animation finishes.
	EventAnimationComplete
)

// Cell is the state of one grid cell.
type Cell struct {
	// FlipCount is the number of flips started. It never decreases.
	FlipCount int

	// Phase is the current animation phase.
	Phase Phase

	// Elapsed is the time in seconds since the current flip started. Zero while idle.
	Elapsed float64
}

// Flipping reports whether a flip animation is in flight.
func (c Cell) Flipping() bool {
	return c.Phase == PhaseFlipping
}

// Transition applies ev to c and returns the next state.
// A hover is accepted only while idle and starts a new flip; completion is accepted only while
// flipping. Rejected events return c unchanged and false.
//
// Parameters:
//   - c: the current cell state
//   - ev: the event to apply
//
// Returns:
//   - Cell: the next cell state
//   - bool: true if the event was accepted
func Transition(c Cell, ev Event) (Cell, bool) {
	switch {
	case ev == EventHoverEnter && c.Phase == PhaseIdle:
		return Cell{FlipCount: c.FlipCount + 1, Phase: PhaseFlipping}, true
	case ev == EventAnimationComplete && c.Phase == PhaseFlipping:
		return Cell{FlipCount: c.FlipCount, Phase: PhaseIdle}, true
	default:
		return c, false
	}
}
