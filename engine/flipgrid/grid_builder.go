package flipgrid

import (
	"time"

	"github.com/Carmen-Shannon/onin-go/engine/motion"
)

// GridBuilderOption is a functional option for configuring a Grid via NewGrid.
type GridBuilderOption func(*grid)

// WithRows is an option builder that sets the number of rows. Values below 1 are ignored.
//
// Parameters:
//   - rows: the row count
//
// Returns:
//   - GridBuilderOption: a function that applies the rows option to a grid
func WithRows(rows int) GridBuilderOption {
	return func(g *grid) {
		if rows > 0 {
			g.rows = rows
		}
	}
}

// WithColumns is an option builder that sets the number of columns. Values below 1 are ignored.
//
// Parameters:
//   - columns: the column count
//
// Returns:
//   - GridBuilderOption: a function that applies the columns option to a grid
func WithColumns(columns int) GridBuilderOption {
	return func(g *grid) {
		if columns > 0 {
			g.columns = columns
		}
	}
}

// WithDuration is an option builder that sets the flip animation length.
// Non-positive durations are ignored.
//
// Parameters:
//   - d: the flip duration
//
// Returns:
//   - GridBuilderOption: a function that applies the duration option to a grid
func WithDuration(d time.Duration) GridBuilderOption {
	return func(g *grid) {
		if d > 0 {
			g.duration = d.Seconds()
		}
	}
}

// WithEasing is an option builder that sets the per-segment flip easing.
//
// Parameters:
//   - easing: the easing curve; nil is ignored
//
// Returns:
//   - GridBuilderOption: a function that applies the easing option to a grid
func WithEasing(easing motion.Easing) GridBuilderOption {
	return func(g *grid) {
		if easing != nil {
			g.easing = easing
		}
	}
}

// WithIntro is an option builder that makes every cell play one intro spin after creation.
//
// Parameters:
//   - enabled: whether the intro plays
//
// Returns:
//   - GridBuilderOption: a function that applies the intro option to a grid
func WithIntro(enabled bool) GridBuilderOption {
	return func(g *grid) {
		g.intro = enabled
	}
}
