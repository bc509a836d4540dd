package flipgrid

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/onin-go/engine/motion"
)

const (
	// DefaultRows is the row count of the reference layout.
	DefaultRows = 6

	// DefaultColumns is the column count of the reference layout.
	DefaultColumns = 8

	// DefaultDuration is the flip animation length in seconds.
	DefaultDuration = 1.0
)

// CellView is the render-facing state of one cell for the current tick.
type CellView struct {
	Row, Column int

	// Angle is the X-axis rotation in degrees.
	Angle float64

	// Origin is the column's perspective origin.
	Origin Origin

	FlipCount   int
	Flipping    bool
	BackVisible bool
}

// grid is the implementation of the Grid interface.
type grid struct {
	mu sync.Mutex

	rows, columns int
	duration      float64
	easing        motion.Easing
	intro         bool

	cells []Cell

	// introElapsed is the intro spin time per cell; negative once the intro is over.
	introElapsed []float64
}

// Grid is a rows × columns array of flip cells.
// Out-of-range coordinates are ignored by the mutating methods.
type Grid interface {
	// Rows returns the number of rows.
	Rows() int

	// Columns returns the number of columns.
	Columns() int

	// HoverEnter raises a hover-enter event on a cell.
	//
	// Parameters:
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - bool: true if a new flip started, false if the cell was already flipping
	HoverEnter(row, column int) bool

	// Complete raises the animation-complete event on a cell. Use it when the render surface
	// runs the flip animation itself; Advance fires completion on its own otherwise.
	//
	// Parameters:
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - bool: true if the cell returned to idle
	Complete(row, column int) bool

	// Advance moves every in-flight flip forward by dt seconds and completes the flips whose
	// duration has elapsed.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous advance
	//
	// Returns:
	//   - int: the number of flips completed during this advance
	Advance(dt float64) int

	// Cell returns the state of a cell.
	//
	// Parameters:
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - Cell: the cell state
	//   - bool: false if the coordinates are out of range
	Cell(row, column int) (Cell, bool)

	// View returns the render-facing state of a cell.
	//
	// Parameters:
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - CellView: the cell view, zero if out of range
	View(row, column int) CellView

	// Views returns the views of every cell in row-major order.
	//
	// Returns:
	//   - []CellView: one view per cell
	Views() []CellView

	// CellAt maps a point over the grid's area to a cell.
	//
	// Parameters:
	//   - x, y: the point, relative to the grid's top-left corner
	//   - width, height: the grid's size
	//
	// Returns:
	//   - row, column: the cell coordinates
	//   - bool: false if the point lies outside the grid
	CellAt(x, y, width, height float64) (int, int, bool)
}

var _ Grid = &grid{}

// NewGrid creates a 6 × 8 Grid with a 1s ease-out flip, then applies options.
//
// Parameters:
//   - options: functional options to configure the grid
//
// Returns:
//   - Grid: the configured grid
func NewGrid(options ...GridBuilderOption) Grid {
	g := &grid{
		rows:     DefaultRows,
		columns:  DefaultColumns,
		duration: DefaultDuration,
		easing:   motion.EaseOut,
	}
	for _, opt := range options {
		opt(g)
	}

	g.cells = make([]Cell, g.rows*g.columns)
	g.introElapsed = make([]float64, len(g.cells))
	for i := range g.introElapsed {
		if !g.intro {
			g.introElapsed[i] = -1
		}
	}
	return g
}

func (g *grid) Rows() int {
	return g.rows
}

func (g *grid) Columns() int {
	return g.columns
}

func (g *grid) index(row, column int) (int, bool) {
	if row < 0 || row >= g.rows || column < 0 || column >= g.columns {
		return 0, false
	}
	return row*g.columns + column, true
}

func (g *grid) HoverEnter(row, column int) bool {
	return g.apply(row, column, EventHoverEnter)
}

func (g *grid) Complete(row, column int) bool {
	return g.apply(row, column, EventAnimationComplete)
}

func (g *grid) apply(row, column int, ev Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index(row, column)
	if !ok {
		return false
	}
	next, accepted := Transition(g.cells[i], ev)
	if accepted {
		g.cells[i] = next
		if ev == EventHoverEnter {
			// A real flip replaces the intro spin.
			g.introElapsed[i] = -1
		}
	}
	return accepted
}

func (g *grid) Advance(dt float64) int {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	completed := 0
	for i := range g.cells {
		if g.introElapsed[i] >= 0 {
			g.introElapsed[i] += dt
			if g.introElapsed[i] >= g.duration {
				g.introElapsed[i] = -1
			}
		}

		c := &g.cells[i]
		if c.Phase != PhaseFlipping {
			continue
		}
		c.Elapsed += dt
		if c.Elapsed >= g.duration {
			*c, _ = Transition(*c, EventAnimationComplete)
			completed++
		}
	}
	return completed
}

func (g *grid) Cell(row, column int) (Cell, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index(row, column)
	if !ok {
		return Cell{}, false
	}
	return g.cells[i], true
}

func (g *grid) View(row, column int) CellView {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index(row, column)
	if !ok {
		return CellView{}
	}
	return g.view(i)
}

func (g *grid) Views() []CellView {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]CellView, len(g.cells))
	for i := range g.cells {
		out[i] = g.view(i)
	}
	return out
}

func (g *grid) view(i int) CellView {
	c := g.cells[i]
	row, column := i/g.columns, i%g.columns

	var angle float64
	switch {
	case c.Phase == PhaseFlipping:
		angle = SampleKeyframes(FlipKeyframes(c.FlipCount), c.Elapsed/g.duration, g.easing)
	case g.introElapsed[i] >= 0:
		angle = SampleKeyframes(IntroKeyframes, g.introElapsed[i]/g.duration, g.easing)
	default:
		angle = RestAngle(c.FlipCount)
	}

	return CellView{
		Row:         row,
		Column:      column,
		Angle:       angle,
		Origin:      OriginForColumn(column),
		FlipCount:   c.FlipCount,
		Flipping:    c.Flipping(),
		BackVisible: BackVisible(angle),
	}
}

func (g *grid) CellAt(x, y, width, height float64) (int, int, bool) {
	if !(width > 0) || !(height > 0) || x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	column := int(x / width * float64(g.columns))
	row := int(y / height * float64(g.rows))
	return min(row, g.rows-1), min(column, g.columns-1), true
}
