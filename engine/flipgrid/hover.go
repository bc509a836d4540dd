package flipgrid

// HoverTracker turns a stream of pointer positions over a grid into hover-enter events.
// Moving within one cell raises nothing; only crossing into another cell does.
// It is not safe for concurrent use.
type HoverTracker struct {
	grid        Grid
	row, column int
	inside      bool
}

// NewHoverTracker creates a HoverTracker feeding g.
//
// Parameters:
//   - g: the grid receiving hover-enter events
//
// Returns:
//   - *HoverTracker: the tracker
func NewHoverTracker(g Grid) *HoverTracker {
	return &HoverTracker{grid: g}
}

// Move reports a pointer position relative to the grid's top-left corner.
//
// Parameters:
//   - x, y: the pointer position
//   - width, height: the grid's size
//
// Returns:
//   - row, column: the cell under the pointer
//   - bool: true if a new cell was entered and its flip started
func (h *HoverTracker) Move(x, y, width, height float64) (int, int, bool) {
	row, column, ok := h.grid.CellAt(x, y, width, height)
	if !ok {
		h.inside = false
		return 0, 0, false
	}
	if h.inside && row == h.row && column == h.column {
		return row, column, false
	}
	h.row, h.column, h.inside = row, column, true
	return row, column, h.grid.HoverEnter(row, column)
}

// Leave reports that the pointer left the grid.
func (h *HoverTracker) Leave() {
	h.inside = false
}
