// Package page ties the interactive components of one page to a single tick: the pointer
// resolver and featured viewer, the scroll pipeline and the flip grids. Inputs arrive as
// explicit calls and every Tick returns an immutable Frame for the render surface.
package page

import (
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/Carmen-Shannon/onin-go/engine/flipgrid"
	"github.com/Carmen-Shannon/onin-go/engine/pointer"
	"github.com/Carmen-Shannon/onin-go/engine/scroll"
	"github.com/Carmen-Shannon/onin-go/engine/viewer"
	"github.com/pkg/errors"
)

// DefaultGrids is the number of stacked flip grids on a page.
const DefaultGrids = 2

// ScrollState is the scroll part of a Frame.
type ScrollState struct {
	// Progress is the scroll progress in [0, 1].
	Progress float64

	// Raw is the keyframe-mapped offset before spring filtering.
	Raw float64

	// Offset is the spring-filtered offset applied to the screen-space container.
	Offset float64
}

// Frame is the immutable output of one tick.
type Frame struct {
	// Tick counts ticks since the controller was created, starting at 1.
	Tick uint64

	// Mounted is false for frames returned after Unmount.
	Mounted bool

	// Pointer is the sanitized pointer signal the target was resolved from.
	Pointer pointer.Signal

	// Engaged reports whether the pointer moved past the motion threshold.
	Engaged bool

	// Featured is the featured viewer's snapshot.
	Featured viewer.Snapshot

	Scroll ScrollState

	// Grids holds the row-major cell views of every grid.
	Grids [][]flipgrid.CellView

	// Completed is the number of flips that finished during this tick.
	Completed int
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu sync.Mutex

	resolver pointer.Resolver
	viewer   viewer.Viewer
	pipeline scroll.Pipeline
	smoother scroll.Smoother
	source   scroll.Source
	grids    []flipgrid.Grid
	trackers []*flipgrid.HoverTracker
	library  asset.Library
	logger   *log.Logger

	assetKey  string
	assetMode asset.Mode

	resolverOpts []pointer.ResolverBuilderOption
	viewerOpts   []viewer.ViewerBuilderOption
	pipelineOpts []scroll.PipelineBuilderOption
	smootherOpts []scroll.SmootherBuilderOption
	gridOpts     []flipgrid.GridBuilderOption
	gridCount    int
	smoothLimit  float64

	signal   pointer.Signal
	progress float64
	mounted  bool
	ticks    uint64
	last     Frame
}

// Controller is the page-level orchestrator. Input methods may be called from any goroutine;
// Tick is expected from the frame loop.
type Controller interface {
	// Mount subscribes the scroll pipeline to its source and starts loading the featured asset.
	// On failure everything acquired so far is torn down before the error is returned.
	//
	// Returns:
	//   - error: error if the pipeline cannot subscribe or the viewer cannot mount
	Mount() error

	// Unmount stops consuming ticks, cancels the scroll subscription, releases the spring and
	// unmounts the viewer. It is safe to call repeatedly and before Mount.
	Unmount()

	// Mounted reports whether the controller is consuming ticks.
	Mounted() bool

	// PointerMove records a normalized pointer position. Out-of-range values are clamped.
	//
	// Parameters:
	//   - x: horizontal position, -1 at the left edge
	//   - y: vertical position, -1 at the bottom edge
	PointerMove(x, y float32)

	// PointerMoveClient records a pointer position in surface pixels.
	//
	// Parameters:
	//   - clientX, clientY: the pointer position from the top-left corner
	//   - width, height: the surface size
	PointerMoveClient(clientX, clientY, width, height float32)

	// PointerLeave resets the pointer to the centre, so the next target is the resting pose.
	PointerLeave()

	// SetScrollProgress records scroll progress in [0, 1]. Out-of-range values are clamped.
	//
	// Parameters:
	//   - p: the scroll progress
	SetScrollProgress(p float64)

	// Wheel feeds a wheel delta into the scroll smoother. It is a no-op without one.
	//
	// Parameters:
	//   - delta: the wheel delta in scroll units
	Wheel(delta float64)

	// HoverEnter delivers a hover-enter event to one cell.
	//
	// Parameters:
	//   - grid: the grid index
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - bool: true if a flip started
	HoverEnter(grid, row, column int) bool

	// HoverAt maps a pointer position over a grid's surface to its cell and delivers a
	// hover-enter only when the pointer crosses into a new cell.
	//
	// Parameters:
	//   - grid: the grid index
	//   - x, y: the pointer position over the grid surface
	//   - width, height: the grid surface size
	//
	// Returns:
	//   - bool: true if a flip started
	HoverAt(grid int, x, y, width, height float64) bool

	// CompleteFlip delivers an external animation-complete event to one cell.
	//
	// Parameters:
	//   - grid: the grid index
	//   - row, column: the cell coordinates
	//
	// Returns:
	//   - bool: true if the cell was flipping
	CompleteFlip(grid, row, column int) bool

	// SetViewportWidth forwards the viewport width to the featured viewer's group scale.
	//
	// Parameters:
	//   - width: the viewport width
	SetViewportWidth(width float32)

	// Tick resolves the pointer target, smooths the featured transform, advances playback,
	// the scroll spring and every grid.
	//
	// Parameters:
	//   - dt: the elapsed time since the previous tick in seconds
	//
	// Returns:
	//   - Frame: the immutable state after this tick, or the last frame when unmounted
	Tick(dt float64) Frame

	// Grids returns the flip grids in stacking order.
	//
	// Returns:
	//   - []flipgrid.Grid: the grids
	Grids() []flipgrid.Grid

	// Viewer returns the featured viewer.
	//
	// Returns:
	//   - viewer.Viewer: the viewer
	Viewer() viewer.Viewer

	// Smoother returns the wheel smoother, or nil when wheel smoothing is disabled.
	//
	// Returns:
	//   - scroll.Smoother: the smoother
	Smoother() scroll.Smoother
}

var _ Controller = &controller{}

// NewController creates a new, unmounted Controller with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ControllerBuilderOption functions to configure the Controller
//
// Returns:
//   - Controller: a new Controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		logger:    log.Default(),
		gridCount: DefaultGrids,
		viewerOpts: []viewer.ViewerBuilderOption{
			viewer.WithInitialTransform(common.TransformFromPose(pointer.DefaultRestingPose())),
		},
	}

	for _, option := range options {
		option(c)
	}

	if c.resolver == nil {
		c.resolver = pointer.NewResolver(c.resolverOpts...)
	}
	if c.viewer == nil {
		c.viewer = viewer.NewViewer(append(c.viewerOpts, viewer.WithLogger(c.logger))...)
	}
	if c.smoother == nil && c.smoothLimit > 0 {
		c.smoother = scroll.NewSmoother(append(c.smootherOpts, scroll.WithLimit(c.smoothLimit))...)
	}
	if c.source == nil && c.smoother != nil {
		c.source = c.smoother
	}

	c.grids = make([]flipgrid.Grid, c.gridCount)
	c.trackers = make([]*flipgrid.HoverTracker, c.gridCount)
	for i := range c.grids {
		c.grids[i] = flipgrid.NewGrid(c.gridOpts...)
		c.trackers[i] = flipgrid.NewHoverTracker(c.grids[i])
	}
	return c
}

func (c *controller) Mount() (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return nil
	}
	defer func() {
		if err != nil {
			c.teardown()
			c.logger.Printf("[page] mount failed: %v", err)
		}
	}()

	c.pipeline = scroll.NewPipeline(append(c.pipelineOpts, scroll.WithInitialProgress(c.progress))...)
	if c.source != nil {
		if err := c.pipeline.Subscribe(c.source); err != nil {
			return errors.Wrap(err, "page: subscribe scroll source")
		}
	}
	if c.assetKey != "" {
		if err := c.viewer.Mount(c.library, c.assetKey, c.assetMode); err != nil {
			return errors.Wrapf(err, "page: mount %q", c.assetKey)
		}
	}

	c.mounted = true
	c.logger.Printf("[page] mounted: %d grids, featured asset %q", len(c.grids), c.assetKey)
	return nil
}

func (c *controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted && c.pipeline == nil {
		return
	}
	c.teardown()
	c.logger.Printf("[page] unmounted after %d ticks", c.ticks)
}

// teardown releases everything Mount acquired. It tolerates a partially completed Mount.
func (c *controller) teardown() {
	if c.pipeline != nil {
		c.pipeline.Close()
		c.pipeline = nil
	}
	c.viewer.Unmount()
	for _, tr := range c.trackers {
		tr.Leave()
	}
	c.mounted = false
	c.last.Mounted = false
}

func (c *controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *controller) PointerMove(x, y float32) {
	c.mu.Lock()
	c.signal = pointer.NewSignal(x, y)
	c.mu.Unlock()
}

func (c *controller) PointerMoveClient(clientX, clientY, width, height float32) {
	c.mu.Lock()
	c.signal = pointer.FromClient(clientX, clientY, width, height)
	c.mu.Unlock()
}

func (c *controller) PointerLeave() {
	c.mu.Lock()
	c.signal = pointer.Signal{}
	c.mu.Unlock()
}

func (c *controller) SetScrollProgress(p float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.progress = common.ClampFinite(p, 0, 1, c.progress)
	if c.pipeline != nil {
		c.pipeline.SetProgress(c.progress)
	}
}

func (c *controller) Wheel(delta float64) {
	if c.smoother != nil {
		c.smoother.Wheel(delta)
	}
}

func (c *controller) HoverEnter(grid, row, column int) bool {
	if grid < 0 || grid >= len(c.grids) {
		return false
	}
	return c.grids[grid].HoverEnter(row, column)
}

func (c *controller) HoverAt(grid int, x, y, width, height float64) bool {
	if grid < 0 || grid >= len(c.grids) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, started := c.trackers[grid].Move(x, y, width, height)
	return started
}

func (c *controller) CompleteFlip(grid, row, column int) bool {
	if grid < 0 || grid >= len(c.grids) {
		return false
	}
	return c.grids[grid].Complete(row, column)
}

func (c *controller) SetViewportWidth(width float32) {
	c.viewer.SetViewportWidth(width)
}

func (c *controller) Tick(dt float64) Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return c.last
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	c.ticks++

	// The smoother publishes into the pipeline, so it runs before the spring.
	if c.smoother != nil {
		c.smoother.Advance(dt)
	}

	target := c.resolver.Resolve(c.signal)
	featured := c.viewer.Tick(target, dt)

	offset := c.pipeline.Tick(dt)
	c.progress = c.pipeline.Progress()

	completed := 0
	views := make([][]flipgrid.CellView, len(c.grids))
	for i, g := range c.grids {
		completed += g.Advance(dt)
		views[i] = g.Views()
	}

	c.last = Frame{
		Tick:     c.ticks,
		Mounted:  true,
		Pointer:  c.signal,
		Engaged:  c.resolver.Active(c.signal),
		Featured: featured,
		Scroll: ScrollState{
			Progress: c.progress,
			Raw:      c.pipeline.Raw(),
			Offset:   offset,
		},
		Grids:     views,
		Completed: completed,
	}
	return c.last
}

func (c *controller) Grids() []flipgrid.Grid {
	return append([]flipgrid.Grid(nil), c.grids...)
}

func (c *controller) Viewer() viewer.Viewer {
	return c.viewer
}

func (c *controller) Smoother() scroll.Smoother {
	return c.smoother
}
