// Package viewer owns the featured object of a page: its smoothed live transform and, once the
// asset finishes loading, the private instance and animator that play it back.
package viewer

import (
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/animator"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/Carmen-Shannon/onin-go/engine/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	// DefaultSmoothing is the fraction of the remaining distance the live transform closes per tick.
	DefaultSmoothing float32 = 0.05

	// ViewportDivisor maps the viewport width onto the outer group scale.
	ViewportDivisor float32 = 10
)

// Status is the load state of the mounted asset, for fallback UI.
type Status int

const (
	// StatusIdle means nothing is mounted.
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the immutable result of one tick, applied verbatim by the render surface.
type Snapshot struct {
	// Live is the smoothed transform after this tick.
	Live common.Transform

	// Target is the transform the live transform was smoothed toward.
	Target common.Transform

	// Status is the load state of the mounted asset.
	Status Status

	// Err is the load failure when Status is StatusFailed.
	Err error

	// GroupScale is the uniform scale of the outer group derived from the viewport width.
	GroupScale float32

	// Matrix is the group scale composed with the live model matrix.
	Matrix mgl32.Mat4

	// Playing lists the clips that advanced this tick.
	Playing []string
}

// viewer is the implementation of the Viewer interface.
type viewer struct {
	mu sync.Mutex

	live       common.Transform
	factor     float32
	groupScale float32
	loopMode   animator.LoopMode
	autoPlay   bool
	logger     *log.Logger

	key      string
	handle   asset.Handle
	instance *asset.Instance
	anim     animator.Animator
	status   Status
	err      error
}

// Viewer is the per-frame owner of one featured object.
// Tick is a pure compute step: it never touches a render surface.
type Viewer interface {
	// Mount starts loading key from the library and replaces anything previously mounted.
	// A failed load is not an error here: it surfaces as StatusFailed on a later tick.
	//
	// Parameters:
	//   - lib: the asset library
	//   - key: the asset key
	//   - mode: the consumption mode
	//
	// Returns:
	//   - error: error if lib is nil or key is empty; the viewer is left unmounted
	Mount(lib asset.Library, key string, mode asset.Mode) error

	// Tick smooths the live transform toward target, promotes a finished load to a playable
	// instance and advances playback.
	//
	// Parameters:
	//   - target: the target transform for this tick
	//   - dt: the elapsed time since the previous tick in seconds
	//
	// Returns:
	//   - Snapshot: the immutable state after this tick
	Tick(target common.Transform, dt float64) Snapshot

	// Status returns the current load state.
	//
	// Returns:
	//   - Status: idle, loading, ready or failed
	Status() Status

	// Live returns the current smoothed transform.
	//
	// Returns:
	//   - common.Transform: the live transform
	Live() common.Transform

	// Instance returns the playable instance, or nil until the asset is ready.
	//
	// Returns:
	//   - *asset.Instance: the instance owned by this viewer
	Instance() *asset.Instance

	// Animator returns the animator bound to the instance, or nil until the asset is ready.
	//
	// Returns:
	//   - animator.Animator: the animator
	Animator() animator.Animator

	// SetViewportWidth sets the outer group scale to width/10. Non-positive widths are ignored.
	//
	// Parameters:
	//   - width: the viewport width
	SetViewportWidth(width float32)

	// Unmount drops the handle, instance and animator. It is safe to call repeatedly.
	// The live transform is kept.
	Unmount()
}

var _ Viewer = &viewer{}

// NewViewer creates a new Viewer with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ViewerBuilderOption functions to configure the Viewer
//
// Returns:
//   - Viewer: a new, unmounted Viewer
func NewViewer(options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		live:       common.Transform{Scale: common.UniformScale(1)},
		factor:     DefaultSmoothing,
		groupScale: 1,
		loopMode:   animator.LoopRepeat,
		autoPlay:   true,
		logger:     log.Default(),
	}

	for _, option := range options {
		option(v)
	}
	return v
}

func (v *viewer) Mount(lib asset.Library, key string, mode asset.Mode) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.unmount()
	if lib == nil {
		return errors.New("viewer: mount without a library")
	}
	if key == "" {
		return errors.New("viewer: mount without an asset key")
	}

	v.key = key
	v.handle = lib.Request(key, mode)
	v.status = StatusLoading
	return nil
}

func (v *viewer) Tick(target common.Transform, dt float64) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}

	v.live = motion.SmoothTransform(v.live, target, v.factor)
	v.promote()

	var playing []string
	if v.anim != nil {
		v.anim.Advance(dt)
		playing = v.anim.Playing()
	}

	g := v.groupScale
	return Snapshot{
		Live:       v.live,
		Target:     target,
		Status:     v.status,
		Err:        v.err,
		GroupScale: g,
		Matrix:     mgl32.Scale3D(g, g, g).Mul4(common.ModelMatrix(v.live)),
		Playing:    playing,
	}
}

// promote turns a finished load into an instance and animator, exactly once.
func (v *viewer) promote() {
	if v.status != StatusLoading || v.handle == nil {
		return
	}

	switch v.handle.Status() {
	case asset.StatusReady:
		v.instance = asset.Instantiate(v.handle.Asset())
		var options []animator.AnimatorBuilderOption
		if v.autoPlay {
			options = append(options, animator.WithAutoPlay(v.loopMode))
		}
		v.anim = animator.NewAnimator(v.instance, options...)
		v.status = StatusReady
		v.logger.Printf("[viewer] %q ready: %d clips playing", v.key, len(v.anim.Playing()))
	case asset.StatusFailed:
		v.err = v.handle.Err()
		v.status = StatusFailed
		v.logger.Printf("[viewer] %q failed, showing fallback: %v", v.key, v.err)
	}
}

func (v *viewer) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *viewer) Live() common.Transform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.live
}

func (v *viewer) Instance() *asset.Instance {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.instance
}

func (v *viewer) Animator() animator.Animator {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.anim
}

func (v *viewer) SetViewportWidth(width float32) {
	if !(width > 0) {
		return
	}
	v.mu.Lock()
	v.groupScale = width / ViewportDivisor
	v.mu.Unlock()
}

func (v *viewer) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.unmount()
}

func (v *viewer) unmount() {
	if v.anim != nil {
		v.anim.StopAll()
	}
	v.key = ""
	v.handle = nil
	v.instance = nil
	v.anim = nil
	v.status = StatusIdle
	v.err = nil
}
