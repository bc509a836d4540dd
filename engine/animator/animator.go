// Package animator plays an asset's clips on one asset.Instance.
package animator

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/pkg/errors"
)

// ErrUnknownClip is returned by Play for a clip name the asset does not carry.
var ErrUnknownClip = errors.New("animator: unknown clip")

// LoopMode controls what happens when playback reaches the end of a clip.
type LoopMode int

const (
	// LoopRepeat wraps back to the start. It is the authored default for glTF clips.
	LoopRepeat LoopMode = iota

	// LoopOnce plays to the end and holds the last pose.
	LoopOnce

	// LoopPingPong alternates forward and backward playback.
	LoopPingPong
)

// String returns the loop mode name.
func (m LoopMode) String() string {
	switch m {
	case LoopRepeat:
		return "repeat"
	case LoopOnce:
		return "once"
	case LoopPingPong:
		return "pingpong"
	default:
		return "unknown"
	}
}

// playback holds the state of one active clip.
// This mirrors the per-instance playback state of a GPU animator, kept on the CPU.
type playback struct {
	clip     *asset.Clip
	mode     LoopMode
	elapsed  float64
	time     float32
	finished bool
}

// advance moves the playback forward by dt seconds and derives the sampling time.
func (p *playback) advance(dt float64) {
	if p.finished {
		return
	}
	p.elapsed += dt

	d := float64(p.clip.Duration)
	if d <= 0 {
		p.time = 0
		if p.mode == LoopOnce {
			p.finished = true
		}
		return
	}

	switch p.mode {
	case LoopOnce:
		if p.elapsed >= d {
			p.elapsed = d
			p.finished = true
		}
		p.time = float32(p.elapsed)
	case LoopPingPong:
		t := math.Mod(p.elapsed, 2*d)
		if t > d {
			t = 2*d - t
		}
		p.time = float32(t)
	default:
		p.time = float32(math.Mod(p.elapsed, d))
	}
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu sync.Mutex

	instance *asset.Instance
	speed    float32

	active map[string]*playback
	order  []string

	scratch [4]float32
}

// Animator advances clip playback and samples the result into the node locals of the
// instance it is bound to. Clips play simultaneously; when two active clips animate the
// same node property, the one started last wins.
type Animator interface {
	// Instance returns the instance this animator writes into.
	//
	// Returns:
	//   - *asset.Instance: the bound instance
	Instance() *asset.Instance

	// Play starts the named clip from its beginning, restarting it if already active.
	//
	// Parameters:
	//   - name: the clip name
	//   - mode: the loop mode
	//
	// Returns:
	//   - error: an error wrapping ErrUnknownClip if the asset has no such clip
	Play(name string, mode LoopMode) error

	// PlayAll starts every clip of the asset with LoopRepeat.
	PlayAll()

	// Stop removes the named clip from playback. The pose it last wrote is kept.
	//
	// Parameters:
	//   - name: the clip name
	Stop(name string)

	// StopAll removes every clip from playback and restores the bind pose.
	StopAll()

	// Advance applies dt seconds to every active clip and samples them into the instance.
	// Negative or non-finite dt is treated as zero.
	//
	// Parameters:
	//   - dt: the elapsed time in seconds
	Advance(dt float64)

	// Time returns the current sampling time of the named clip.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - float32: the clip-local time in seconds
	//   - bool: false if the clip is not active
	Time(name string) (float32, bool)

	// Playing returns the names of active clips that have not finished, in start order.
	//
	// Returns:
	//   - []string: the playing clip names
	Playing() []string

	// SetSpeed sets the playback rate multiplier. Negative values are ignored.
	//
	// Parameters:
	//   - speed: the rate multiplier, 1 for authored speed
	SetSpeed(speed float32)
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator bound to the given instance with the options applied.
//
// Parameters:
//   - instance: the instance to animate; must not be nil
//   - options: a variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: a new Animator with nothing playing unless WithAutoPlay was given
func NewAnimator(instance *asset.Instance, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		instance: instance,
		speed:    1,
		active:   make(map[string]*playback),
	}

	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animator) Instance() *asset.Instance {
	return a.instance
}

func (a *animator) Play(name string, mode LoopMode) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.play(name, mode)
}

func (a *animator) play(name string, mode LoopMode) error {
	clip := a.instance.Asset().Clip(name)
	if clip == nil {
		return errors.Wrapf(ErrUnknownClip, "%q", name)
	}

	if _, ok := a.active[name]; ok {
		a.remove(name)
	}
	a.active[name] = &playback{clip: clip, mode: mode}
	a.order = append(a.order, name)
	return nil
}

func (a *animator) PlayAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, name := range a.instance.Asset().ClipNames() {
		_ = a.play(name, LoopRepeat)
	}
}

func (a *animator) Stop(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.remove(name)
}

func (a *animator) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.active = make(map[string]*playback)
	a.order = a.order[:0]
	a.instance.ResetPose()
}

func (a *animator) remove(name string) {
	if _, ok := a.active[name]; !ok {
		return
	}
	delete(a.active, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *animator) Advance(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	dt *= float64(a.speed)

	for _, name := range a.order {
		p := a.active[name]
		p.advance(dt)
		for i := range p.clip.Channels {
			ch := &p.clip.Channels[i]
			out := a.scratch[:ch.Width()]
			sampleChannel(ch, p.time, out)

			local := a.instance.Local(ch.Node)
			apply(&local, ch.Path, out)
			a.instance.SetLocal(ch.Node, local)
		}
	}
}

func (a *animator) Time(name string) (float32, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.active[name]
	if !ok {
		return 0, false
	}
	return p.time, true
}

func (a *animator) Playing() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	names := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if !a.active[name].finished {
			names = append(names, name)
		}
	}
	return names
}

func (a *animator) SetSpeed(speed float32) {
	if speed < 0 {
		return
	}
	a.mu.Lock()
	a.speed = speed
	a.mu.Unlock()
}
