package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/onin-go/engine/flipgrid"
	"github.com/Carmen-Shannon/onin-go/engine/page"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls      []string
	clear      wgpu.Color
	beginErr   error
	configured [2]int
	mode       PresentMode
}

func (b *fakeBackend) ConfigureSurface(width, height int) {
	b.configured = [2]int{width, height}
	b.calls = append(b.calls, "configure")
}

func (b *fakeBackend) SetPresentMode(mode PresentMode) {
	b.mode = mode
}

func (b *fakeBackend) BeginFrame(clear wgpu.Color) error {
	b.calls = append(b.calls, "begin")
	if b.beginErr != nil {
		return b.beginErr
	}
	b.clear = clear
	return nil
}

func (b *fakeBackend) EndFrame() { b.calls = append(b.calls, "end") }
func (b *fakeBackend) Present()  { b.calls = append(b.calls, "present") }
func (b *fakeBackend) Release()  { b.calls = append(b.calls, "release") }

func newTestRenderer() (*renderer, *fakeBackend) {
	b := &fakeBackend{}
	return &renderer{mu: &sync.Mutex{}, backend: b, palette: DefaultPalette()}, b
}

func TestRenderer_DrawClearsToBackdrop(t *testing.T) {
	r, b := newTestRenderer()

	require.NoError(t, r.Draw(page.Frame{}))
	assert.Equal(t, []string{"begin", "end", "present"}, b.calls)
	assert.Equal(t, wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}, b.clear)
}

func TestRenderer_BeginFailureSkipsPresent(t *testing.T) {
	r, b := newTestRenderer()
	b.beginErr = ErrSurfaceNotConfigured

	err := r.Clear(Color{R: 1})
	assert.True(t, errors.Is(err, ErrSurfaceNotConfigured))
	assert.Equal(t, []string{"begin"}, b.calls)
}

func TestRenderer_ResizeAndPresentMode(t *testing.T) {
	r, b := newTestRenderer()

	r.Resize(640, 480)
	assert.Equal(t, [2]int{640, 480}, b.configured)

	r.SetPresentMode(PresentModeUncapped, 800, 600)
	assert.Equal(t, PresentModeUncapped, b.mode)
	assert.Equal(t, [2]int{800, 600}, b.configured)

	r.Release()
	assert.Equal(t, "release", b.calls[len(b.calls)-1])
}

func TestColor_Mix(t *testing.T) {
	black := Color{}
	white := Color{R: 1, G: 1, B: 1}

	assert.Equal(t, Color{R: 0.25, G: 0.25, B: 0.25}, black.Mix(white, 0.25))
	assert.Equal(t, white, black.Mix(white, 4), "amount is clamped")
	assert.Equal(t, black, black.Mix(white, -1))
}

func TestPalette_Backdrop(t *testing.T) {
	p := Palette{
		Base:        Color{},
		Scrolled:    Color{B: 1},
		ScrollRange: 100,
		Engaged:     Color{R: 1},
		EngagedMix:  0.5,
		Flipping:    Color{G: 1},
	}

	assert.Equal(t, Color{}, p.Backdrop(page.Frame{}))

	scrolled := p.Backdrop(page.Frame{Scroll: page.ScrollState{Offset: -50}})
	assert.InDelta(t, 0.5, scrolled.B, 1e-9, "offset magnitude drives the mix")

	engaged := p.Backdrop(page.Frame{Engaged: true})
	assert.InDelta(t, 0.5, engaged.R, 1e-9)

	flipping := p.Backdrop(page.Frame{Grids: [][]flipgrid.CellView{
		{{Flipping: true}, {}, {}, {}},
	}})
	assert.InDelta(t, 0.25, flipping.G, 1e-9)
}
