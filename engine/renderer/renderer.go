package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/onin-go/engine/page"
	"github.com/Carmen-Shannon/onin-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	palette     Palette

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer presents page frames to a window surface.
//
// Each frame is a single render pass that clears the swapchain image to a backdrop derived from
// the frame and presents it. The Renderer implements a backend which allows for multiple
// backend API implementations to exist.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode and reconfigures the surface at the given size.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	//   - width: the current surface width in pixels
	//   - height: the current surface height in pixels
	SetPresentMode(mode PresentMode, width, height int)

	// Palette returns the palette frames are colored with.
	//
	// Returns:
	//   - Palette: the palette
	Palette() Palette

	// Draw presents one frame.
	//
	// Parameters:
	//   - f: the frame to present
	//
	// Returns:
	//   - error: an error if the surface could not be acquired
	Draw(f page.Frame) error

	// Clear presents a frame cleared to a fixed color.
	//
	// Parameters:
	//   - c: the color
	//
	// Returns:
	//   - error: an error if the surface could not be acquired
	Clear(c Color) error

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance for a window using the specified backend type.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window providing the surface
//   - options: optional builder functions to customize the Renderer
//
// Returns:
//   - Renderer: a new Renderer configured with the specified backend and options
//   - error: an error if no GPU adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		palette:     DefaultPalette(),
		presentMode: PresentModeVSync,
	}

	// Options first so forceFallbackAdapter is known before requesting an adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(w.Width(), w.Height())
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode, width, height int) {
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Palette() Palette {
	return r.palette
}

func (r *renderer) Draw(f page.Frame) error {
	return r.Clear(r.palette.Backdrop(f))
}

func (r *renderer) Clear(c Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.BeginFrame(c.wgpu()); err != nil {
		return err
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
