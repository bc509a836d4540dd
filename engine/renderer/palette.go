package renderer

import (
	"math"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/page"
	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Mix linearly interpolates from c towards o. The amount is clamped to [0, 1].
//
// Parameters:
//   - o: the color at t = 1
//   - t: the interpolation amount
//
// Returns:
//   - Color: the mixed color
func (c Color) Mix(o Color, t float64) Color {
	t = common.ClampFinite(t, 0, 1, 0)
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

func (c Color) wgpu() wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// Palette maps a page frame to the backdrop color the renderer clears to.
type Palette struct {
	// Base is the backdrop at rest.
	Base Color

	// Scrolled is reached when the smoothed scroll offset's magnitude hits ScrollRange.
	Scrolled    Color
	ScrollRange float64

	// Engaged is blended in by EngagedMix while the pointer engages the featured asset.
	Engaged    Color
	EngagedMix float64

	// Flipping is blended in proportionally to the share of grid cells mid-flip.
	Flipping Color
}

// DefaultPalette returns the palette used when none is configured.
func DefaultPalette() Palette {
	return Palette{
		Base:        Color{R: 0.1, G: 0.1, B: 0.1},
		Scrolled:    Color{R: 0.08, G: 0.12, B: 0.22},
		ScrollRange: 300,
		Engaged:     Color{R: 0.22, G: 0.16, B: 0.1},
		EngagedMix:  0.35,
		Flipping:    Color{R: 0.3, G: 0.3, B: 0.34},
	}
}

// Backdrop returns the clear color for a frame.
//
// Parameters:
//   - f: the frame
//
// Returns:
//   - Color: the backdrop color
func (p Palette) Backdrop(f page.Frame) Color {
	c := p.Base
	if p.ScrollRange > 0 {
		c = c.Mix(p.Scrolled, math.Abs(f.Scroll.Offset)/p.ScrollRange)
	}
	if f.Engaged {
		c = c.Mix(p.Engaged, p.EngagedMix)
	}

	total, flipping := 0, 0
	for _, g := range f.Grids {
		for _, v := range g {
			total++
			if v.Flipping {
				flipping++
			}
		}
	}
	if total > 0 {
		c = c.Mix(p.Flipping, float64(flipping)/float64(total))
	}
	return c
}
