package motion

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_GeometricConvergence(t *testing.T) {
	for _, factor := range []float32{0.01, 0.05, 0.25, 0.5, 0.9} {
		current := float32(10)
		const target = float32(-2)
		initial := current - target
		for n := 1; n <= 40; n++ {
			current = Smooth(current, target, factor)
			want := float64(initial) * math.Pow(float64(1-factor), float64(n))
			assert.InDelta(t, want, float64(current-target), 1e-3, "factor %v after %d ticks", factor, n)
		}
	}
}

func TestSmooth_FactorBounds(t *testing.T) {
	assert.Equal(t, float32(3), Smooth(3, 7, 1))
	assert.Equal(t, float32(7), Smooth(3, 7, 2))
	assert.Equal(t, float32(3), Smooth(3, 7, 0))
	assert.Equal(t, float32(3), Smooth(3, 7, -1))
	assert.Equal(t, float32(3), Smooth(3, 7, float32(math.NaN())))
}

func TestSmoothTransform_ChannelsIndependent(t *testing.T) {
	current := common.Transform{
		Rotation: mgl32.Vec2{0, 1},
		Position: mgl32.Vec3{1, 2, 3},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	target := current
	target.Position[1] = 12

	next := SmoothTransform(current, target, 0.5)
	assert.Equal(t, current.Rotation, next.Rotation)
	assert.Equal(t, current.Scale, next.Scale)
	assert.Equal(t, mgl32.Vec3{1, 7, 3}, next.Position)
}

func TestKeyframes_ScrollKnots(t *testing.T) {
	k := MustKeyframes([]float64{0, 0.33, 0.66, 1}, []float64{0, -300, 200, 0})

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.33, -300},
		{0.66, 200},
		{1, 0},
		{0.165, -150},
		{0.495, -50},
		{0.83, 100},
		{-0.5, 0},
		{1.5, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, k.Map(tt.in), 1e-9, "progress %v", tt.in)
	}
	assert.Equal(t, 0.0, k.Map(math.NaN()))
	assert.Equal(t, 4, k.Len())
}

func TestNewKeyframes_Validation(t *testing.T) {
	_, err := NewKeyframes(nil, nil)
	assert.Error(t, err)

	_, err = NewKeyframes([]float64{0, 1}, []float64{0})
	assert.Error(t, err)

	_, err = NewKeyframes([]float64{0, 0.5, 0.5}, []float64{0, 1, 2})
	assert.Error(t, err)

	_, err = NewKeyframes([]float64{0, math.Inf(1)}, []float64{0, 1})
	assert.Error(t, err)

	inputs := []float64{0, 1}
	k, err := NewKeyframes(inputs, []float64{0, 10})
	require.NoError(t, err)
	inputs[1] = 100
	assert.Equal(t, 5.0, k.Map(0.5), "knots must be copied")
}

func TestSpring_ConvergesWithoutOvershoot(t *testing.T) {
	s := NewSpring(DefaultSpringConfig(), 0)
	const dt = 1.0 / 60.0

	settled := -1
	for i := 0; i < 1200; i++ {
		v := s.Update(-300, dt)
		require.GreaterOrEqual(t, v, -300.0-1e-9, "overdamped spring must not overshoot")
		if s.AtRest() {
			settled = i
			break
		}
	}
	require.NotEqual(t, -1, settled, "spring never settled")
	assert.Equal(t, -300.0, s.Value())
	assert.Equal(t, 0.0, s.Velocity())
}

func TestSpring_LagsBehindStepInput(t *testing.T) {
	s := NewSpring(DefaultSpringConfig(), 0)
	first := s.Update(200, 1.0/60.0)
	assert.Greater(t, first, 0.0)
	assert.Less(t, first, 20.0, "a single tick must not jump to the input")
}

func TestSpring_VariableStepsAgreeWithFixedSteps(t *testing.T) {
	fixed := NewSpring(DefaultSpringConfig(), 0)
	for i := 0; i < 60; i++ {
		fixed.Update(100, 1.0/60.0)
	}

	variable := NewSpring(DefaultSpringConfig(), 0)
	for i := 0; i < 30; i++ {
		variable.Update(100, 1.0/30.0)
	}

	assert.InDelta(t, fixed.Value(), variable.Value(), 1.0)
}

func TestSpring_LongTickIsFullyIntegrated(t *testing.T) {
	stepped := NewSpring(DefaultSpringConfig(), 0)
	for i := 0; i < 30; i++ {
		stepped.Update(-300, 1.0/30.0)
	}

	hitch := NewSpring(DefaultSpringConfig(), 0)
	hitch.Update(-300, 1.0)

	assert.InDelta(t, stepped.Value(), hitch.Value(), 1.0)
	assert.Less(t, hitch.Value(), -200.0)
}

func TestSpring_UndampedConfigStillSettles(t *testing.T) {
	for name, damping := range map[string]float64{"zero": 0, "negative": -4, "tiny": 1e-6} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultSpringConfig()
			cfg.Damping = damping
			s := NewSpring(cfg, 0)

			for i := 0; i < 60*60 && !s.AtRest(); i++ {
				s.Update(-300, 1.0/60.0)
			}
			assert.True(t, s.AtRest(), "spring kept oscillating")
			assert.Equal(t, -300.0, s.Value())
		})
	}
}

func TestSpring_IgnoresBadInput(t *testing.T) {
	s := NewSpring(DefaultSpringConfig(), 5)
	assert.Equal(t, 5.0, s.Update(math.NaN(), 1.0/60.0))
	assert.Equal(t, 5.0, s.Update(10, 0))
	assert.Equal(t, 5.0, s.Update(10, -1))
	assert.Equal(t, 10.0, s.Target())
}

func TestSpring_ReleaseMakesFilterInert(t *testing.T) {
	s := NewSpring(DefaultSpringConfig(), 0)
	s.Update(100, 1.0/60.0)
	s.Release()
	before := s.Value()

	assert.True(t, s.Released())
	assert.Equal(t, before, s.Update(500, 1))
	s.Reset(42)
	assert.Equal(t, before, s.Value())
}

func TestSpringConfig_Conversion(t *testing.T) {
	cfg := DefaultSpringConfig()
	assert.InDelta(t, math.Sqrt(30), cfg.AngularFrequency(), 1e-9)
	assert.InDelta(t, 20/(2*math.Sqrt(30)), cfg.DampingRatio(), 1e-9)
	assert.Zero(t, SpringConfig{}.AngularFrequency())
}

func TestEasing_Endpoints(t *testing.T) {
	for name, ease := range map[string]Easing{
		"linear":    Linear,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
	} {
		assert.Equal(t, 0.0, ease(0), name)
		assert.Equal(t, 1.0, ease(1), name)
		assert.Equal(t, 0.0, ease(-1), name)
		assert.Equal(t, 1.0, ease(2), name)
	}
	assert.Equal(t, 0.0, ExpoOut(0))
	assert.Equal(t, 1.0, ExpoOut(1))
}

func TestEaseOut_MonotoneAndFrontLoaded(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		x := float64(i) / 100
		y := EaseOut(x)
		assert.GreaterOrEqual(t, y, prev)
		prev = y
	}
	assert.Greater(t, EaseOut(0.5), 0.5, "ease-out progresses faster than linear early on")
}

func TestCubicBezier_LinearControlPoints(t *testing.T) {
	ease := CubicBezier(0.25, 0.25, 0.75, 0.75)
	for _, x := range []float64{0.1, 0.3, 0.5, 0.9} {
		assert.InDelta(t, x, ease(x), 1e-4)
	}
}
