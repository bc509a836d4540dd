package animator

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAsset() *asset.Asset {
	s := float32(math.Sin(math.Pi / 4))
	c := float32(math.Cos(math.Pi / 4))
	return &asset.Asset{
		Key: "rig.glb",
		Nodes: []asset.Node{
			{Name: "root", Parent: -1, Local: common.IdentityTRS(), Skin: -1},
		},
		Roots: []int{0},
		Clips: []asset.Clip{
			{Name: "slide", Duration: 1, Channels: []asset.Channel{{
				Node: 0, Path: asset.PathTranslation,
				Times:  []float32{0, 1},
				Values: []float32{0, 0, 0, 2, 0, 0},
			}}},
			{Name: "turn", Duration: 1, Channels: []asset.Channel{{
				Node: 0, Path: asset.PathRotation,
				Times:  []float32{0, 1},
				Values: []float32{0, 0, 0, 1, 0, s, 0, c},
			}}},
			{Name: "blink", Duration: 0.5, Channels: []asset.Channel{{
				Node: 0, Path: asset.PathScale, Interpolation: asset.InterpolationStep,
				Times:  []float32{0, 0.5},
				Values: []float32{1, 1, 1, 2, 2, 2},
			}}},
			{Name: "ease", Duration: 1, Channels: []asset.Channel{{
				Node: 0, Path: asset.PathTranslation, Interpolation: asset.InterpolationCubicSpline,
				Times: []float32{0, 1},
				Values: []float32{
					0, 0, 0, 0, 0, 0, 0, 0, 0,
					0, 0, 0, 0, 1, 0, 0, 0, 0,
				},
			}}},
		},
	}
}

func newTestAnimator(t *testing.T) (Animator, *asset.Instance) {
	t.Helper()
	in := asset.Instantiate(testAsset())
	require.NotNil(t, in)
	return NewAnimator(in), in
}

func TestAnimator_LinearTranslation(t *testing.T) {
	a, in := newTestAnimator(t)
	require.NoError(t, a.Play("slide", LoopRepeat))

	a.Advance(0.25)
	assert.InDelta(t, 0.5, in.Local(0).Translation.X(), 1e-6)

	tm, ok := a.Time("slide")
	require.True(t, ok)
	assert.InDelta(t, 0.25, tm, 1e-6)
}

func TestAnimator_LoopModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     LoopMode
		advance  float64
		wantTime float32
		playing  bool
	}{
		{"repeat wraps", LoopRepeat, 1.25, 0.25, true},
		{"once holds the end", LoopOnce, 1.5, 1, false},
		{"pingpong reflects", LoopPingPong, 1.25, 0.75, true},
		{"pingpong second lap", LoopPingPong, 2.25, 0.25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, in := newTestAnimator(t)
			require.NoError(t, a.Play("slide", tt.mode))

			a.Advance(tt.advance)
			tm, ok := a.Time("slide")
			require.True(t, ok)
			assert.InDelta(t, tt.wantTime, tm, 1e-6)
			assert.InDelta(t, 2*tt.wantTime, in.Local(0).Translation.X(), 1e-5)
			assert.Equal(t, tt.playing, len(a.Playing()) == 1)
		})
	}
}

func TestAnimator_RotationSlerp(t *testing.T) {
	a, in := newTestAnimator(t)
	require.NoError(t, a.Play("turn", LoopOnce))

	a.Advance(0.5)
	q := in.Local(0).Rotation
	assert.InDelta(t, math.Cos(math.Pi/8), q.W, 1e-5)
	assert.InDelta(t, math.Sin(math.Pi/8), q.V.Y(), 1e-5)
	assert.InDelta(t, 1, q.Len(), 1e-5)
}

func TestSlerp_TakesShortArc(t *testing.T) {
	a := mgl32.QuatIdent()
	b := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}).Scale(-1)

	mid := slerp(a, b, 0.5)
	assert.InDelta(t, math.Cos(math.Pi/8), mid.W, 1e-5)
}

func TestAnimator_StepScale(t *testing.T) {
	a, in := newTestAnimator(t)
	require.NoError(t, a.Play("blink", LoopOnce))

	a.Advance(0.49)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, in.Local(0).Scale)
	a.Advance(0.01)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, in.Local(0).Scale)
}

func TestAnimator_CubicSpline(t *testing.T) {
	a, in := newTestAnimator(t)
	require.NoError(t, a.Play("ease", LoopOnce))

	a.Advance(0.25)
	assert.InDelta(t, 0.15625, in.Local(0).Translation.Y(), 1e-6)
	a.Advance(0.25)
	assert.InDelta(t, 0.5, in.Local(0).Translation.Y(), 1e-6)
}

func TestAnimator_UnknownClip(t *testing.T) {
	a, _ := newTestAnimator(t)
	err := a.Play("dance", LoopRepeat)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClip))
	assert.Empty(t, a.Playing())
}

func TestAnimator_PlayAllAndStop(t *testing.T) {
	a, in := newTestAnimator(t)
	a.PlayAll()
	assert.Equal(t, []string{"slide", "turn", "blink", "ease"}, a.Playing())

	a.Stop("turn")
	assert.Equal(t, []string{"slide", "blink", "ease"}, a.Playing())
	_, ok := a.Time("turn")
	assert.False(t, ok)

	a.Advance(0.5)
	a.StopAll()
	assert.Empty(t, a.Playing())
	assert.Equal(t, common.IdentityTRS(), in.Local(0))
}

func TestAnimator_InstancesIndependent(t *testing.T) {
	shared := testAsset()
	first := asset.Instantiate(shared)
	second := asset.Instantiate(shared)

	a := NewAnimator(first, WithAutoPlay(LoopRepeat))
	NewAnimator(second)

	a.Advance(0.25)
	assert.NotEqual(t, common.IdentityTRS(), first.Local(0))
	assert.Equal(t, common.IdentityTRS(), second.Local(0))
	assert.Equal(t, common.IdentityTRS(), shared.Nodes[0].Local)
}

func TestAnimator_Speed(t *testing.T) {
	in := asset.Instantiate(testAsset())
	a := NewAnimator(in, WithSpeed(2))
	require.NoError(t, a.Play("slide", LoopOnce))

	a.Advance(0.25)
	assert.InDelta(t, 1, in.Local(0).Translation.X(), 1e-6)

	a.SetSpeed(-1)
	a.Advance(math.NaN())
	tm, _ := a.Time("slide")
	assert.InDelta(t, 0.5, tm, 1e-6)
}

func TestAnimator_RestartResetsTime(t *testing.T) {
	a, _ := newTestAnimator(t)
	require.NoError(t, a.Play("slide", LoopRepeat))
	a.Advance(0.4)
	require.NoError(t, a.Play("slide", LoopRepeat))

	tm, ok := a.Time("slide")
	require.True(t, ok)
	assert.Zero(t, tm)
	assert.Equal(t, []string{"slide"}, a.Playing())
}
