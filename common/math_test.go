package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestModelMatrix_TranslatesAndScales(t *testing.T) {
	m := ModelMatrix(Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Scale:    UniformScale(2),
	})

	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 3, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
	assert.InDelta(t, 3, p.Z(), 1e-6)
}

func TestModelMatrix_YawThenPitch(t *testing.T) {
	m := ModelMatrix(Transform{
		Rotation: mgl32.Vec2{0, math.Pi / 2},
		Scale:    UniformScale(1),
	})

	// A quarter turn of yaw carries +X onto -Z.
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, -1, p.Z(), 1e-6)
}

func TestDecomposeMatrix(t *testing.T) {
	want := TRS{
		Translation: mgl32.Vec3{4, -1, 2},
		Rotation:    mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0}),
		Scale:       mgl32.Vec3{2, 3, 0.5},
	}
	got := DecomposeMatrix(want.Mat4())

	assert.True(t, got.Translation.ApproxEqualThreshold(want.Translation, 1e-5))
	assert.True(t, got.Scale.ApproxEqualThreshold(want.Scale, 1e-5))
	assert.InDelta(t, 1, math.Abs(float64(got.Rotation.Dot(want.Rotation))), 1e-5)

	flat := DecomposeMatrix(mgl32.Scale3D(0, 1, 1))
	assert.Equal(t, mgl32.QuatIdent(), flat.Rotation)
	assert.Zero(t, flat.Scale.X())
}

func TestClampFinite(t *testing.T) {
	assert.Equal(t, 1.0, ClampFinite(math.Inf(1), -1, 1, 0))
	assert.Equal(t, -1.0, ClampFinite(math.Inf(-1), -1, 1, 0))
	assert.Equal(t, 0.5, ClampFinite(math.NaN(), -1, 1, 0.5))
	assert.Equal(t, 3, Clamp(7, 0, 3))
}
