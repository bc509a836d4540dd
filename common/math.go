package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelMatrix constructs a 4x4 model matrix from a Transform.
// The rotation order is Y * X (yaw then pitch, no roll). The matrix is column-major.
//
// Parameters:
//   - t: the transform to convert
//
// Returns:
//   - mgl32.Mat4: the model matrix
func ModelMatrix(t Transform) mgl32.Mat4 {
	return BuildModelMatrix(
		t.Position[0], t.Position[1], t.Position[2],
		t.Rotation[0], t.Rotation[1], 0,
		t.Scale[0], t.Scale[1], t.Scale[2],
	)
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - posX, posY, posZ: translation in world space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the model matrix
func BuildModelMatrix(posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) mgl32.Mat4 {
	cx := float32(math.Cos(float64(rotX)))
	sx := float32(math.Sin(float64(rotX)))
	cy := float32(math.Cos(float64(rotY)))
	sy := float32(math.Sin(float64(rotY)))
	cz := float32(math.Cos(float64(rotZ)))
	sz := float32(math.Sin(float64(rotZ)))

	var out mgl32.Mat4

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1

	return out
}

// DecomposeMatrix splits an affine column-major matrix into translation, rotation and scale.
// Shear is not supported; a zero-length basis column yields a zero scale on that axis and
// an identity rotation.
//
// Parameters:
//   - m: the matrix to decompose
//
// Returns:
//   - TRS: the decomposed transform
func DecomposeMatrix(m mgl32.Mat4) TRS {
	t := mgl32.Vec3{m[12], m[13], m[14]}
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()

	if sx == 0 || sy == 0 || sz == 0 {
		return TRS{Translation: t, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{sx, sy, sz}}
	}

	rot := mgl32.Mat3{
		m[0] / sx, m[1] / sx, m[2] / sx,
		m[4] / sy, m[5] / sy, m[6] / sy,
		m[8] / sz, m[9] / sz, m[10] / sz,
	}
	return TRS{
		Translation: t,
		Rotation:    mgl32.Mat4ToQuat(rot.Mat4()).Normalize(),
		Scale:       mgl32.Vec3{sx, sy, sz},
	}
}
