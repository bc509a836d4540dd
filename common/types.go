// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Transform is the rotation/position/scale triple applied to the featured object.
// The same shape is used for the live (smoothed) transform and the per-tick target transform.
type Transform struct {
	// Rotation holds the pitch (X) and yaw (Y) angles in radians.
	Rotation mgl32.Vec2

	// Position is the translation in the viewer's local space.
	Position mgl32.Vec3

	// Scale is the per-axis scale factor.
	Scale mgl32.Vec3
}

// Pose is a base position/scale pair the featured object is pulled toward.
// The pointer resolver selects between a resting and an engaged Pose.
type Pose struct {
	// Position is the base translation of the pose.
	Position mgl32.Vec3

	// Scale is the base scale of the pose.
	Scale mgl32.Vec3
}

// UniformScale returns a Vec3 with s in every component.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - mgl32.Vec3: the uniform scale vector
func UniformScale(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}

// TransformFromPose builds a Transform with zero rotation from a Pose.
//
// Parameters:
//   - p: the pose to convert
//
// Returns:
//   - Transform: a transform carrying the pose position and scale
func TransformFromPose(p Pose) Transform {
	return Transform{
		Position: p.Position,
		Scale:    p.Scale,
	}
}

// TRS is a decomposed node transform used by asset hierarchies and animation sampling.
type TRS struct {
	// Translation is the position offset relative to the parent node.
	Translation mgl32.Vec3

	// Rotation is the orientation relative to the parent node.
	Rotation mgl32.Quat

	// Scale is the scale relative to the parent node.
	Scale mgl32.Vec3
}

// IdentityTRS returns a TRS with no translation, identity rotation and unit scale.
//
// Returns:
//   - TRS: the identity transform
func IdentityTRS() TRS {
	return TRS{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Mat4 composes the TRS into a column-major local matrix (T * R * S).
//
// Returns:
//   - mgl32.Mat4: the composed matrix
func (t TRS) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	rotate := t.Rotation.Normalize().Mat4()
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(rotate).Mul4(scale)
}
