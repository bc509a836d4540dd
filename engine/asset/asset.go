// Package asset loads and caches animated model assets and hands out private, mutable
// instances of them. A loaded Asset is shared by every consumer requesting the same key and
// must be treated as read-only; Instantiate produces the per-viewer copy that playback mutates.
package asset

import (
	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects how an asset is consumed.
type Mode int

const (
	// ModeSkinned keeps the full hierarchy, skins and clips for animated playback.
	ModeSkinned Mode = iota

	// ModeDecorative extracts meshes only and centres each mesh's geometry on its local origin.
	ModeDecorative
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSkinned:
		return "skinned"
	case ModeDecorative:
		return "decorative"
	default:
		return "unknown"
	}
}

// Path is the node property a clip channel animates.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

// Interpolation is the keyframe interpolation of a clip channel.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
)

// Node is one entry of an asset's transform hierarchy.
type Node struct {
	// Name is the authored node name, possibly empty.
	Name string

	// Parent is the index of the parent node, or -1 for a root.
	Parent int

	// Children are the indices of the child nodes.
	Children []int

	// Local is the node transform relative to its parent in the bind pose.
	Local common.TRS

	// Meshes are indices into Asset.Meshes drawn at this node.
	Meshes []int

	// Skin is an index into Asset.Skins, or -1.
	Skin int
}

// Mesh is one drawable primitive. Geometry slices are shared by every instance and never mutated
// after load.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32

	// Joints and Weights are the per-vertex skinning influences; empty for rigid meshes.
	Joints  [][4]uint16
	Weights [][4]float32

	// Min and Max are the axis-aligned bounds of Positions.
	Min, Max mgl32.Vec3
}

// Skin binds a set of joint nodes to skinned meshes.
type Skin struct {
	Name string

	// Joints are node indices, one per joint.
	Joints []int

	// InverseBind holds one inverse bind matrix per joint. Identity when not authored.
	InverseBind []mgl32.Mat4
}

// Channel animates one property of one node.
type Channel struct {
	Node          int
	Path          Path
	Interpolation Interpolation

	// Times are the keyframe timestamps in seconds, strictly increasing.
	Times []float32

	// Values holds the flattened keyframe outputs: 3 floats per key for translation and
	// scale, 4 (x, y, z, w) for rotation. Cubic-spline channels store in-tangent, value and
	// out-tangent for every key.
	Values []float32
}

// Width returns the number of floats of one output element.
func (c Channel) Width() int {
	if c.Path == PathRotation {
		return 4
	}
	return 3
}

// Clip is a named animation.
type Clip struct {
	Name     string
	Duration float32
	Channels []Channel
}

// Asset is a loaded, immutable model: hierarchy, geometry, skins and clips.
type Asset struct {
	Key  string
	Mode Mode

	Nodes  []Node
	Roots  []int
	Meshes []*Mesh
	Skins  []Skin
	Clips  []Clip
}

// NodeIndex returns the index of the first node with the given name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - int: the node index, or -1 if absent
func (a *Asset) NodeIndex(name string) int {
	for i := range a.Nodes {
		if a.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// Clip returns the clip with the given name.
//
// Parameters:
//   - name: the clip name
//
// Returns:
//   - *Clip: the clip, or nil if absent
func (a *Asset) Clip(name string) *Clip {
	for i := range a.Clips {
		if a.Clips[i].Name == name {
			return &a.Clips[i]
		}
	}
	return nil
}

// ClipNames returns the names of every clip in authored order.
func (a *Asset) ClipNames() []string {
	names := make([]string, len(a.Clips))
	for i := range a.Clips {
		names[i] = a.Clips[i].Name
	}
	return names
}

// bounds computes the axis-aligned bounds of a position set.
func bounds(positions [][3]float32) (mgl32.Vec3, mgl32.Vec3) {
	if len(positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := mgl32.Vec3(positions[0])
	hi := lo
	for _, p := range positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

// centre returns a copy of m translated so its bounding box is centred on the origin.
func centre(m *Mesh) *Mesh {
	mid := m.Min.Add(m.Max).Mul(0.5)
	out := *m
	out.Positions = make([][3]float32, len(m.Positions))
	for i, p := range m.Positions {
		out.Positions[i] = [3]float32{p[0] - mid[0], p[1] - mid[1], p[2] - mid[2]}
	}
	out.Min = m.Min.Sub(mid)
	out.Max = m.Max.Sub(mid)
	return &out
}

// decorative reduces a skinned asset to centred, rigid geometry.
// Skins and clips are dropped and every mesh is centred exactly once here.
func decorative(a *Asset) *Asset {
	out := &Asset{
		Key:    a.Key,
		Mode:   ModeDecorative,
		Nodes:  make([]Node, len(a.Nodes)),
		Roots:  append([]int(nil), a.Roots...),
		Meshes: make([]*Mesh, len(a.Meshes)),
	}
	for i, n := range a.Nodes {
		n.Skin = -1
		out.Nodes[i] = n
	}
	for i, m := range a.Meshes {
		c := centre(m)
		c.Joints, c.Weights = nil, nil
		out.Meshes[i] = c
	}
	return out
}
