package asset

import (
	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is a private, mutable copy of an Asset's hierarchy and skins. Playback mutates the
// node locals of one Instance; other instances of the same asset are never affected.
// Geometry is not copied: Meshes returns the asset's shared, read-only meshes.
// An Instance is not safe for concurrent use.
type Instance struct {
	asset *Asset

	nodes  []Node
	locals []common.TRS
	skins  []Skin

	world []mgl32.Mat4
	dirty bool
}

// Instantiate creates an Instance of a, starting in the asset's bind pose.
//
// Parameters:
//   - a: the shared asset
//
// Returns:
//   - *Instance: the new instance, or nil if a is nil
func Instantiate(a *Asset) *Instance {
	if a == nil {
		return nil
	}

	in := &Instance{
		asset:  a,
		nodes:  make([]Node, len(a.Nodes)),
		locals: make([]common.TRS, len(a.Nodes)),
		skins:  make([]Skin, len(a.Skins)),
		world:  make([]mgl32.Mat4, len(a.Nodes)),
		dirty:  true,
	}
	for i, n := range a.Nodes {
		n.Children = append([]int(nil), n.Children...)
		n.Meshes = append([]int(nil), n.Meshes...)
		in.nodes[i] = n
		in.locals[i] = n.Local
	}
	for i, s := range a.Skins {
		in.skins[i] = Skin{
			Name:        s.Name,
			Joints:      append([]int(nil), s.Joints...),
			InverseBind: append([]mgl32.Mat4(nil), s.InverseBind...),
		}
	}
	return in
}

// Asset returns the shared asset this instance was created from.
func (in *Instance) Asset() *Asset {
	return in.asset
}

// NodeCount returns the number of nodes in the hierarchy.
func (in *Instance) NodeCount() int {
	return len(in.nodes)
}

// Node returns a copy of the node at index i.
func (in *Instance) Node(i int) (Node, bool) {
	if i < 0 || i >= len(in.nodes) {
		return Node{}, false
	}
	return in.nodes[i], true
}

// NodeIndex returns the index of the first node with the given name, or -1.
func (in *Instance) NodeIndex(name string) int {
	for i := range in.nodes {
		if in.nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// Local returns the current local transform of node i, or the identity if i is out of range.
func (in *Instance) Local(i int) common.TRS {
	if i < 0 || i >= len(in.locals) {
		return common.IdentityTRS()
	}
	return in.locals[i]
}

// SetLocal replaces the local transform of node i. Out-of-range indices are ignored.
//
// Parameters:
//   - i: the node index
//   - t: the new local transform
func (in *Instance) SetLocal(i int, t common.TRS) {
	if i < 0 || i >= len(in.locals) {
		return
	}
	in.locals[i] = t
	in.dirty = true
}

// ResetPose restores every node to the asset's bind pose.
func (in *Instance) ResetPose() {
	for i := range in.nodes {
		in.locals[i] = in.nodes[i].Local
	}
	in.dirty = true
}

// World returns the model-space matrix of node i, or the identity if i is out of range.
//
// Parameters:
//   - i: the node index
//
// Returns:
//   - mgl32.Mat4: the node's world matrix
func (in *Instance) World(i int) mgl32.Mat4 {
	if i < 0 || i >= len(in.world) {
		return mgl32.Ident4()
	}
	in.update()
	return in.world[i]
}

// JointMatrices returns the skinning matrices of a skin: world(joint) × inverseBind(joint).
//
// Parameters:
//   - skin: the skin index
//
// Returns:
//   - []mgl32.Mat4: one matrix per joint, or nil if skin is out of range
func (in *Instance) JointMatrices(skin int) []mgl32.Mat4 {
	if skin < 0 || skin >= len(in.skins) {
		return nil
	}
	in.update()

	s := in.skins[skin]
	out := make([]mgl32.Mat4, len(s.Joints))
	for j, node := range s.Joints {
		out[j] = in.world[node].Mul4(s.InverseBind[j])
	}
	return out
}

// Meshes returns the shared geometry of the asset. Callers must not modify it.
func (in *Instance) Meshes() []*Mesh {
	return in.asset.Meshes
}

// update recomputes world matrices from the roots down when a local changed.
func (in *Instance) update() {
	if !in.dirty {
		return
	}

	var visit func(i int, parent mgl32.Mat4)
	visit = func(i int, parent mgl32.Mat4) {
		in.world[i] = parent.Mul4(in.locals[i].Mat4())
		for _, c := range in.nodes[i].Children {
			visit(c, in.world[i])
		}
	}
	for i := range in.nodes {
		if in.nodes[i].Parent == -1 {
			visit(i, mgl32.Ident4())
		}
	}
	in.dirty = false
}
