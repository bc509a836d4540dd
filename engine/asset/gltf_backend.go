package asset

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfBackend decodes glTF 2.0 documents, text or binary. External buffer URIs are not
// resolved; text documents must embed their buffers as data URIs.
type gltfBackend struct{}

var _ backend = &gltfBackend{}

// newGLTFBackend creates a new glTF backend.
//
// Returns:
//   - backend: the glTF/GLB backend
func newGLTFBackend() backend {
	return &gltfBackend{}
}

func (b *gltfBackend) Extensions() []string {
	return []string{".gltf", ".glb"}
}

func (b *gltfBackend) Decode(key string, r io.Reader) (*Asset, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "decode gltf %s", key)
	}
	return convertDocument(key, doc)
}

// indexOf normalizes a glTF index field, required or optional, to an int.
func indexOf[T uint32 | *uint32](v T) (int, bool) {
	switch x := any(v).(type) {
	case uint32:
		return int(x), true
	case *uint32:
		if x == nil {
			return -1, false
		}
		return int(*x), true
	}
	return -1, false
}

// accessor returns the accessor at idx or an error if it is out of range.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// convertDocument maps a parsed glTF document onto an Asset in ModeSkinned.
//
// Parameters:
//   - key: the asset key
//   - doc: the parsed document
//
// Returns:
//   - *Asset: the converted asset
//   - error: error if an accessor cannot be read or a reference is out of range
func convertDocument(key string, doc *gltf.Document) (*Asset, error) {
	a := &Asset{Key: key, Mode: ModeSkinned}

	meshMap, err := convertMeshes(doc, a)
	if err != nil {
		return nil, err
	}

	a.Nodes = make([]Node, len(doc.Nodes))
	for i := range a.Nodes {
		a.Nodes[i].Parent = -1
		a.Nodes[i].Skin = -1
	}
	for i, n := range doc.Nodes {
		node := &a.Nodes[i]
		node.Name = n.Name
		node.Local = nodeTRS(n.Matrix, n.Translation, n.Rotation, n.Scale)
		for _, c := range n.Children {
			if int(c) >= len(a.Nodes) {
				return nil, errors.Errorf("node %d: child %d out of range", i, c)
			}
			node.Children = append(node.Children, int(c))
			a.Nodes[c].Parent = i
		}
		if m, ok := indexOf(n.Mesh); ok {
			if m >= len(meshMap) {
				return nil, errors.Errorf("node %d: mesh %d out of range", i, m)
			}
			node.Meshes = meshMap[m]
		}
		if s, ok := indexOf(n.Skin); ok {
			node.Skin = s
		}
	}

	a.Roots = sceneRoots(doc, a.Nodes)

	if a.Skins, err = convertSkins(doc); err != nil {
		return nil, err
	}
	if a.Clips, err = convertClips(doc); err != nil {
		return nil, err
	}

	return a, nil
}

// sceneRoots returns the root nodes of the default scene, falling back to every parentless node.
func sceneRoots(doc *gltf.Document, nodes []Node) []int {
	scene := 0
	if s, ok := indexOf(doc.Scene); ok {
		scene = s
	}
	var roots []int
	if scene < len(doc.Scenes) {
		for _, r := range doc.Scenes[scene].Nodes {
			if int(r) < len(nodes) && nodes[r].Parent == -1 {
				roots = append(roots, int(r))
			}
		}
	}
	if len(roots) > 0 {
		return roots
	}
	for i := range nodes {
		if nodes[i].Parent == -1 {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeTRS builds a local transform from either the node matrix or its TRS properties.
func nodeTRS(matrix [16]float32, translation [3]float32, rotation [4]float32, scale [3]float32) common.TRS {
	m := mgl32.Mat4(matrix)
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return common.DecomposeMatrix(m)
	}

	trs := common.IdentityTRS()
	trs.Translation = translation
	if rotation != ([4]float32{}) {
		trs.Rotation = mgl32.Quat{W: rotation[3], V: mgl32.Vec3{rotation[0], rotation[1], rotation[2]}}.Normalize()
	}
	if scale != ([3]float32{}) {
		trs.Scale = scale
	}
	return trs
}

// convertMeshes flattens every glTF primitive into one Mesh and returns, per glTF mesh, the
// indices of its primitives in a.Meshes.
func convertMeshes(doc *gltf.Document, a *Asset) ([][]int, error) {
	meshMap := make([][]int, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			name := gm.Name
			if len(gm.Primitives) > 1 {
				name = fmt.Sprintf("%s_%d", gm.Name, pi)
			}
			m, err := convertPrimitive(doc, name, prim.Attributes, prim.Indices)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d", gm.Name, pi)
			}
			meshMap[mi] = append(meshMap[mi], len(a.Meshes))
			a.Meshes = append(a.Meshes, m)
		}
	}
	return meshMap, nil
}

func convertPrimitive(doc *gltf.Document, name string, attributes map[string]uint32, indices *uint32) (*Mesh, error) {
	m := &Mesh{Name: name}

	pos, ok := attributes["POSITION"]
	if !ok {
		return nil, errors.New("missing POSITION attribute")
	}
	acr, err := accessor(doc, int(pos))
	if err != nil {
		return nil, err
	}
	if m.Positions, err = modeler.ReadPosition(doc, acr, nil); err != nil {
		return nil, errors.Wrap(err, "read positions")
	}
	m.Min, m.Max = bounds(m.Positions)

	if idx, ok := attributes["NORMAL"]; ok {
		if acr, err = accessor(doc, int(idx)); err != nil {
			return nil, err
		}
		if m.Normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read normals")
		}
	}
	if idx, ok := attributes["JOINTS_0"]; ok {
		if acr, err = accessor(doc, int(idx)); err != nil {
			return nil, err
		}
		if m.Joints, err = modeler.ReadJoints(doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read joints")
		}
	}
	if idx, ok := attributes["WEIGHTS_0"]; ok {
		if acr, err = accessor(doc, int(idx)); err != nil {
			return nil, err
		}
		if m.Weights, err = modeler.ReadWeights(doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read weights")
		}
	}

	if i, ok := indexOf(indices); ok {
		if acr, err = accessor(doc, i); err != nil {
			return nil, err
		}
		if m.Indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
	}
	return m, nil
}

func convertSkins(doc *gltf.Document) ([]Skin, error) {
	skins := make([]Skin, 0, len(doc.Skins))
	for si, gs := range doc.Skins {
		s := Skin{
			Name:        gs.Name,
			Joints:      make([]int, len(gs.Joints)),
			InverseBind: make([]mgl32.Mat4, len(gs.Joints)),
		}
		for j, node := range gs.Joints {
			s.Joints[j] = int(node)
			s.InverseBind[j] = mgl32.Ident4()
		}

		if idx, ok := indexOf(gs.InverseBindMatrices); ok {
			acr, err := accessor(doc, idx)
			if err != nil {
				return nil, errors.Wrapf(err, "skin %d", si)
			}
			raw, err := modeler.ReadAccessor(doc, acr, nil)
			if err != nil {
				return nil, errors.Wrapf(err, "skin %d: read inverse bind matrices", si)
			}
			mats, ok := raw.([][4][4]float32)
			if !ok {
				return nil, errors.Errorf("skin %d: inverse bind matrices are %T, want float mat4", si, raw)
			}
			for j := 0; j < len(mats) && j < len(s.InverseBind); j++ {
				var m mgl32.Mat4
				for c := 0; c < 4; c++ {
					copy(m[c*4:c*4+4], mats[j][c][:])
				}
				s.InverseBind[j] = m
			}
		}
		skins = append(skins, s)
	}
	return skins, nil
}

func convertClips(doc *gltf.Document) ([]Clip, error) {
	clips := make([]Clip, 0, len(doc.Animations))
	for ai, anim := range doc.Animations {
		clip := Clip{Name: anim.Name}
		if clip.Name == "" {
			clip.Name = fmt.Sprintf("animation_%d", ai)
		}

		for ci, ch := range anim.Channels {
			node, ok := indexOf(ch.Target.Node)
			if !ok {
				continue
			}

			var path Path
			switch ch.Target.Path {
			case gltf.TRSTranslation:
				path = PathTranslation
			case gltf.TRSRotation:
				path = PathRotation
			case gltf.TRSScale:
				path = PathScale
			default:
				// Morph target weights are not played back.
				continue
			}

			si, _ := indexOf(ch.Sampler)
			if si < 0 || si >= len(anim.Samplers) {
				return nil, errors.Errorf("animation %q channel %d: sampler %d out of range", clip.Name, ci, si)
			}
			sampler := anim.Samplers[si]

			out := Channel{Node: node, Path: path}
			switch sampler.Interpolation {
			case gltf.InterpolationStep:
				out.Interpolation = InterpolationStep
			case gltf.InterpolationCubicSpline:
				out.Interpolation = InterpolationCubicSpline
			default:
				out.Interpolation = InterpolationLinear
			}

			in, _ := indexOf(sampler.Input)
			times, err := readFloats(doc, in)
			if err != nil {
				return nil, errors.Wrapf(err, "animation %q channel %d: read input", clip.Name, ci)
			}
			out.Times = times

			outIdx, _ := indexOf(sampler.Output)
			if out.Values, err = readFloats(doc, outIdx); err != nil {
				return nil, errors.Wrapf(err, "animation %q channel %d: read output", clip.Name, ci)
			}

			if n := len(out.Times); n > 0 && out.Times[n-1] > clip.Duration {
				clip.Duration = out.Times[n-1]
			}
			clip.Channels = append(clip.Channels, out)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// readFloats reads a float accessor of any element width as a flat slice.
func readFloats(doc *gltf.Document, idx int) ([]float32, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case []float32:
		return v, nil
	case [][2]float32:
		return flatten(v), nil
	case [][3]float32:
		return flatten(v), nil
	case [][4]float32:
		return flatten(v), nil
	default:
		return nil, errors.Errorf("unsupported accessor data %T", raw)
	}
}

func flatten[T [2]float32 | [3]float32 | [4]float32](in []T) []float32 {
	out := make([]float32, 0, len(in)*4)
	for _, e := range in {
		for i := 0; i < len(e); i++ {
			out = append(out, e[i])
		}
	}
	return out
}
