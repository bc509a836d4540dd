package asset

import (
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// BackendType identifies the model file format backend to use.
type BackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB backend.
	BackendTypeGLTF BackendType = iota
)

// backend decodes one encoded model format into a skinned Asset.
type backend interface {
	// Decode parses r into an Asset keyed by key.
	//
	// Parameters:
	//   - key: the asset key, used for naming and diagnostics
	//   - r: the encoded model
	//
	// Returns:
	//   - *Asset: the decoded asset in ModeSkinned
	//   - error: error if decoding fails
	Decode(key string, r io.Reader) (*Asset, error)

	// Extensions returns the lower-case file extensions the backend accepts.
	//
	// Returns:
	//   - []string: extensions including the leading dot
	Extensions() []string
}

// newBackend creates the backend for a backend type.
func newBackend(t BackendType) backend {
	switch t {
	case BackendTypeGLTF:
		return newGLTFBackend()
	default:
		return nil
	}
}

// supports reports whether b accepts the key's file extension.
func supports(b backend, key string) bool {
	ext := strings.ToLower(path.Ext(key))
	for _, e := range b.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// validate checks the cross references of a decoded asset so instances never index out of range.
func validate(a *Asset) error {
	n := len(a.Nodes)
	for i, node := range a.Nodes {
		if node.Parent < -1 || node.Parent >= n {
			return errors.Errorf("node %d: parent %d out of range", i, node.Parent)
		}
		for _, c := range node.Children {
			if c < 0 || c >= n || a.Nodes[c].Parent != i {
				return errors.Errorf("node %d: invalid child %d", i, c)
			}
		}
		for _, m := range node.Meshes {
			if m < 0 || m >= len(a.Meshes) {
				return errors.Errorf("node %d: mesh %d out of range", i, m)
			}
		}
		if node.Skin < -1 || node.Skin >= len(a.Skins) {
			return errors.Errorf("node %d: skin %d out of range", i, node.Skin)
		}
	}
	for _, r := range a.Roots {
		if r < 0 || r >= n || a.Nodes[r].Parent != -1 {
			return errors.Errorf("invalid root %d", r)
		}
	}
	for i, s := range a.Skins {
		if len(s.InverseBind) != len(s.Joints) {
			return errors.Errorf("skin %d: %d joints but %d inverse bind matrices", i, len(s.Joints), len(s.InverseBind))
		}
		for _, j := range s.Joints {
			if j < 0 || j >= n {
				return errors.Errorf("skin %d: joint %d out of range", i, j)
			}
		}
	}
	for _, clip := range a.Clips {
		for k, ch := range clip.Channels {
			if ch.Node < 0 || ch.Node >= n {
				return errors.Errorf("clip %q channel %d: node %d out of range", clip.Name, k, ch.Node)
			}
			per := ch.Width()
			if ch.Interpolation == InterpolationCubicSpline {
				per *= 3
			}
			if len(ch.Times) == 0 || len(ch.Values) != len(ch.Times)*per {
				return errors.Errorf("clip %q channel %d: %d keys but %d values", clip.Name, k, len(ch.Times), len(ch.Values))
			}
		}
	}
	return nil
}
