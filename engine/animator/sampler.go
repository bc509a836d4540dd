package animator

import (
	"sort"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
)

// sampleChannel evaluates ch at time t into out, which must hold ch.Width() floats.
// Times before the first key hold the first value; times after the last key hold the last.
func sampleChannel(ch *asset.Channel, t float32, out []float32) {
	w := ch.Width()
	n := len(ch.Times)
	stride := w
	base := 0
	if ch.Interpolation == asset.InterpolationCubicSpline {
		stride = 3 * w
		base = w
	}
	value := func(k int) []float32 {
		off := k*stride + base
		return ch.Values[off : off+w]
	}

	if n == 1 || t <= ch.Times[0] {
		copy(out, value(0))
		return
	}
	if t >= ch.Times[n-1] {
		copy(out, value(n-1))
		return
	}

	// k is the last key at or before t.
	k := sort.Search(n, func(i int) bool { return ch.Times[i] > t }) - 1
	t0, t1 := ch.Times[k], ch.Times[k+1]
	td := t1 - t0
	u := float32(0)
	if td > 0 {
		u = (t - t0) / td
	}

	switch ch.Interpolation {
	case asset.InterpolationStep:
		copy(out, value(k))

	case asset.InterpolationCubicSpline:
		v0, v1 := value(k), value(k+1)
		b0 := ch.Values[k*stride+2*w : k*stride+3*w]
		a1 := ch.Values[(k+1)*stride : (k+1)*stride+w]
		u2, u3 := u*u, u*u*u
		h00 := 2*u3 - 3*u2 + 1
		h10 := u3 - 2*u2 + u
		h01 := -2*u3 + 3*u2
		h11 := u3 - u2
		for i := 0; i < w; i++ {
			out[i] = h00*v0[i] + h10*td*b0[i] + h01*v1[i] + h11*td*a1[i]
		}
		if ch.Path == asset.PathRotation {
			q := quat(out).Normalize()
			putQuat(out, q)
		}

	default:
		v0, v1 := value(k), value(k+1)
		if ch.Path == asset.PathRotation {
			putQuat(out, slerp(quat(v0), quat(v1), u))
			return
		}
		for i := 0; i < w; i++ {
			out[i] = v0[i] + (v1[i]-v0[i])*u
		}
	}
}

// slerp interpolates along the shorter arc between a and b.
func slerp(a, b mgl32.Quat, u float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, u).Normalize()
}

// quat reads an (x, y, z, w) quaternion.
func quat(v []float32) mgl32.Quat {
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
}

func putQuat(out []float32, q mgl32.Quat) {
	out[0], out[1], out[2], out[3] = q.V[0], q.V[1], q.V[2], q.W
}

// apply writes a sampled channel value into the matching property of a local transform.
func apply(trs *common.TRS, path asset.Path, v []float32) {
	switch path {
	case asset.PathTranslation:
		trs.Translation = mgl32.Vec3{v[0], v[1], v[2]}
	case asset.PathRotation:
		trs.Rotation = quat(v)
	case asset.PathScale:
		trs.Scale = mgl32.Vec3{v[0], v[1], v[2]}
	}
}
