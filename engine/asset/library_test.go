package asset

import (
	"io"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend decodes any ".fake" key into a copy of its template, counting decodes.
type fakeBackend struct {
	decodes  atomic.Int32
	delay    time.Duration
	template func(key string) *Asset
	err      error
}

func (f *fakeBackend) Extensions() []string {
	return []string{".fake"}
}

func (f *fakeBackend) Decode(key string, r io.Reader) (*Asset, error) {
	f.decodes.Add(1)
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.template(key), nil
}

// twoNodeAsset is a root with one child carrying an off-centre mesh and a one-joint skin.
func twoNodeAsset(key string) *Asset {
	child := common.IdentityTRS()
	child.Translation[1] = 2
	return &Asset{
		Key:  key,
		Mode: ModeSkinned,
		Nodes: []Node{
			{Name: "root", Parent: -1, Children: []int{1}, Local: common.IdentityTRS(), Skin: -1},
			{Name: "arm", Parent: 0, Local: child, Meshes: []int{0}, Skin: 0},
		},
		Roots: []int{0},
		Meshes: []*Mesh{{
			Name:      "body",
			Positions: [][3]float32{{0, 0, 0}, {2, 4, 6}},
			Joints:    [][4]uint16{{0}, {0}},
			Weights:   [][4]float32{{1}, {1}},
			Min:       mgl32.Vec3{0, 0, 0},
			Max:       mgl32.Vec3{2, 4, 6},
		}},
		Skins: []Skin{{Name: "rig", Joints: []int{1}, InverseBind: []mgl32.Mat4{mgl32.Ident4()}}},
		Clips: []Clip{{
			Name:     "wave",
			Duration: 1,
			Channels: []Channel{{
				Node:   1,
				Path:   PathTranslation,
				Times:  []float32{0, 1},
				Values: []float32{0, 0, 0, 1, 0, 0},
			}},
		}},
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestLibrary(t *testing.T, fb *fakeBackend, keys ...string) Library {
	t.Helper()
	files := make(map[string][]byte, len(keys))
	for _, k := range keys {
		files[k] = []byte("payload")
	}
	return NewLibrary(BackendTypeGLTF,
		WithSource(NewMemorySource(files)),
		WithLogger(quietLogger()),
		WithWorkers(2),
		withBackend(fb),
	)
}

func TestLibrary_LoadIsCached(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset}
	lib := newTestLibrary(t, fb, "hero.fake")

	a, err := lib.Load("hero.fake")
	require.NoError(t, err)
	b, err := lib.Load("hero.fake")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.EqualValues(t, 1, fb.decodes.Load())
	assert.Same(t, a, lib.Get("hero.fake"))
	assert.Equal(t, map[string]*Asset{"hero.fake": a}, lib.Assets())
}

func TestLibrary_ConcurrentLoadsDecodeOnce(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset, delay: 20 * time.Millisecond}
	lib := newTestLibrary(t, fb, "hero.fake")

	const callers = 16
	results := make([]*Asset, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := lib.Load("hero.fake")
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, fb.decodes.Load())
	for _, a := range results {
		assert.Same(t, results[0], a)
	}
}

func TestLibrary_MissingKeyFails(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset}
	lib := newTestLibrary(t, fb)

	a, err := lib.Load("ghost.fake")
	assert.Nil(t, a)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "ghost.fake", le.Key)
	assert.Equal(t, ModeSkinned, le.Mode)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, lib.Get("ghost.fake"))

	h := lib.Request("ghost.fake", ModeSkinned)
	<-h.Done()
	assert.Equal(t, StatusFailed, h.Status())
	assert.Nil(t, h.Asset())
	assert.EqualValues(t, 0, fb.decodes.Load())
}

func TestLibrary_UnsupportedFormat(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset}
	lib := newTestLibrary(t, fb, "hero.obj")

	_, err := lib.Load("hero.obj")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLibrary_BackendErrorIsWrapped(t *testing.T) {
	boom := errors.New("corrupt buffer")
	fb := &fakeBackend{template: twoNodeAsset, err: boom}
	lib := newTestLibrary(t, fb, "hero.fake")

	_, err := lib.Load("hero.fake")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, boom, errors.Cause(err))
}

func TestLibrary_InvalidAssetRejected(t *testing.T) {
	fb := &fakeBackend{template: func(key string) *Asset {
		a := twoNodeAsset(key)
		a.Skins[0].Joints = []int{7}
		return a
	}}
	lib := newTestLibrary(t, fb, "hero.fake")

	_, err := lib.Load("hero.fake")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "joint 7 out of range")
}

func TestLibrary_BackendPanicBecomesError(t *testing.T) {
	fb := &fakeBackend{template: func(string) *Asset { panic("bad accessor") }}
	lib := newTestLibrary(t, fb, "hero.fake")

	var err error
	require.NotPanics(t, func() { _, err = lib.Load("hero.fake") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad accessor")
}

func TestLibrary_FailureCachedUntilEvicted(t *testing.T) {
	src := NewMemorySource(nil)
	fb := &fakeBackend{template: twoNodeAsset}
	lib := NewLibrary(BackendTypeGLTF, WithSource(src), WithLogger(quietLogger()), withBackend(fb))

	_, err := lib.Load("late.fake")
	require.Error(t, err)

	src.Put("late.fake", []byte("payload"))
	_, err = lib.Load("late.fake")
	require.Error(t, err, "failure stays cached")

	lib.Evict("late.fake")
	a, err := lib.Load("late.fake")
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestLibrary_DecorativeCentresOnce(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset}
	lib := newTestLibrary(t, fb, "hero.fake")

	d1, err := lib.LoadMode("hero.fake", ModeDecorative)
	require.NoError(t, err)
	d2, err := lib.LoadMode("hero.fake", ModeDecorative)
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	assert.Equal(t, ModeDecorative, d1.Mode)
	assert.Empty(t, d1.Skins)
	assert.Empty(t, d1.Clips)
	assert.Equal(t, -1, d1.Nodes[1].Skin)
	require.Len(t, d1.Meshes, 1)
	assert.Equal(t, [][3]float32{{-1, -2, -3}, {1, 2, 3}}, d1.Meshes[0].Positions)
	assert.Nil(t, d1.Meshes[0].Joints)

	skinned, err := lib.Load("hero.fake")
	require.NoError(t, err)
	assert.Equal(t, [][3]float32{{0, 0, 0}, {2, 4, 6}}, skinned.Meshes[0].Positions, "skinned geometry untouched")
	assert.Len(t, skinned.Skins, 1)
	assert.EqualValues(t, 1, fb.decodes.Load())
}

func TestLibrary_RequestResolvesAsync(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset, delay: 10 * time.Millisecond}
	lib := newTestLibrary(t, fb, "hero.fake")

	h := lib.Request("hero.fake", ModeSkinned)
	assert.Equal(t, "hero.fake", h.Key())
	assert.Equal(t, ModeSkinned, h.Mode())

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("request never resolved")
	}
	assert.Equal(t, StatusReady, h.Status())
	assert.NoError(t, h.Err())
	assert.NotNil(t, h.Asset())
	assert.Same(t, h, lib.Request("hero.fake", ModeSkinned))
}

func TestLibrary_Preload(t *testing.T) {
	fb := &fakeBackend{template: twoNodeAsset}
	lib := newTestLibrary(t, fb, "a.fake", "b.fake")

	require.NoError(t, lib.Preload("a.fake", "b.fake"))
	assert.NotNil(t, lib.Get("a.fake"))
	assert.NotNil(t, lib.Get("b.fake"))

	err := lib.Preload("a.fake", "missing.fake")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLibrary_WithAssetSkipsSource(t *testing.T) {
	a := twoNodeAsset("inline.fake")
	lib := NewLibrary(BackendTypeGLTF, WithAsset(a), WithLogger(quietLogger()))

	got, err := lib.Load("inline.fake")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestEntry_NotReadyWhileLoading(t *testing.T) {
	e := newEntry("k", ModeSkinned)
	assert.Equal(t, StatusLoading, e.Status())
	assert.Nil(t, e.Asset())
	assert.True(t, errors.Is(e.Err(), ErrNotReady))

	e.resolve(nil, errors.New("first"))
	e.resolve(&Asset{}, nil)
	assert.Equal(t, StatusFailed, e.Status())
	assert.EqualError(t, e.Err(), "first")
}
