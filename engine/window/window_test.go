package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	for _, opt := range []WindowBuilderOption{
		WithTitle("page"),
		WithSize(800, 600),
		WithSize(0, 600),
		WithMinSize(100, 50),
	} {
		opt(w)
	}

	assert.Equal(t, "page", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
}

func TestWindow_Uninitialized(t *testing.T) {
	w := &engineWindow{clientWidth: 640, clientHeight: 480}

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.RequestClose()

	cw, ch := w.ClientSize()
	assert.Equal(t, 640, cw)
	assert.Equal(t, 480, ch)

	called := false
	w.SetUpdateCallback(func() { called = true })
	w.ProcessMessages()
	assert.False(t, called, "the loop does not run without a platform window")
}
