package scroll

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/onin-go/engine/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60.0

func TestPipeline_RawFollowsKeyframes(t *testing.T) {
	p := NewPipeline()
	defer p.Close()

	tests := []struct {
		progress, raw float64
	}{
		{0, 0},
		{0.33, -300},
		{0.66, 200},
		{1, 0},
		{0.165, -150},
	}
	for _, tt := range tests {
		p.SetProgress(tt.progress)
		assert.InDelta(t, tt.raw, p.Raw(), 1e-9, "progress %v", tt.progress)
	}
}

func TestPipeline_ClampsProgress(t *testing.T) {
	p := NewPipeline()
	defer p.Close()

	p.SetProgress(1.5)
	assert.Equal(t, 1.0, p.Progress())
	p.SetProgress(-3)
	assert.Equal(t, 0.0, p.Progress())
	p.SetProgress(0.4)
	p.SetProgress(math.NaN())
	assert.Equal(t, 0.4, p.Progress())
}

func TestPipeline_SpringLagsThenSettles(t *testing.T) {
	p := NewPipeline()
	defer p.Close()

	p.SetProgress(0.33)
	first := p.Tick(frame)
	assert.Less(t, first, 0.0)
	assert.Greater(t, first, -30.0, "offset must lag the raw jump")

	for i := 0; i < 1200; i++ {
		p.Tick(frame)
	}
	assert.Equal(t, -300.0, p.Offset())
}

func TestPipeline_InitialProgressStartsAtRest(t *testing.T) {
	p := NewPipeline(WithInitialProgress(0.33))
	defer p.Close()

	assert.InDelta(t, -300, p.Offset(), 1e-9)
	assert.InDelta(t, -300, p.Tick(frame), 1e-9)
}

func TestPipeline_CustomKeyframesAndSpring(t *testing.T) {
	k := motion.MustKeyframes([]float64{0, 1}, []float64{0, 10})
	cfg := motion.DefaultSpringConfig()
	cfg.Stiffness = 400
	cfg.Damping = 40

	p := NewPipeline(WithKeyframes(k), WithSpring(cfg), WithKeyframes(motion.Keyframes{}))
	defer p.Close()

	p.SetProgress(1)
	assert.Equal(t, 10.0, p.Raw())
	for i := 0; i < 600; i++ {
		p.Tick(frame)
	}
	assert.Equal(t, 10.0, p.Offset())
}

func TestPipeline_SubscribeFollowsSource(t *testing.T) {
	feed := NewFeed()
	p := NewPipeline()
	require.NoError(t, p.Subscribe(feed))
	assert.Equal(t, 1, feed.Subscribers())

	feed.Publish(0.66)
	assert.Equal(t, 0.66, p.Progress())
	assert.Equal(t, 200.0, p.Raw())

	other := NewFeed()
	require.NoError(t, p.Subscribe(other))
	assert.Equal(t, 0, feed.Subscribers(), "resubscribing cancels the previous source")
	assert.Equal(t, 1, other.Subscribers())

	p.Close()
	assert.Equal(t, 0, other.Subscribers())
}

func TestPipeline_NoUpdatesAfterClose(t *testing.T) {
	feed := NewFeed()
	p := NewPipeline()
	require.NoError(t, p.Subscribe(feed))

	feed.Publish(0.33)
	p.Tick(frame)
	offset := p.Offset()

	p.Close()
	p.Close()

	feed.Publish(0.66)
	p.SetProgress(1)
	assert.Equal(t, 0.33, p.Progress())
	assert.Equal(t, offset, p.Tick(frame))
	assert.Equal(t, offset, p.Tick(1))
	assert.ErrorIs(t, p.Subscribe(feed), ErrClosed)
	assert.Error(t, NewPipeline().Subscribe(nil))
}

func TestFeed_CancelIsIdempotent(t *testing.T) {
	feed := NewFeed()
	var got []float64
	cancel := feed.Subscribe(func(p float64) { got = append(got, p) })

	feed.Publish(0.1)
	cancel()
	cancel()
	feed.Publish(0.2)

	assert.Equal(t, []float64{0.1}, got)
	assert.Equal(t, 0, feed.Subscribers())
}

func TestSmoother_WheelEasesTowardTarget(t *testing.T) {
	s := NewSmoother(WithLimit(1000))
	var published []float64
	s.Subscribe(func(p float64) { published = append(published, p) })

	s.Wheel(100)
	assert.Equal(t, 100.0, s.Target())
	assert.True(t, s.Animating())

	s.Advance(0.6)
	assert.InDelta(t, 100*motion.ExpoOut(0.5), s.Position(), 1e-9)

	s.Advance(0.6)
	assert.Equal(t, 100.0, s.Position())
	assert.False(t, s.Animating())
	assert.InDelta(t, 0.1, s.Progress(), 1e-12)

	require.Len(t, published, 2)
	assert.InDelta(t, 0.1, published[1], 1e-12)
}

func TestSmoother_ClampsToLimit(t *testing.T) {
	s := NewSmoother(WithLimit(500), WithWheelMultiplier(2))

	s.Wheel(400)
	assert.Equal(t, 500.0, s.Target())
	s.Wheel(-1000)
	assert.Equal(t, 0.0, s.Target())
	s.Wheel(math.Inf(1))
	assert.Equal(t, 0.0, s.Target())

	s.ScrollTo(250, true)
	assert.Equal(t, 250.0, s.Position())
	assert.Equal(t, 0.5, s.Progress())

	s.SetLimit(100)
	assert.Equal(t, 100.0, s.Position())
	assert.Equal(t, 1.0, s.Progress())

	s.SetLimit(0)
	assert.Equal(t, 0.0, s.Progress())
}

func TestSmoother_RetargetsFromCurrentPosition(t *testing.T) {
	s := NewSmoother(WithLimit(1000), WithEasing(motion.Linear), WithDuration(1))

	s.Wheel(100)
	s.Advance(0.5)
	assert.InDelta(t, 50, s.Position(), 1e-9)

	s.Wheel(100)
	assert.Equal(t, 200.0, s.Target())
	s.Advance(0.5)
	assert.InDelta(t, 125, s.Position(), 1e-9)
}

func TestSmoother_DrivesPipeline(t *testing.T) {
	s := NewSmoother(WithLimit(1000), WithDuration(0))
	p := NewPipeline()
	defer p.Close()
	require.NoError(t, p.Subscribe(s))

	s.Wheel(330)
	s.Advance(frame)
	assert.InDelta(t, 0.33, p.Progress(), 1e-12)
	assert.InDelta(t, -300, p.Raw(), 1e-6)
}

func TestSmoother_DestroyDropsSubscribers(t *testing.T) {
	s := NewSmoother(WithLimit(100))
	calls := 0
	s.Subscribe(func(float64) { calls++ })

	s.Destroy()
	s.Wheel(10)
	s.Advance(1)
	s.Subscribe(func(float64) { calls++ })
	s.Advance(1)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0.0, s.Position())
}
