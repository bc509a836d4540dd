package profiler

import (
	"bytes"
	"log"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestProfiler(interval time.Duration) (*Profiler, *fakeClock, *bytes.Buffer) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := NewProfiler(interval, log.New(&buf, "", 0))
	p.now = clock.now
	p.lastTime = clock.t
	return p, clock, &buf
}

func TestProfiler_ReportsAfterInterval(t *testing.T) {
	p, clock, buf := newTestProfiler(time.Second)

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(time.Second / 60)
		_, reported := p.Tick(1.0 / 60)
		assert.False(t, reported)
	}
	assert.Empty(t, buf.String())

	clock.t = clock.t.Add(time.Second / 60)
	s, reported := p.Tick(0.05)
	require.True(t, reported)
	assert.Equal(t, 60, s.Ticks)
	assert.InDelta(t, 60, s.TicksPerSecond, 0.01)
	assert.InDelta(t, (59.0/60+0.05)/60, s.MeanDelta, 1e-6)
	assert.InDelta(t, 0.05, s.MaxDelta, 1e-6)
	assert.Greater(t, s.HeapMB, 0.0)
	assert.Contains(t, buf.String(), "[profiler] TPS: 60.00")
	assert.Equal(t, s, p.Last())
}

func TestProfiler_WindowResets(t *testing.T) {
	p, clock, _ := newTestProfiler(time.Second)

	clock.t = clock.t.Add(2 * time.Second)
	_, reported := p.Tick(0.5)
	require.True(t, reported)

	clock.t = clock.t.Add(time.Second)
	s, reported := p.Tick(0.1)
	require.True(t, reported)
	assert.Equal(t, 1, s.Ticks)
	assert.InDelta(t, 0.1, s.MaxDelta, 1e-6, "max from the previous window is not carried over")
}

func TestProfiler_IgnoresInvalidDelta(t *testing.T) {
	p, clock, _ := newTestProfiler(time.Second)
	p.Tick(float32(math.NaN()))
	p.Tick(-1)

	clock.t = clock.t.Add(time.Second)
	s, reported := p.Tick(0)
	require.True(t, reported)
	assert.Equal(t, 3, s.Ticks)
	assert.Zero(t, s.MeanDelta)
}

func TestNewProfiler_Defaults(t *testing.T) {
	p := NewProfiler(0, nil)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
}
