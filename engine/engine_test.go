package engine

import (
	"bytes"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the engine goroutines log while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestEngine_TicksUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(500), WithLogger(log.New(io.Discard, "", 0)))

	var n atomic.Int32
	var sawPositive atomic.Bool
	e.SetTickCallback(func(dt float32) {
		if dt > 0 {
			sawPositive.Store(true)
		}
		if n.Add(1) == 5 {
			e.Quit()
		}
	})

	waitDone(t, runAsync(e))
	assert.GreaterOrEqual(t, n.Load(), int32(5))
	assert.GreaterOrEqual(t, e.Ticks(), uint64(5))
	assert.True(t, sawPositive.Load())

	select {
	case <-e.Done():
	default:
		t.Fatal("done channel still open")
	}
}

func TestEngine_QuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()
	waitDone(t, runAsync(e))
	assert.Zero(t, e.Ticks())
}

func TestEngine_RecoversPanickingTick(t *testing.T) {
	var out syncBuffer
	e := NewEngine(WithTickRate(500), WithLogger(log.New(&out, "", 0)))
	e.SetTickCallback(func(float32) { panic("boom") })

	waitDone(t, runAsync(e))
	assert.Contains(t, out.String(), "[engine] tick goroutine recovered from panic: boom")
}

func TestEngine_RenderLoop(t *testing.T) {
	e := NewEngine(WithTickRate(100), WithRenderFrameLimit(500), WithLogger(log.New(io.Discard, "", 0)))

	var frames atomic.Int32
	e.SetRenderCallback(func(float32) {
		if frames.Add(1) == 3 {
			e.Quit()
		}
	})

	waitDone(t, runAsync(e))
	assert.GreaterOrEqual(t, frames.Load(), int32(3))
}

func TestEngine_SetTickRate(t *testing.T) {
	e := NewEngine(WithTickRate(30))
	assert.Equal(t, time.Second/30, e.TickRate())

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.TickRate())

	e.SetTickRate(0)
	assert.Equal(t, time.Second/DefaultTickRate, e.TickRate())
}

func TestEngine_SetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(10), WithLogger(log.New(io.Discard, "", 0)))

	var n atomic.Int32
	e.SetTickCallback(func(float32) {
		if n.Add(1) == 20 {
			e.Quit()
		}
	})

	done := runAsync(e)
	require.Eventually(t, func() bool { return n.Load() >= 1 }, 2*time.Second, time.Millisecond)
	start := time.Now()
	e.SetTickRate(1000)

	waitDone(t, done)
	assert.Less(t, time.Since(start), 1500*time.Millisecond, "20 ticks at 10Hz would take two seconds")
}

func TestEngine_TickRateReadableWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(100), WithLogger(log.New(io.Discard, "", 0)))

	var seen atomic.Int64
	e.SetTickCallback(func(float32) {
		seen.Store(int64(e.TickRate()))
	})

	done := runAsync(e)
	require.Eventually(t, func() bool { return seen.Load() == int64(10*time.Millisecond) }, 2*time.Second, time.Millisecond)

	e.SetTickRate(500)
	require.Eventually(t, func() bool { return e.TickRate() == 2*time.Millisecond }, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return seen.Load() == int64(2*time.Millisecond) }, 2*time.Second, time.Millisecond)

	e.Quit()
	waitDone(t, done)
}

func TestEngine_ProfilerReports(t *testing.T) {
	var out syncBuffer
	e := NewEngine(
		WithTickRate(500),
		WithProfiling(true),
		WithProfileInterval(10*time.Millisecond),
		WithLogger(log.New(&out, "", 0)),
	)
	e.SetTickCallback(func(float32) {})

	done := runAsync(e)
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("[profiler] TPS"))
	}, 3*time.Second, 5*time.Millisecond)
	e.Quit()
	waitDone(t, done)
}
