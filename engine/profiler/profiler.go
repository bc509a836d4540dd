package profiler

import (
	"io"
	"log"
	"math"
	"runtime"
	"time"
)

// Stats is one reporting window of tick measurements.
type Stats struct {
	// Ticks is the number of ticks recorded in the window.
	Ticks int

	// TicksPerSecond is Ticks divided by the wall time the window covered.
	TicksPerSecond float64

	// MeanDelta and MaxDelta summarise the delta times handed to the tick callback, in seconds.
	MeanDelta float64
	MaxDelta  float64

	// HeapMB is the live heap at the end of the window.
	HeapMB float64

	// AllocRateMB is the allocation churn over the window in MB per second.
	AllocRateMB float64

	// GCCount is the cumulative number of completed collections.
	GCCount uint32
}

// Profiler tracks tick rate, tick delta and memory statistics for the frame loop.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	ticks          int
	deltaSum       float64
	deltaMax       float64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	last           Stats

	now    func() time.Time
	logger *log.Logger
}

// NewProfiler creates a new Profiler reporting every interval.
// A non-positive interval defaults to 1 second, a nil logger discards output.
//
// Parameters:
//   - interval: how often stats are reported
//   - logger: the destination for the report line
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration, logger *log.Logger) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
		logger:         logger,
	}
}

// Tick should be called once per engine tick with the delta handed to the tick callback.
// Reports statistics when the update interval has elapsed and starts a new window.
//
// Parameters:
//   - dt: the tick delta in seconds
//
// Returns:
//   - Stats: the completed window, or the zero value if the window is still open
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick(dt float32) (Stats, bool) {
	d := float64(dt)
	if math.IsNaN(d) || d < 0 {
		d = 0
	}
	p.ticks++
	p.deltaSum += d
	p.deltaMax = math.Max(p.deltaMax, d)

	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	s := Stats{
		Ticks:          p.ticks,
		TicksPerSecond: float64(p.ticks) / elapsed.Seconds(),
		MeanDelta:      p.deltaSum / float64(p.ticks),
		MaxDelta:       p.deltaMax,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:    float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:        p.memStats.NumGC,
	}

	p.logger.Printf("[profiler] TPS: %.2f | dt mean: %.2f ms max: %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		s.TicksPerSecond, s.MeanDelta*1000, s.MaxDelta*1000, s.HeapMB, s.AllocRateMB, s.GCCount)

	p.ticks = 0
	p.deltaSum = 0
	p.deltaMax = 0
	p.lastTime = current
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return s, true
}

// Last returns the most recently reported window.
func (p *Profiler) Last() Stats {
	return p.last
}
