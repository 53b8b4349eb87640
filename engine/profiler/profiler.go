package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
)

// Profiler tracks frame rate, idle time and memory statistics for the render goroutine.
// Outputs stats to the package logger at a configurable interval.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	fenceTimeouts  int
	slept          time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now func() time.Time
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		now:            time.Now,
	}
}

// SetInterval changes how often statistics are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: the reporting interval
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	p.updateInterval = interval
	p.mu.Unlock()
}

// Tick should be called once per presented frame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, idle ratio, fence timeouts, heap usage, allocation rate, GC count/pause times.
//
// Parameters:
//   - slept: time the render goroutine spent asleep before this frame
//   - fenceTimedOut: whether this frame's fence wait hit its timeout
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(slept time.Duration, fenceTimedOut bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.slept += slept
	if fenceTimedOut {
		p.fenceTimeouts++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	idle := min(p.slept.Seconds()/elapsed.Seconds(), 1.0)

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	common.Logger().Info("profiler",
		"fps", fps,
		"idle", idle,
		"fence_timeouts", p.fenceTimeouts,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_last_us", lastPauseUs,
		"gc_max_us", maxPauseUs,
		"sys_mb", sysMB,
	)

	p.frameCount = 0
	p.fenceTimeouts = 0
	p.slept = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
