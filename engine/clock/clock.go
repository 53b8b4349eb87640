package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic time source used for animation phase and frame-time measurement.
// Readings are durations since the clock's origin so they never jump with wall-clock changes.
type Clock interface {
	// Now returns the monotonic time elapsed since the clock was created.
	//
	// Returns:
	//   - time.Duration: elapsed time since the clock origin
	Now() time.Duration
}

// monotonicClock implements Clock on top of the runtime's monotonic clock reading.
type monotonicClock struct {
	origin time.Time
}

var _ Clock = &monotonicClock{}

// NewClock creates a Clock whose origin is the moment of construction.
//
// Returns:
//   - Clock: a clock backed by time.Since
func NewClock() Clock {
	return &monotonicClock{origin: time.Now()}
}

func (c *monotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a Clock that only moves when told to. Used to drive the render loop
// deterministically in tests and replays. Safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

var _ Clock = &ManualClock{}

// NewManualClock creates a ManualClock reading zero.
//
// Returns:
//   - *ManualClock: the new clock
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored to keep the clock monotonic.
//
// Parameters:
//   - d: the amount of time to add
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Set moves the clock to t if t is later than the current reading.
//
// Parameters:
//   - t: the new reading
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	if t > c.now {
		c.now = t
	}
	c.mu.Unlock()
}
