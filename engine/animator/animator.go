package animator

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
)

// Animator accumulates the render goroutine's active time and maps it to the periodic
// modifier uploaded to the shader. Time spent asleep in the wait primitive is excluded, so the
// oscillation rate is independent of how often frames stall. Not safe for concurrent use; the
// render goroutine owns it.
type Animator interface {
	// Start sets the timestamp of the first frame.
	//
	// Parameters:
	//   - now: the current clock reading
	Start(now time.Duration)

	// Advance closes the current frame at now and adds its active time to the phase:
	// t += (now - start) - slept. A negative increment is treated as zero.
	//
	// Parameters:
	//   - now: the clock reading at the end of the frame
	//   - slept: time spent blocked in the wait primitive during the frame
	//
	// Returns:
	//   - time.Duration: the active time added this frame
	Advance(now, slept time.Duration) time.Duration

	// Elapsed returns the accumulated active time.
	Elapsed() time.Duration

	// Modifier evaluates the animation signal at the accumulated time.
	//
	// Returns:
	//   - float32: amplitude*sin(rate*(t+phase)) + offset
	Modifier() float32

	// Range returns the bounds the modifier stays within.
	//
	// Returns:
	//   - float32: lowest possible modifier
	//   - float32: highest possible modifier
	Range() (low, high float32)
}

// animator implements the Animator interface.
type animator struct {
	elapsed time.Duration
	start   time.Duration

	angularRate float64 // radians per second
	amplitude   float64
	offset      float64
	phase       float64 // seconds
}

var _ Animator = &animator{}

// NewAnimator creates an Animator. Defaults give 0.25*sin(2*(t+π/4))+0.75, which keeps the
// modifier in [0.5, 1.0].
//
// Parameters:
//   - options: functional options for the signal shape
//
// Returns:
//   - Animator: the new animator with zero elapsed time
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		angularRate: DefaultAngularRate,
		amplitude:   DefaultAmplitude,
		offset:      DefaultOffset,
		phase:       DefaultPhase,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Start(now time.Duration) {
	a.start = now
}

func (a *animator) Advance(now, slept time.Duration) time.Duration {
	active := now - a.start - slept
	if active < 0 {
		active = 0
	}
	a.elapsed += active
	a.start = now
	return active
}

func (a *animator) Elapsed() time.Duration {
	return a.elapsed
}

func (a *animator) Modifier() float32 {
	return common.Oscillate(a.elapsed.Seconds(), a.angularRate, a.phase, a.amplitude, a.offset)
}

func (a *animator) Range() (float32, float32) {
	amp := math.Abs(a.amplitude)
	return float32(a.offset - amp), float32(a.offset + amp)
}
