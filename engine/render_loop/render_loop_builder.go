package render_loop

import (
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/engine/animator"
	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
	"github.com/Carmen-Shannon/oxy-responsive/engine/profiler"
)

// RenderLoopBuilderOption is a functional option for configuring a RenderLoop.
type RenderLoopBuilderOption func(*renderLoop)

// WithClock sets the clock frames are timed with. It should be the same clock the shared state
// measures sleep with. Defaults to a monotonic wall clock.
//
// Parameters:
//   - c: the clock to use
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithClock(c clock.Clock) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.clock = c
	}
}

// WithAnimator replaces the default animator.
//
// Parameters:
//   - a: the animator producing the per-frame modifier
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithAnimator(a animator.Animator) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.animator = a
	}
}

// WithFenceTimeout bounds how long a frame waits for its GPU work. Non-positive values are ignored.
// Defaults to DefaultFenceTimeout.
//
// Parameters:
//   - timeout: the longest fence wait
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithFenceTimeout(timeout time.Duration) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		if timeout > 0 {
			l.fenceTimeout = timeout
		}
	}
}

// WithProfiler ticks p once per presented frame.
//
// Parameters:
//   - p: the profiler, or nil to disable
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.profiler = p
	}
}

// WithStateObserver registers a callback invoked on the render goroutine on every state change.
// The callback must not block on the UI goroutine.
//
// Parameters:
//   - observer: the callback
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithStateObserver(observer func(State)) RenderLoopBuilderOption {
	return func(l *renderLoop) {
		l.observer = observer
	}
}
