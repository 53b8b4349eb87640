package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/engine/animator"
	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
	"github.com/Carmen-Shannon/oxy-responsive/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose events drive the engine. Required.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer driven by the render goroutine. Required.
// The engine releases it after the render goroutine has been joined.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithClock sets the clock shared by the sleep measurement and the frame timing.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithFenceTimeout bounds how long each frame waits for its GPU work. Values <= 0 keep the default.
//
// Parameters:
//   - timeout: the longest fence wait
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFenceTimeout(timeout time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if timeout > 0 {
			e.fenceTimeout = timeout
		}
	}
}

// WithAnimatorOptions configures the animation signal.
//
// Parameters:
//   - options: animator options (rate, amplitude, offset, phase)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAnimatorOptions(options ...animator.AnimatorBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.animatorOptions = append(e.animatorOptions, options...)
	}
}

// WithInitialAnimation starts the engine with animation enabled.
//
// Parameters:
//   - enabled: the initial animation flag
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInitialAnimation(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.initialAnimation = enabled
	}
}

// WithKeyBindings sets the toggle and close keys.
//
// Parameters:
//   - toggleKey: the key that pauses and resumes animation
//   - closeKey: the key that closes the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyBindings(toggleKey, closeKey uint32) EngineBuilderOption {
	return func(e *engine) {
		e.toggleKey = toggleKey
		e.closeKey = closeKey
	}
}
