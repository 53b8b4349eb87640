package render_state

import "github.com/Carmen-Shannon/oxy-responsive/engine/clock"

// RenderStateBuilderOption is a functional option for configuring a RenderState.
type RenderStateBuilderOption func(*renderState)

// WithClock sets the clock used to measure how long the render goroutine sleeps.
// Defaults to a monotonic wall clock.
//
// Parameters:
//   - c: the clock to use
//
// Returns:
//   - RenderStateBuilderOption: option function to apply
func WithClock(c clock.Clock) RenderStateBuilderOption {
	return func(s *renderState) {
		s.clock = c
	}
}

// WithAnimation sets the initial value of the animation flag.
//
// Parameters:
//   - enabled: true to start animating immediately
//
// Returns:
//   - RenderStateBuilderOption: option function to apply
func WithAnimation(enabled bool) RenderStateBuilderOption {
	return func(s *renderState) {
		s.animateEnabled = enabled
	}
}
