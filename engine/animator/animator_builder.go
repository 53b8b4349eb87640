package animator

import "math"

// Default signal shape.
const (
	DefaultAngularRate = 2.0
	DefaultAmplitude   = 0.25
	DefaultOffset      = 0.75
	DefaultPhase       = math.Pi / 4
)

// AnimatorBuilderOption is a functional option for configuring an Animator.
type AnimatorBuilderOption func(*animator)

// WithAngularRate sets the oscillation rate in radians per second. Non-positive values keep the default.
//
// Parameters:
//   - rate: angular rate in radians per second
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithAngularRate(rate float64) AnimatorBuilderOption {
	return func(a *animator) {
		if rate > 0 {
			a.angularRate = rate
		}
	}
}

// WithAmplitude sets the peak deviation of the modifier from its offset.
//
// Parameters:
//   - amplitude: peak deviation
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithAmplitude(amplitude float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.amplitude = amplitude
	}
}

// WithOffset sets the centre value of the modifier.
//
// Parameters:
//   - offset: centre value
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithOffset(offset float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.offset = offset
	}
}

// WithPhase sets the phase shift in seconds.
//
// Parameters:
//   - phase: phase shift applied to t before scaling by the angular rate
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithPhase(phase float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.phase = phase
	}
}
