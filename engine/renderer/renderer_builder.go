package renderer

import (
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer/shader"
)

// DefaultClearColor is the dark grey the surface is cleared to every frame.
var DefaultClearColor = [4]float64{0.1, 0.1, 0.1, 1.0}

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the RGBA colour the surface is cleared to before the quad is drawn.
//
// Parameters:
//   - rgba: red, green, blue and alpha in the range [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(rgba [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = rgba
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithShaders replaces the built-in quad program. Either argument may be nil to keep the default stage.
//
// Parameters:
//   - vertex: the vertex stage, which must read the modifier uniform at group 0 binding 0
//   - fragment: the fragment stage
//
// Returns:
//   - RendererBuilderOption: a function that applies the shaders option to a renderer
func WithShaders(vertex, fragment shader.Shader) RendererBuilderOption {
	return func(r *renderer) {
		if vertex != nil {
			r.vertexShader = vertex
		}
		if fragment != nil {
			r.fragmentShader = fragment
		}
	}
}
