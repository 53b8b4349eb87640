package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything that can describe a presentable surface, normally a window.
type SurfaceSource interface {
	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for the native surface, or nil.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           [4]float64
	vertexShader         shader.Shader
	fragmentShader       shader.Shader

	// quadReady is false when the quad program failed to build; frames then only clear.
	quadReady bool
	released  bool
}

// Renderer draws the animated quad onto a window surface.
//
// Every method except Release is called from the render goroutine only. Release is called once by
// the lifecycle owner after the render goroutine has exited.
type Renderer interface {
	// SetViewport configures the drawable surface to the given size in pixels.
	// A zero width or height is accepted and leaves the surface undrawable until the next resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	SetViewport(width, height int) error

	// Viewport returns the size most recently passed to SetViewport.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Viewport() (int, int)

	// Draw clears the surface and draws the quad scaled by modifier. The frame is submitted but not
	// presented; call Present afterwards.
	//
	// Parameters:
	//   - modifier: the scale applied to the quad's xy positions
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable for a zero-sized surface, or a GPU error
	Draw(modifier float32) error

	// Present shows the last drawn frame. It is a no-op when no frame is pending.
	//
	// Returns:
	//   - error: always nil for the WebGPU backend, kept for backends that can fail on swap
	Present() error

	// InsertFence returns a Fence that signals once all previously submitted GPU work has completed.
	//
	// Returns:
	//   - Fence: the inserted fence
	InsertFence() Fence

	// SetPresentMode sets the surface present mode. It takes effect on the next SetViewport.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Unbind drops any per-frame GPU state held by the render goroutine. Called by the render
	// goroutine right before it exits.
	Unbind()

	// Release destroys every GPU object. Safe to call more than once.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given backend and surface, builds the quad program and
// uploads its geometry.
//
// A quad program that fails to compile or link is logged and the renderer falls back to clearing
// the surface only. Failing to create the device or surface is returned as an error.
//
// Parameters:
//   - backendType: the backend implementation to use
//   - surface: the window providing the surface descriptor
//   - options: functional options
//
// Returns:
//   - Renderer: the created renderer
//   - error: an error if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		if surface == nil {
			return nil, fmt.Errorf("renderer: %w", ErrSurfaceUnavailable)
		}
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.clearColor)
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("renderer: unsupported backend type %d", backendType)
	}

	r.backend.SetPresentMode(r.presentMode)

	if err := r.backend.RegisterQuadPipeline(r.vertexShader, r.fragmentShader); err != nil {
		common.Logger().Warn("quad program unavailable, frames will only clear", "error", err)
	} else {
		r.quadReady = true
	}
	if err := r.backend.InitQuad(); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: failed to upload quad: %w", err)
	}

	return r, nil
}

// newRenderer builds the renderer state without touching the GPU.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		backendType:    backendType,
		presentMode:    PresentModeVSync,
		clearColor:     DefaultClearColor,
		vertexShader:   shader.QuadVertex(),
		fragmentShader: shader.QuadFragment(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) SetViewport(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	width = max(width, 0)
	height = max(height, 0)
	r.width = width
	r.height = height

	if r.backend == nil {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Viewport() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Draw(modifier float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil || r.released {
		return ErrSurfaceUnavailable
	}
	if r.width == 0 || r.height == 0 {
		return ErrSurfaceUnavailable
	}

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	if r.quadReady {
		r.backend.DrawQuad(modifier)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	return nil
}

func (r *renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil || r.released {
		return nil
	}
	r.backend.Present()
	return nil
}

func (r *renderer) InsertFence() Fence {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil || r.released {
		return NewSignaledFence()
	}
	return r.backend.InsertFence()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	if r.backend != nil {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) Unbind() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend != nil && !r.released {
		r.backend.ReleaseFrame()
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	if r.backend != nil {
		r.backend.Release()
	}
}
