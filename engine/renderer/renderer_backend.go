package renderer

import "errors"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the configuration name of the present mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// ParsePresentMode converts a configuration name into a PresentMode.
//
// Parameters:
//   - name: "vsync" or "uncapped"
//
// Returns:
//   - PresentMode: the parsed mode
//   - bool: false if the name is unknown
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync", "":
		return PresentModeVSync, true
	case "uncapped", "immediate":
		return PresentModeUncapped, true
	default:
		return PresentModeVSync, false
	}
}

// ErrSurfaceUnavailable is returned by Draw when there is no drawable surface,
// for example while the window is minimized to a zero-sized client area.
var ErrSurfaceUnavailable = errors.New("no drawable surface")

// ErrFrameInFlight is returned by Draw when the previous frame has not been presented yet.
var ErrFrameInFlight = errors.New("previous frame surface not yet presented")

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
