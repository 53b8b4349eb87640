package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and classifies its event stream into resize, paint,
// key-down and close notifications. Every callback runs on the goroutine that created the
// window and calls ProcessMessages.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPaintCallback sets the function called when the window system needs the contents redrawn,
	// for example while the user drags a border.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetPaintCallback(callback func())

	// SetKeyDownCallback sets the function called when a key is pressed or auto-repeats.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and whether the event is an auto-repeat
	SetKeyDownCallback(callback func(keyCode uint32, repeat bool))

	// SetCloseCallback sets the function called when the user asks to close the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to close immediately)
	SetCloseCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose makes ProcessMessages return after the current event. Safe from any goroutine.
	RequestClose()

	// Close destroys the window and releases platform resources. Call only after ProcessMessages
	// returned and everything using the surface has been released.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop, blocking in the platform event wait between
	// events. Returns when the window should close.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize. Zero means unlimited.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize. Zero means unlimited.
	maxHeight int

	// minWidth is the minimum allowed window width during resize. Zero means unlimited.
	minWidth int

	// minHeight is the minimum allowed window height during resize. Zero means unlimited.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize  func(width, height int)
	onPaint   func()
	onKeyDown func(keyCode uint32, repeat bool)
	onClose   func()
}

var _ Window = &engineWindow{}

// NewWindowE creates a new Window with the specified options.
// Applies default values first, then each option in order. The calling goroutine becomes the
// window's event goroutine and is locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured and shown window
//   - error: error if the platform window could not be created
func NewWindowE(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "Default Window Title",
		width:  800,
		height: 600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

// NewWindow is NewWindowE that panics on failure.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured and shown window
func NewWindow(options ...WindowBuilderOption) Window {
	w, err := NewWindowE(options...)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetPaintCallback(callback func()) {
	w.onPaint = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32, repeat bool)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
