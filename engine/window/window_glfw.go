package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent *engineWindow
	window *glfw.Window

	// closeRequested is set from any goroutine by RequestClose.
	closeRequested atomic.Bool
	destroyed      bool
}

// newPlatformWindow creates the GLFW window with event callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(sizeLimit(w.minWidth), sizeLimit(w.minHeight), sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	gw := &glfwWindow{
		parent: w,
		window: win,
	}
	w.internalWindow = gw

	// Press and Repeat both reach the key-down callback; Repeat is how GLFW reports a held key.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if w.onKeyDown == nil {
			return
		}
		switch action {
		case glfw.Press:
			w.onKeyDown(uint32(key), false)
		case glfw.Repeat:
			w.onKeyDown(uint32(key), true)
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// The renderer requires pixel dimensions for correct surface configuration.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// The refresh callback is GLFW's paint request. On Windows it keeps firing inside the modal
	// resize loop, which is where the paint wait matters most.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetRefreshCallback
	win.SetRefreshCallback(func(_ *glfw.Window) {
		if w.onPaint != nil {
			w.onPaint()
		}
	})

	// GLFW has already set the should-close flag when this runs.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCloseCallback
	win.SetCloseCallback(func(_ *glfw.Window) {
		if w.onClose != nil {
			w.onClose()
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// sizeLimit maps an unset limit to glfw.DontCare.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil or destroyed, a close was requested, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.destroyed {
		return false
	}
	return !gw.closeRequested.Load() && !gw.window.ShouldClose()
}

// platformRequestClose flags the window closed and wakes a blocked WaitEvents.
// glfwPostEmptyEvent may be called from any thread.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PostEmptyEvent
func platformRequestClose(w *engineWindow) {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return
	}
	if gw.closeRequested.Swap(true) {
		return
	}
	glfw.PostEmptyEvent()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	if gw.destroyed {
		return nil
	}
	gw.closeRequested.Store(true)
	gw.destroyed = true
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages blocks until at least one event is available and dispatches it.
// This is the GLFW equivalent of the Win32 GetMessage loop.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.WaitEvents()
	return platformIsRunningCheck(w)
}
