package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/animator"
	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
	"github.com/Carmen-Shannon/oxy-responsive/engine/profiler"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_loop"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_state"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
	"github.com/Carmen-Shannon/oxy-responsive/engine/ui_handler"
	"github.com/Carmen-Shannon/oxy-responsive/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine has no window")

	// ErrNoRenderer is returned by Run when the engine was built without a renderer.
	ErrNoRenderer = errors.New("engine has no renderer")

	// ErrAlreadyRunning is returned by Run when it is called more than once.
	ErrAlreadyRunning = errors.New("engine already ran")
)

// engine implements the Engine interface.
// Coordinates the UI goroutine (the caller of Run) and the render goroutine.
type engine struct {
	running atomic.Bool
	wg      sync.WaitGroup

	quitOnce sync.Once // Ensures termination is only requested once

	window   window.Window
	renderer renderer.Renderer

	state   render_state.RenderState
	handler ui_handler.UIHandler
	loop    render_loop.RenderLoop

	clock            clock.Clock
	fenceTimeout     time.Duration
	animatorOptions  []animator.AnimatorBuilderOption
	initialAnimation bool
	toggleKey        uint32
	closeKey         uint32

	profiler         *profiler.Profiler
	profilingEnabled bool

	// renderErr is written by the render goroutine before wg.Done and read after wg.Wait.
	renderErr error
}

// Engine is the main entry point for the engine.
// It owns the shared render state, spawns the render goroutine and runs the window message loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the state shared by the UI and render goroutines.
	//
	// Returns:
	//   - render_state.RenderState: the shared state
	State() render_state.RenderState

	// RenderLoop returns the render loop, or nil when the engine has no renderer.
	//
	// Returns:
	//   - render_loop.RenderLoop: the render loop
	RenderLoop() render_loop.RenderLoop

	// Run records the initial window size, spawns the render goroutine and then dispatches window
	// events on the calling goroutine until the window closes. On return the render goroutine has
	// been joined and the renderer and window released.
	//
	// Returns:
	//   - error: ErrNoWindow, ErrNoRenderer or ErrAlreadyRunning before anything starts, or the
	//     error the render goroutine died with
	Run() error

	// Quit behaves like a close event. Safe to call from any goroutine and multiple times;
	// subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options and wires the window's
// callbacks to the UI handler. Options are applied directly to the engine struct via the
// option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		fenceTimeout: render_loop.DefaultFenceTimeout,
		toggleKey:    common.KeySpace,
		closeKey:     common.KeyEsc,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.clock == nil {
		e.clock = clock.NewClock()
	}
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler()
	}

	e.state = render_state.NewRenderState(
		render_state.WithClock(e.clock),
		render_state.WithAnimation(e.initialAnimation),
	)

	e.handler = ui_handler.NewUIHandler(e.state,
		ui_handler.WithToggleKey(e.toggleKey),
		ui_handler.WithCloseKey(e.closeKey),
		ui_handler.WithTeardown(func() {
			if e.window != nil {
				e.window.RequestClose()
			}
		}),
	)

	if e.renderer != nil {
		e.loop = render_loop.NewRenderLoop(e.state, e.renderer,
			render_loop.WithClock(e.clock),
			render_loop.WithAnimator(animator.NewAnimator(e.animatorOptions...)),
			render_loop.WithFenceTimeout(e.fenceTimeout),
			render_loop.WithProfiler(e.profiler),
		)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handler.OnResize)
		e.window.SetPaintCallback(e.handler.OnPaint)
		e.window.SetKeyDownCallback(e.handler.OnKeyDown)
		e.window.SetCloseCallback(e.handler.OnClose)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() render_state.RenderState {
	return e.state
}

func (e *engine) RenderLoop() render_loop.RenderLoop {
	return e.loop
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	if e.renderer == nil {
		return ErrNoRenderer
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	log := common.Logger()
	e.state.SetGeometry(e.window.Width(), e.window.Height())

	// The render goroutine must exist before the first event is dispatched, otherwise the first
	// paint would wait on a frame nobody renders.
	e.wg.Add(1)
	go e.handleRender()

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	log.Info("render goroutine joined")

	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		log.Warn("failed to close window", "error", err)
	}

	return e.renderErr
}

// Quit requests termination and stops the message loop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit runs the close path once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(e.handler.OnClose)
}

// handleRender runs the render loop in its own goroutine.
// A loop that died from a recovered panic stops the message loop so Run can return.
func (e *engine) handleRender() {
	defer e.wg.Done()

	if err := e.loop.Run(); err != nil {
		e.renderErr = err
		e.signalQuit()
	}
}
