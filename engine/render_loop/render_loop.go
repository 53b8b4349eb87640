package render_loop

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/animator"
	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
	"github.com/Carmen-Shannon/oxy-responsive/engine/profiler"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_state"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
)

// State is the phase the render goroutine is in.
type State int32

const (
	// StateWaiting is blocked in the shared state until there is work.
	StateWaiting State = iota

	// StateRendering is drawing a frame.
	StateRendering

	// StatePresenting is presenting the frame and waiting on its fence.
	StatePresenting

	// StateTerminated is final. The render goroutine has left its loop.
	StateTerminated
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRendering:
		return "rendering"
	case StatePresenting:
		return "presenting"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ErrAlreadyRun is returned when Run is called a second time.
var ErrAlreadyRun = errors.New("render loop already ran")

// DefaultFenceTimeout bounds the wait for a frame's GPU work to finish.
const DefaultFenceTimeout = time.Second

// RenderLoop drives the renderer from the render goroutine. It sleeps while there is nothing to
// draw and renders continuously while animating or while a resize is pending.
type RenderLoop interface {
	// Run executes the loop on the calling goroutine, locked to its OS thread, until termination
	// is requested through the shared state. A panic inside the loop is recovered and returned as
	// an error after the exit path has run, so the shared state is always marked exited.
	//
	// Returns:
	//   - error: nil on a requested termination, the recovered panic otherwise
	Run() error

	// State returns the current phase. Safe from any goroutine.
	State() State

	// Frames returns the number of frames presented.
	Frames() uint64

	// FenceTimeouts returns how many fence waits hit their timeout.
	FenceTimeouts() uint64

	// Modifier returns the modifier used for the most recent frame.
	Modifier() float32
}

// renderLoop implements the RenderLoop interface.
type renderLoop struct {
	state    render_state.RenderState
	renderer renderer.Renderer

	clock        clock.Clock
	animator     animator.Animator
	fenceTimeout time.Duration
	profiler     *profiler.Profiler
	observer     func(State)

	current       atomic.Int32
	frames        atomic.Uint64
	fenceTimeouts atomic.Uint64
	modifierBits  atomic.Uint32
	ran           atomic.Bool
}

var _ RenderLoop = &renderLoop{}

// NewRenderLoop creates a render loop over the shared state and renderer.
//
// Parameters:
//   - state: the shared render state
//   - r: the renderer, touched only by the goroutine calling Run
//   - options: functional options
//
// Returns:
//   - RenderLoop: the new render loop, in StateWaiting
func NewRenderLoop(state render_state.RenderState, r renderer.Renderer, options ...RenderLoopBuilderOption) RenderLoop {
	l := &renderLoop{
		state:        state,
		renderer:     r,
		fenceTimeout: DefaultFenceTimeout,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.clock == nil {
		l.clock = clock.NewClock()
	}
	if l.animator == nil {
		l.animator = animator.NewAnimator()
	}
	l.modifierBits.Store(math.Float32bits(l.animator.Modifier()))
	return l
}

func (l *renderLoop) Run() (err error) {
	if l.ran.Swap(true) {
		return ErrAlreadyRun
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	common.Logger().Info("render loop starting")
	defer l.exit()
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			err = fmt.Errorf("render loop panic: %v", r)
		}
	}()

	l.loop()
	return nil
}

// loop runs WAITING -> RENDERING -> PRESENTING until a snapshot asks for termination.
func (l *renderLoop) loop() {
	log := common.Logger()
	l.animator.Start(l.clock.Now())
	modifier := l.animator.Modifier()

	for {
		l.setState(StateWaiting)
		snap := l.state.WaitForWork()
		if snap.Terminate {
			return
		}

		if snap.Resize {
			if err := l.renderer.SetViewport(snap.Width, snap.Height); err != nil {
				log.Warn("failed to set viewport", "width", snap.Width, "height", snap.Height, "error", err)
			}
		}

		l.setState(StateRendering)
		if snap.Animate {
			modifier = l.animator.Modifier()
		}
		l.modifierBits.Store(math.Float32bits(modifier))

		// A failed draw still completes the frame so a waiting paint is released.
		if err := l.renderer.Draw(modifier); err != nil {
			if errors.Is(err, renderer.ErrSurfaceUnavailable) {
				log.Debug("frame skipped", "reason", err)
			} else {
				log.Warn("draw failed", "error", err)
			}
		}

		l.setState(StatePresenting)
		if err := l.renderer.Present(); err != nil {
			log.Warn("present failed", "error", err)
		}

		fence := l.renderer.InsertFence()
		timedOut := !fence.Wait(l.fenceTimeout)
		fence.Release()
		if timedOut {
			l.fenceTimeouts.Add(1)
			log.Warn("fence wait timed out", "timeout", l.fenceTimeout)
		}

		l.animator.Advance(l.clock.Now(), snap.Slept)
		l.frames.Add(1)
		l.state.FrameDone(snap.Generation)

		if l.profiler != nil {
			l.profiler.Tick(snap.Slept, timedOut)
		}
	}
}

// exit is the only way out of Run. MarkExited runs even if Unbind panics.
func (l *renderLoop) exit() {
	defer common.Logger().Info("render loop exiting", "frames", l.frames.Load())
	defer l.state.MarkExited()
	defer l.setState(StateTerminated)
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("renderer unbind panicked", "panic", r)
		}
	}()

	l.renderer.Unbind()
}

func (l *renderLoop) setState(s State) {
	if State(l.current.Swap(int32(s))) == s {
		return
	}
	common.Logger().Debug("render loop state", "state", s)
	if l.observer != nil {
		l.observer(s)
	}
}

func (l *renderLoop) State() State {
	return State(l.current.Load())
}

func (l *renderLoop) Frames() uint64 {
	return l.frames.Load()
}

func (l *renderLoop) FenceTimeouts() uint64 {
	return l.fenceTimeouts.Load()
}

func (l *renderLoop) Modifier() float32 {
	return math.Float32frombits(l.modifierBits.Load())
}
