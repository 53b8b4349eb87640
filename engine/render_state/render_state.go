package render_state

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
)

// Snapshot is the view of the shared state the render goroutine acts on for one frame.
// It is copied out under the lock so no shared field is touched during GPU work.
type Snapshot struct {
	// Terminate reports that the UI goroutine requested shutdown.
	Terminate bool

	// Animate reports whether animation was enabled when the snapshot was taken.
	Animate bool

	// Resize reports that Width and Height have not been rendered yet.
	Resize bool

	// Width is the latest client width observed by the UI goroutine.
	Width int

	// Height is the latest client height observed by the UI goroutine.
	Height int

	// Generation identifies the geometry this frame reflects. Passed back through FrameDone.
	Generation uint64

	// Slept is the time spent blocked inside the wait primitive before the snapshot was taken.
	Slept time.Duration
}

// RenderState is the monitor shared by exactly one UI goroutine and one render goroutine.
// Every field is guarded by one mutex and every mutation the other side must observe is
// paired with a broadcast on the condition variable bound to that mutex. All waits re-check
// their predicate, so spurious wakeups are harmless.
type RenderState interface {
	// SetGeometry records the latest client size observed by the UI goroutine.
	// If the size differs from the geometry the render goroutine last acted on, a resize is
	// marked pending and the render goroutine is woken. Idempotent for an unchanged size.
	// Negative dimensions are clamped to zero. UI goroutine only.
	//
	// Parameters:
	//   - width: client width in pixels
	//   - height: client height in pixels
	//
	// Returns:
	//   - bool: true if a resize is pending after the call
	SetGeometry(width, height int) bool

	// ToggleAnimation flips the animation flag and wakes the render goroutine. Never blocks.
	//
	// Returns:
	//   - bool: the new value of the animation flag
	ToggleAnimation() bool

	// SetAnimation sets the animation flag and wakes the render goroutine.
	//
	// Parameters:
	//   - enabled: the new value of the animation flag
	SetAnimation(enabled bool)

	// RequestTerminate marks the state as terminating and wakes the render goroutine.
	// The flag never returns to false. Safe to call more than once.
	RequestTerminate()

	// WaitForWork blocks the render goroutine while there is nothing to do (not animating,
	// no resize pending, no termination requested). It returns a snapshot of the state and
	// atomically clears the pending resize, recording the snapshot geometry as acted on.
	// Render goroutine only.
	//
	// Returns:
	//   - Snapshot: the state to render this frame from
	WaitForWork() Snapshot

	// BlockUntilNextFrame is the paint path. If the latest geometry has not been presented yet
	// it marks the resize pending, wakes the render goroutine under the same lock acquisition,
	// then blocks until a frame reflecting that geometry has been presented or the render
	// goroutine has exited. UI goroutine only.
	//
	// Returns:
	//   - bool: true if the call blocked waiting for a frame
	BlockUntilNextFrame() bool

	// FrameDone records that the frame rendered from the snapshot with the given generation is
	// visible, and wakes a UI goroutine blocked in BlockUntilNextFrame. Render goroutine only.
	//
	// Parameters:
	//   - generation: the Generation of the snapshot the frame was rendered from
	FrameDone(generation uint64)

	// MarkExited records that the render goroutine has left its loop so that no UI waiter can
	// block on it again. Render goroutine only, on its exit path.
	MarkExited()

	// The accessors below are read-only diagnostics. They take the lock but never wait, and the
	// lifecycle itself never branches on them; tests use them to observe the monitor.

	// Geometry returns the latest geometry recorded by the UI goroutine.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Geometry() (width, height int)

	// RenderedGeometry returns the geometry the render goroutine last took a snapshot of.
	// Diagnostic only.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	RenderedGeometry() (width, height int)

	// Animating reports the animation flag.
	Animating() bool

	// Terminating reports whether termination has been requested.
	Terminating() bool

	// ResizePending reports whether a geometry change is waiting for the render goroutine.
	ResizePending() bool

	// Sleeping reports whether the render goroutine is currently blocked in WaitForWork.
	// Diagnostic only; the answer may be stale as soon as the lock is released.
	Sleeping() bool

	// FramesPresented returns the number of frames completed through FrameDone.
	FramesPresented() uint64

	// Exited reports whether MarkExited has been called.
	Exited() bool
}

// renderState implements the RenderState interface.
type renderState struct {
	mu    sync.Mutex
	cond  *sync.Cond
	clock clock.Clock

	currentWidth  int
	currentHeight int
	pendingWidth  int
	pendingHeight int

	resizePending      bool
	animateEnabled     bool
	terminateRequested bool

	// geometryGeneration counts geometries recorded but not yet acted on by the render goroutine.
	geometryGeneration uint64
	// presentedGeneration is the highest generation whose frame has been presented.
	presentedGeneration uint64
	framesPresented     uint64

	sleeping     bool
	renderExited bool
}

var _ RenderState = &renderState{}

// NewRenderState creates the shared state with every flag false and every size zero.
//
// Parameters:
//   - options: functional options (clock, initial animation flag)
//
// Returns:
//   - RenderState: the new shared state
func NewRenderState(options ...RenderStateBuilderOption) RenderState {
	s := &renderState{}
	for _, opt := range options {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.NewClock()
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *renderState) SetGeometry(width, height int) bool {
	width, height = max(width, 0), max(height, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if width == s.currentWidth && height == s.currentHeight {
		return s.resizePending
	}
	s.currentWidth, s.currentHeight = width, height

	if width != s.pendingWidth || height != s.pendingHeight {
		s.resizePending = true
		s.geometryGeneration++
		s.cond.Broadcast()
	}
	return s.resizePending
}

func (s *renderState) ToggleAnimation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.animateEnabled = !s.animateEnabled
	s.cond.Broadcast()
	return s.animateEnabled
}

func (s *renderState) SetAnimation(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.animateEnabled = enabled
	s.cond.Broadcast()
}

func (s *renderState) RequestTerminate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.terminateRequested = true
	s.cond.Broadcast()
}

func (s *renderState) WaitForWork() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slept time.Duration
	for !s.animateEnabled && !s.resizePending && !s.terminateRequested {
		// Only the interval spent inside Wait counts as sleep.
		s.sleeping = true
		before := s.clock.Now()
		s.cond.Wait()
		slept += s.clock.Now() - before
		s.sleeping = false
	}

	snap := Snapshot{
		Terminate:  s.terminateRequested,
		Animate:    s.animateEnabled,
		Resize:     s.resizePending,
		Width:      s.currentWidth,
		Height:     s.currentHeight,
		Generation: s.geometryGeneration,
		Slept:      slept,
	}

	if s.resizePending {
		s.pendingWidth, s.pendingHeight = s.currentWidth, s.currentHeight
		s.resizePending = false
	}
	return snap
}

func (s *renderState) BlockUntilNextFrame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderExited || s.terminateRequested {
		return false
	}

	stale := s.currentWidth != s.pendingWidth || s.currentHeight != s.pendingHeight
	if !s.resizePending && !stale && s.presentedGeneration >= s.geometryGeneration {
		return false
	}

	if !s.resizePending && stale {
		s.resizePending = true
		s.geometryGeneration++
	}
	target := s.geometryGeneration

	// The flag set above and this broadcast share one lock acquisition, so the render
	// goroutine cannot miss it even if it is about to sleep.
	s.cond.Broadcast()
	for s.presentedGeneration < target && !s.renderExited {
		s.cond.Wait()
	}
	return true
}

func (s *renderState) FrameDone(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation > s.presentedGeneration {
		s.presentedGeneration = generation
	}
	s.framesPresented++
	s.cond.Broadcast()
}

func (s *renderState) MarkExited() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderExited = true
	s.sleeping = false
	s.cond.Broadcast()
}

func (s *renderState) Geometry() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWidth, s.currentHeight
}

func (s *renderState) RenderedGeometry() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingWidth, s.pendingHeight
}

func (s *renderState) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animateEnabled
}

func (s *renderState) Terminating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminateRequested
}

func (s *renderState) ResizePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resizePending
}

func (s *renderState) Sleeping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sleeping
}

func (s *renderState) FramesPresented() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.framesPresented
}

func (s *renderState) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderExited
}
