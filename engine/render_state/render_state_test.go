package render_state

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/engine/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventually = 2 * time.Second

func waitForWorkAsync(s RenderState) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	go func() { out <- s.WaitForWork() }()
	return out
}

func TestNewRenderStateStartsZeroed(t *testing.T) {
	s := NewRenderState()
	w, h := s.Geometry()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.False(t, s.Animating())
	assert.False(t, s.Terminating())
	assert.False(t, s.ResizePending())
	assert.False(t, s.Exited())
	assert.Zero(t, s.FramesPresented())
}

func TestSetGeometryMarksResizeOnce(t *testing.T) {
	s := NewRenderState()

	assert.True(t, s.SetGeometry(400, 300))
	assert.True(t, s.SetGeometry(400, 300), "unchanged geometry keeps the pending flag")

	snap := s.WaitForWork()
	assert.True(t, snap.Resize)
	assert.Equal(t, 400, snap.Width)
	assert.Equal(t, 300, snap.Height)
	assert.False(t, s.ResizePending(), "WaitForWork clears the pending flag")

	rw, rh := s.RenderedGeometry()
	assert.Equal(t, 400, rw)
	assert.Equal(t, 300, rh)

	assert.False(t, s.SetGeometry(400, 300), "geometry already acted on is not a resize")
}

func TestSetGeometryClampsNegative(t *testing.T) {
	s := NewRenderState()
	s.SetGeometry(-5, 10)
	w, h := s.Geometry()
	assert.Equal(t, 0, w)
	assert.Equal(t, 10, h)
}

func TestToggleAnimationTwiceRestores(t *testing.T) {
	s := NewRenderState()
	assert.True(t, s.ToggleAnimation())
	assert.False(t, s.ToggleAnimation())
	assert.False(t, s.Animating())
}

func TestWithAnimationOption(t *testing.T) {
	s := NewRenderState(WithAnimation(true))
	assert.True(t, s.Animating())

	snap := s.WaitForWork()
	assert.True(t, snap.Animate)
	assert.False(t, snap.Resize)
	assert.Zero(t, snap.Slept)
}

func TestTerminateIsMonotonic(t *testing.T) {
	s := NewRenderState()
	s.RequestTerminate()
	s.RequestTerminate()
	s.ToggleAnimation()
	s.SetGeometry(10, 10)
	assert.True(t, s.Terminating())
	assert.True(t, s.WaitForWork().Terminate)
	assert.True(t, s.WaitForWork().Terminate)
}

func TestWaitForWorkSleepsUntilToggled(t *testing.T) {
	c := clock.NewManualClock()
	s := NewRenderState(WithClock(c))

	out := waitForWorkAsync(s)
	require.Eventually(t, s.Sleeping, eventually, time.Millisecond)

	select {
	case <-out:
		t.Fatal("WaitForWork returned without work")
	default:
	}

	c.Advance(250 * time.Millisecond)
	s.ToggleAnimation()

	select {
	case snap := <-out:
		assert.True(t, snap.Animate)
		assert.False(t, snap.Terminate)
		assert.Equal(t, 250*time.Millisecond, snap.Slept)
	case <-time.After(eventually):
		t.Fatal("WaitForWork did not wake on toggle")
	}
	assert.False(t, s.Sleeping())
}

func TestWaitForWorkIgnoresSpuriousWakeups(t *testing.T) {
	s := NewRenderState()
	out := waitForWorkAsync(s)
	require.Eventually(t, s.Sleeping, eventually, time.Millisecond)

	// FrameDone broadcasts without creating work for the render side.
	s.FrameDone(0)
	time.Sleep(20 * time.Millisecond)
	select {
	case <-out:
		t.Fatal("WaitForWork acted on a bare wakeup")
	default:
	}

	s.RequestTerminate()
	select {
	case snap := <-out:
		assert.True(t, snap.Terminate)
	case <-time.After(eventually):
		t.Fatal("WaitForWork did not wake on terminate")
	}
}

func TestBlockUntilNextFrameNoopWhenRendered(t *testing.T) {
	s := NewRenderState()
	assert.False(t, s.BlockUntilNextFrame())

	s.SetGeometry(200, 100)
	snap := s.WaitForWork()
	s.FrameDone(snap.Generation)
	assert.False(t, s.BlockUntilNextFrame())
}

func TestBlockUntilNextFrameWaitsForMatchingGeneration(t *testing.T) {
	s := NewRenderState()
	s.SetGeometry(400, 300)

	done := make(chan bool, 1)
	go func() { done <- s.BlockUntilNextFrame() }()

	snap := s.WaitForWork()
	require.True(t, snap.Resize)

	// A frame from an older generation must not release the waiter.
	s.FrameDone(snap.Generation - 1)
	select {
	case <-done:
		t.Fatal("paint returned before a frame at the new size was presented")
	case <-time.After(20 * time.Millisecond):
	}

	s.FrameDone(snap.Generation)
	select {
	case blocked := <-done:
		assert.True(t, blocked)
	case <-time.After(eventually):
		t.Fatal("paint never returned")
	}
	assert.Equal(t, uint64(2), s.FramesPresented())
}

func TestBlockUntilNextFrameWaitsForInFlightFrame(t *testing.T) {
	s := NewRenderState()
	s.SetGeometry(640, 480)
	snap := s.WaitForWork() // snapshot taken, frame not yet presented

	done := make(chan bool, 1)
	go func() { done <- s.BlockUntilNextFrame() }()

	select {
	case <-done:
		t.Fatal("paint returned while the frame at the new size was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	s.FrameDone(snap.Generation)
	select {
	case blocked := <-done:
		assert.True(t, blocked)
	case <-time.After(eventually):
		t.Fatal("paint never returned")
	}
}

func TestBlockUntilNextFrameReleasedByExit(t *testing.T) {
	s := NewRenderState()
	s.SetGeometry(10, 10)

	done := make(chan struct{})
	go func() {
		s.BlockUntilNextFrame()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	s.MarkExited()

	select {
	case <-done:
	case <-time.After(eventually):
		t.Fatal("paint blocked on an exited render goroutine")
	}
	assert.False(t, s.BlockUntilNextFrame(), "paint after exit never blocks")
}

func TestBlockUntilNextFrameAfterTerminate(t *testing.T) {
	s := NewRenderState()
	s.SetGeometry(10, 10)
	s.RequestTerminate()
	assert.False(t, s.BlockUntilNextFrame())
}

func TestConcurrentProtocolNeverDeadlocks(t *testing.T) {
	s := NewRenderState()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			snap := s.WaitForWork()
			if snap.Terminate {
				s.MarkExited()
				return
			}
			s.FrameDone(snap.Generation)
		}
	}()

	for i := 1; i <= 200; i++ {
		s.SetGeometry(i, i*2)
		if i%3 == 0 {
			s.ToggleAnimation()
		}
		s.BlockUntilNextFrame()
		rw, rh := s.RenderedGeometry()
		assert.Equal(t, i, rw)
		assert.Equal(t, i*2, rh)
	}
	s.RequestTerminate()

	joined := make(chan struct{})
	go func() {
		wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(eventually):
		t.Fatal("render side never observed termination")
	}
	assert.True(t, s.Exited())
}
