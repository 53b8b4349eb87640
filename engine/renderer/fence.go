package renderer

import "time"

// Fence signals that GPU work submitted before it was inserted has finished executing.
type Fence interface {
	// Wait blocks until the fence signals or the timeout elapses. A non-positive timeout
	// only checks the current state. The wait is always bounded.
	//
	// Parameters:
	//   - timeout: the longest time to block
	//
	// Returns:
	//   - bool: true if the fence signaled, false on timeout
	Wait(timeout time.Duration) bool

	// Release frees the fence. Safe to call after a timed out Wait.
	Release()
}

// pollFence is signaled when a blocking poll function returns.
type pollFence struct {
	done chan struct{}
}

var _ Fence = &pollFence{}

// NewFence starts poll on its own goroutine and returns a Fence that signals when poll returns.
// poll is expected to block until the GPU queue is idle, e.g. a device poll with wait=true.
//
// Parameters:
//   - poll: blocking function that returns once submitted work completed
//
// Returns:
//   - Fence: the new fence
func NewFence(poll func()) Fence {
	f := &pollFence{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		poll()
	}()
	return f
}

func (f *pollFence) Wait(timeout time.Duration) bool {
	if timeout <= 0 {
		select {
		case <-f.done:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return true
	case <-timer.C:
		return false
	}
}

func (f *pollFence) Release() {}

// signaledFence is a Fence with no outstanding work.
type signaledFence struct{}

// NewSignaledFence returns a Fence that is already signaled. Used when a frame submitted no GPU work.
//
// Returns:
//   - Fence: a fence whose Wait always succeeds immediately
func NewSignaledFence() Fence {
	return signaledFence{}
}

func (signaledFence) Wait(time.Duration) bool { return true }
func (signaledFence) Release()                {}
