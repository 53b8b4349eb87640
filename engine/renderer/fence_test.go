package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFenceSignalsWhenPollReturns(t *testing.T) {
	release := make(chan struct{})
	f := NewFence(func() { <-release })

	assert.False(t, f.Wait(0), "fence must not signal before the poll returns")
	assert.False(t, f.Wait(10*time.Millisecond))

	close(release)
	assert.True(t, f.Wait(time.Second))
	assert.True(t, f.Wait(0))
	f.Release()
}

func TestFenceWaitIsBounded(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	f := NewFence(func() { <-block })

	start := time.Now()
	assert.False(t, f.Wait(30*time.Millisecond))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestSignaledFence(t *testing.T) {
	f := NewSignaledFence()
	assert.True(t, f.Wait(0))
	assert.True(t, f.Wait(time.Hour))
	f.Release()
}

func TestPresentModeNames(t *testing.T) {
	for _, mode := range []PresentMode{PresentModeVSync, PresentModeUncapped} {
		parsed, ok := ParsePresentMode(mode.String())
		assert.True(t, ok)
		assert.Equal(t, mode, parsed)
	}
	_, ok := ParsePresentMode("mailbox")
	assert.False(t, ok)
	parsed, ok := ParsePresentMode("")
	assert.True(t, ok)
	assert.Equal(t, PresentModeVSync, parsed)
}
