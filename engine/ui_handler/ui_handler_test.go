package ui_handler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceTogglesOncePerPress(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s)

	h.OnKeyDown(common.KeySpace, false)
	assert.True(t, s.Animating())

	for range 10 {
		h.OnKeyDown(common.KeySpace, true)
	}
	assert.True(t, s.Animating(), "auto-repeat of a held key is ignored")

	h.OnKeyDown(common.KeySpace, false)
	assert.False(t, s.Animating())
}

func TestOtherKeysAreIgnored(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s)

	h.OnKeyDown(common.KeyP, false)
	assert.False(t, s.Animating())
	assert.False(t, s.Terminating())
}

func TestEscapeClosesOnce(t *testing.T) {
	s := render_state.NewRenderState()
	closed := 0
	h := NewUIHandler(s, WithTeardown(func() { closed++ }))

	h.OnKeyDown(common.KeyEsc, false)
	h.OnKeyDown(common.KeyEsc, true)
	h.OnClose()

	assert.True(t, s.Terminating())
	assert.Equal(t, 1, closed)
}

func TestCustomKeys(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s, WithToggleKey(common.KeyP), WithCloseKey(common.KeyQ))

	h.OnKeyDown(common.KeySpace, false)
	assert.False(t, s.Animating())
	h.OnKeyDown(common.KeyP, false)
	assert.True(t, s.Animating())
	h.OnKeyDown(common.KeyQ, false)
	assert.True(t, s.Terminating())
}

func TestResizeNeverBlocks(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s)

	h.OnResize(400, 300)
	h.OnResize(410, 300)
	w, ht := s.Geometry()
	assert.Equal(t, 410, w)
	assert.Equal(t, 300, ht)
	assert.True(t, s.ResizePending())
}

func TestPaintBlocksUntilFramePresented(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s)
	h.OnResize(400, 300)

	painted := make(chan struct{})
	go func() {
		h.OnPaint()
		close(painted)
	}()

	snap := s.WaitForWork()
	require.True(t, snap.Resize)
	select {
	case <-painted:
		require.FailNow(t, "paint returned before the frame was presented")
	case <-time.After(20 * time.Millisecond):
	}

	s.FrameDone(snap.Generation)
	select {
	case <-painted:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "paint did not return after the frame was presented")
	}
}

func TestPaintAfterCloseDoesNotBlock(t *testing.T) {
	s := render_state.NewRenderState()
	h := NewUIHandler(s)
	h.OnResize(400, 300)
	h.OnClose()

	done := make(chan struct{})
	go func() {
		h.OnPaint()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "paint blocked after close")
	}
}
