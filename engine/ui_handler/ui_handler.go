package ui_handler

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_state"
)

// UIHandler translates window events into shared state mutations. Every method is invoked on the
// UI goroutine only, from inside the window's message dispatch.
type UIHandler interface {
	// OnResize records the new client size. Never blocks.
	//
	// Parameters:
	//   - width: client width in pixels
	//   - height: client height in pixels
	OnResize(width, height int)

	// OnPaint blocks until a frame at the current client size has been presented, so the window
	// system never shows stale or garbage content at a new size.
	OnPaint()

	// OnKeyDown handles a key press. The toggle key flips animation on a fresh press and ignores
	// auto-repeat. The close key behaves like OnClose.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//   - repeat: true if the press is an auto-repeat of a held key
	OnKeyDown(keyCode uint32, repeat bool)

	// OnClose requests termination of the render goroutine, then runs the teardown callback once.
	OnClose()
}

// uiHandler implements the UIHandler interface.
type uiHandler struct {
	state render_state.RenderState

	toggleKey uint32
	closeKey  uint32

	teardown     func()
	teardownOnce sync.Once
}

var _ UIHandler = &uiHandler{}

// NewUIHandler creates a handler over the shared state.
//
// Parameters:
//   - state: the shared render state
//   - options: functional options (keys, teardown)
//
// Returns:
//   - UIHandler: the new handler
func NewUIHandler(state render_state.RenderState, options ...UIHandlerBuilderOption) UIHandler {
	h := &uiHandler{
		state:     state,
		toggleKey: common.KeySpace,
		closeKey:  common.KeyEsc,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *uiHandler) OnResize(width, height int) {
	h.state.SetGeometry(width, height)
}

func (h *uiHandler) OnPaint() {
	if h.state.BlockUntilNextFrame() {
		common.Logger().Debug("paint waited for frame")
	}
}

func (h *uiHandler) OnKeyDown(keyCode uint32, repeat bool) {
	switch keyCode {
	case h.closeKey:
		h.OnClose()
	case h.toggleKey:
		if repeat {
			return
		}
		animating := h.state.ToggleAnimation()
		common.Logger().Debug("animation toggled", "animating", animating)
	}
}

func (h *uiHandler) OnClose() {
	h.state.RequestTerminate()
	h.teardownOnce.Do(func() {
		if h.teardown != nil {
			h.teardown()
		}
	})
}
