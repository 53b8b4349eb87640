package ui_handler

// UIHandlerBuilderOption is a functional option for configuring a UIHandler.
type UIHandlerBuilderOption func(*uiHandler)

// WithToggleKey sets the key that pauses and resumes animation. Defaults to common.KeySpace.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - UIHandlerBuilderOption: option function to apply
func WithToggleKey(keyCode uint32) UIHandlerBuilderOption {
	return func(h *uiHandler) {
		h.toggleKey = keyCode
	}
}

// WithCloseKey sets the key that closes the window. Defaults to common.KeyEsc.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - UIHandlerBuilderOption: option function to apply
func WithCloseKey(keyCode uint32) UIHandlerBuilderOption {
	return func(h *uiHandler) {
		h.closeKey = keyCode
	}
}

// WithTeardown sets the callback run once after termination is requested, normally closing the window.
//
// Parameters:
//   - teardown: the callback
//
// Returns:
//   - UIHandlerBuilderOption: option function to apply
func WithTeardown(teardown func()) UIHandlerBuilderOption {
	return func(h *uiHandler) {
		h.teardown = teardown
	}
}
