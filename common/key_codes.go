package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32  // Spacebar (ASCII)
	KeyP     = 80  // P key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// keyNames maps the key codes above to the names accepted in configuration files.
var keyNames = map[string]uint32{
	"space":  KeySpace,
	"p":      KeyP,
	"q":      KeyQ,
	"escape": KeyEsc,
	"esc":    KeyEsc,
}

// KeyByName resolves a configuration key name (case-sensitive, lower case) to its key code.
//
// Parameters:
//   - name: the key name, e.g. "space" or "escape"
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyByName(name string) (uint32, bool) {
	code, ok := keyNames[name]
	return code, ok
}
