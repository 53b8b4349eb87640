package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ShaderType identifies the pipeline stage a shader entry point belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the WGSL attribute name of the stage.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

//go:embed quad.wgsl
var quadSource string

// ErrEmptySource is returned when a shader has no source code.
var ErrEmptySource = errors.New("shader source is empty")

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string
}

// Shader is a WGSL source plus the entry point used for one pipeline stage.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the GPU debug label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Type returns the pipeline stage of the entry point.
	Type() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Validate performs cheap checks before the source is handed to the GPU compiler:
	// non-empty source and an entry point declared with the matching stage attribute.
	//
	// Returns:
	//   - error: a descriptive error, or nil when the checks pass
	Validate() error
}

var _ Shader = &shader{}

// NewShader creates a Shader from source.
//
// Parameters:
//   - shaderType: the stage of the entry point
//   - key: unique key, used as debug label
//   - source: WGSL source code
//   - entryPoint: the function name of the entry point
//
// Returns:
//   - Shader: the new shader
func NewShader(shaderType ShaderType, key, source, entryPoint string) Shader {
	return &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entryPoint,
	}
}

// NewShaderFromFile reads WGSL source from disk.
//
// Parameters:
//   - shaderType: the stage of the entry point
//   - path: path of the WGSL file, also used as key
//   - entryPoint: the function name of the entry point
//
// Returns:
//   - Shader: the new shader
//   - error: if the file cannot be read
func NewShaderFromFile(shaderType ShaderType, path, entryPoint string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return NewShader(shaderType, path, string(data), entryPoint), nil
}

// QuadVertex returns the vertex stage of the built-in quad program.
func QuadVertex() Shader {
	return NewShader(ShaderTypeVertex, "quad.wgsl:vs_main", quadSource, "vs_main")
}

// QuadFragment returns the fragment stage of the built-in quad program.
func QuadFragment() Shader {
	return NewShader(ShaderTypeFragment, "quad.wgsl:fs_main", quadSource, "fs_main")
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Validate() error {
	if strings.TrimSpace(s.source) == "" {
		return fmt.Errorf("%s: %w", s.key, ErrEmptySource)
	}
	if s.entryPoint == "" {
		return fmt.Errorf("%s: no entry point", s.key)
	}
	idx := strings.Index(s.source, "fn "+s.entryPoint+"(")
	if idx < 0 {
		return fmt.Errorf("%s: entry point %q not found", s.key, s.entryPoint)
	}
	// The stage attribute must appear before the function it annotates.
	marker := "@" + s.shaderType.String()
	if !strings.Contains(s.source[:idx], marker) {
		return fmt.Errorf("%s: entry point %q is not declared %s", s.key, s.entryPoint, marker)
	}
	return nil
}
