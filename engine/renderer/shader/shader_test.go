package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadShadersValidate(t *testing.T) {
	require.NoError(t, QuadVertex().Validate())
	require.NoError(t, QuadFragment().Validate())
	assert.Contains(t, QuadVertex().Source(), "uniforms.modifier")
	assert.Equal(t, ShaderTypeFragment, QuadFragment().Type())
	assert.Equal(t, "fs_main", QuadFragment().EntryPoint())
}

func TestValidateRejectsBrokenSources(t *testing.T) {
	assert.ErrorIs(t, NewShader(ShaderTypeVertex, "empty", "  ", "vs_main").Validate(), ErrEmptySource)
	assert.Error(t, NewShader(ShaderTypeVertex, "missing", "fn other() {}", "vs_main").Validate())
	assert.Error(t, NewShader(ShaderTypeVertex, "no-entry", quadSource, "").Validate())
	assert.Error(t, NewShader(ShaderTypeVertex, "wrong-stage", "@fragment\nfn vs_main() {}", "vs_main").Validate())
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(quadSource), 0o644))

	s, err := NewShaderFromFile(ShaderTypeVertex, path, "vs_main")
	require.NoError(t, err)
	assert.Equal(t, path, s.Key())
	assert.NoError(t, s.Validate())

	_, err = NewShaderFromFile(ShaderTypeVertex, filepath.Join(t.TempDir(), "missing.wgsl"), "vs_main")
	assert.Error(t, err)
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "ShaderType(9)", ShaderType(9).String())
}
