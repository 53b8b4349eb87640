package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesBuiltInBehaviour(t *testing.T) {
	c := Default()

	assert.Equal(t, "Press Space to pause/resume animation", c.Window.Title)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, "vsync", c.Renderer.PresentMode)
	assert.Equal(t, time.Second, c.Renderer.FenceTimeout)
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 1.0}, c.Renderer.ClearColor)
	assert.False(t, c.Animation.Enabled)
	assert.Empty(t, c.AnimatorOptions())
	assert.NoError(t, c.Validate())

	level, err := c.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseEmptyDocument(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseOverrides(t *testing.T) {
	doc := `
window:
  title: quad
  width: 400
  height: 300
renderer:
  present_mode: uncapped
  fence_timeout: 250ms
  clear_color: [0, 0, 0, 1]
animation:
  enabled: true
  angular_rate: 4
  offset: 0
keys:
  toggle: p
  close: q
profiling: true
log_level: debug
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "quad", c.Window.Title)
	assert.Equal(t, 400, c.Window.Width)
	assert.Equal(t, 300, c.Window.Height)
	assert.Equal(t, 250*time.Millisecond, c.Renderer.FenceTimeout)
	assert.Equal(t, []float64{0, 0, 0, 1}, c.Renderer.ClearColor)
	assert.True(t, c.Animation.Enabled)
	require.NotNil(t, c.Animation.Offset)
	assert.Zero(t, *c.Animation.Offset, "an explicit zero offset is kept")
	assert.Nil(t, c.Animation.Amplitude)
	assert.Len(t, c.AnimatorOptions(), 2)
	assert.True(t, c.Profiling)

	mode, ok := renderer.ParsePresentMode(c.Renderer.PresentMode)
	require.True(t, ok)
	assert.Equal(t, renderer.PresentModeUncapped, mode)

	level, err := c.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	assert.Len(t, c.WindowOptions(), 3)
	rendererOpts, err := c.RendererOptions()
	require.NoError(t, err)
	assert.Len(t, rendererOpts, 3)
	assert.Len(t, c.EngineOptions(), 5)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "colour: red\n",
		"negative size":  "window:\n  width: -1\n",
		"present mode":   "renderer:\n  present_mode: mailbox\n",
		"short colour":   "renderer:\n  clear_color: [1, 0]\n",
		"colour range":   "renderer:\n  clear_color: [2, 0, 0, 1]\n",
		"negative fence": "renderer:\n  fence_timeout: -1s\n",
		"zero rate":      "animation:\n  angular_rate: 0\n",
		"amplitude":      "animation:\n  amplitude: -0.5\n",
		"toggle key":     "keys:\n  toggle: f13\n",
		"same keys":      "keys:\n  toggle: space\n  close: space\n",
		"log level":      "log_level: loud\n",
		"malformed yaml": "window: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("log_level: loud\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "responsive.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 1024\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)

	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: -2\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), path)
}

func TestDefaultDoesNotAliasRendererDefault(t *testing.T) {
	c := Default()
	c.Renderer.ClearColor[0] = 0.9
	assert.Equal(t, 0.1, renderer.DefaultClearColor[0])
}

func TestRendererOptionsLoadsShaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("@vertex\nfn vs_main() {}\n@fragment\nfn fs_main() {}\n"), 0o644))

	c, err := Parse([]byte("renderer:\n  shader:\n    path: " + path + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "vs_main", c.Renderer.Shader.VertexEntry)
	assert.Equal(t, "fs_main", c.Renderer.Shader.FragmentEntry)

	opts, err := c.RendererOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	c.Renderer.Shader.Path = filepath.Join(dir, "missing.wgsl")
	_, err = c.RendererOptions()
	assert.Error(t, err)
}
