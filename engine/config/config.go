package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine"
	"github.com/Carmen-Shannon/oxy-responsive/engine/animator"
	"github.com/Carmen-Shannon/oxy-responsive/engine/render_loop"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-responsive/engine/window"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error returned from Parse and Load.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults for fields left unset in the YAML document.
const (
	DefaultTitle         = "Press Space to pause/resume animation"
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultPresentMode   = "vsync"
	DefaultLogLevel      = "info"
	DefaultToggleKey     = "space"
	DefaultCloseKey      = "escape"
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Config is the YAML document accepted by the responsive quad program.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Animation AnimationConfig `yaml:"animation"`
	Keys      KeyConfig       `yaml:"keys"`
	Profiling bool            `yaml:"profiling"`
	LogLevel  string          `yaml:"log_level"`
}

// WindowConfig describes the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig describes the graphics collaborator.
type RendererConfig struct {
	PresentMode   string        `yaml:"present_mode"`
	FenceTimeout  time.Duration `yaml:"fence_timeout"`
	ClearColor    []float64     `yaml:"clear_color,omitempty"`
	ForceSoftware bool          `yaml:"force_software"`
	Shader        ShaderConfig  `yaml:"shader"`
}

// ShaderConfig points at a WGSL file that replaces the built-in quad program. The vertex stage
// must read the modifier uniform at group 0 binding 0. An empty Path keeps the built-in program.
type ShaderConfig struct {
	Path          string `yaml:"path"`
	VertexEntry   string `yaml:"vertex_entry"`
	FragmentEntry string `yaml:"fragment_entry"`
}

// AnimationConfig describes the modifier signal. Nil fields keep the animator defaults.
type AnimationConfig struct {
	Enabled     bool     `yaml:"enabled"`
	AngularRate *float64 `yaml:"angular_rate,omitempty"`
	Amplitude   *float64 `yaml:"amplitude,omitempty"`
	Offset      *float64 `yaml:"offset,omitempty"`
	Phase       *float64 `yaml:"phase,omitempty"`
}

// KeyConfig names the keys bound to the toggle and close actions.
type KeyConfig struct {
	Toggle string `yaml:"toggle"`
	Close  string `yaml:"close"`
}

// Default returns the configuration matching the program's built-in behaviour.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// Load reads and parses a YAML file. A missing file yields the defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the parsed configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		common.Logger().Info("config file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML document, fills unset fields with defaults and validates the result.
// Unknown fields are rejected. An empty document yields the defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	c.Window.Title = common.Coalesce(c.Window.Title, DefaultTitle)
	c.Window.Width = common.Coalesce(c.Window.Width, DefaultWidth)
	c.Window.Height = common.Coalesce(c.Window.Height, DefaultHeight)
	c.Renderer.PresentMode = common.Coalesce(c.Renderer.PresentMode, DefaultPresentMode)
	c.Renderer.FenceTimeout = common.Coalesce(c.Renderer.FenceTimeout, render_loop.DefaultFenceTimeout)
	if len(c.Renderer.ClearColor) == 0 {
		c.Renderer.ClearColor = append([]float64(nil), renderer.DefaultClearColor[:]...)
	}
	c.Renderer.Shader.VertexEntry = common.Coalesce(c.Renderer.Shader.VertexEntry, DefaultVertexEntry)
	c.Renderer.Shader.FragmentEntry = common.Coalesce(c.Renderer.Shader.FragmentEntry, DefaultFragmentEntry)
	c.Keys.Toggle = common.Coalesce(c.Keys.Toggle, DefaultToggleKey)
	c.Keys.Close = common.Coalesce(c.Keys.Close, DefaultCloseKey)
	c.LogLevel = common.Coalesce(c.LogLevel, DefaultLogLevel)
}

// Validate checks every field against its allowed range.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, ok := renderer.ParsePresentMode(c.Renderer.PresentMode); !ok {
		return fmt.Errorf("%w: present mode %q", ErrInvalidConfig, c.Renderer.PresentMode)
	}
	if c.Renderer.FenceTimeout < 0 {
		return fmt.Errorf("%w: negative fence timeout %s", ErrInvalidConfig, c.Renderer.FenceTimeout)
	}
	if len(c.Renderer.ClearColor) != 4 {
		return fmt.Errorf("%w: clear colour needs 4 components, got %d", ErrInvalidConfig, len(c.Renderer.ClearColor))
	}
	for _, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: clear colour component %v outside [0, 1]", ErrInvalidConfig, v)
		}
	}
	if r := c.Animation.AngularRate; r != nil && *r <= 0 {
		return fmt.Errorf("%w: angular rate must be positive", ErrInvalidConfig)
	}
	if a := c.Animation.Amplitude; a != nil && *a < 0 {
		return fmt.Errorf("%w: amplitude must not be negative", ErrInvalidConfig)
	}
	if _, ok := common.KeyByName(c.Keys.Toggle); !ok {
		return fmt.Errorf("%w: unknown toggle key %q", ErrInvalidConfig, c.Keys.Toggle)
	}
	if _, ok := common.KeyByName(c.Keys.Close); !ok {
		return fmt.Errorf("%w: unknown close key %q", ErrInvalidConfig, c.Keys.Close)
	}
	if c.Keys.Toggle == c.Keys.Close {
		return fmt.Errorf("%w: toggle and close keys are both %q", ErrInvalidConfig, c.Keys.Toggle)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel into a slog.Level.
//
// Returns:
//   - slog.Level: the level
//   - error: an error wrapping ErrInvalidConfig for an unknown level name
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// WindowOptions returns the window builder options for this configuration.
//
// Returns:
//   - []window.WindowBuilderOption: the options
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithWidth(c.Window.Width),
		window.WithHeight(c.Window.Height),
	}
}

// RendererOptions returns the renderer builder options for this configuration. A configured
// shader file is read here, so a missing file is reported before any window exists.
//
// Returns:
//   - []renderer.RendererBuilderOption: the options
//   - error: an error if the configured shader file cannot be read
func (c Config) RendererOptions() ([]renderer.RendererBuilderOption, error) {
	mode, _ := renderer.ParsePresentMode(c.Renderer.PresentMode)
	opts := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(c.Renderer.ForceSoftware),
	}
	if len(c.Renderer.ClearColor) == 4 {
		opts = append(opts, renderer.WithClearColor([4]float64(c.Renderer.ClearColor)))
	}

	if path := c.Renderer.Shader.Path; path != "" {
		vertex, err := shader.NewShaderFromFile(shader.ShaderTypeVertex, path, c.Renderer.Shader.VertexEntry)
		if err != nil {
			return nil, err
		}
		fragment, err := shader.NewShaderFromFile(shader.ShaderTypeFragment, path, c.Renderer.Shader.FragmentEntry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, renderer.WithShaders(vertex, fragment))
	}
	return opts, nil
}

// AnimatorOptions returns the animator options for the configured signal.
//
// Returns:
//   - []animator.AnimatorBuilderOption: the options
func (c Config) AnimatorOptions() []animator.AnimatorBuilderOption {
	var opts []animator.AnimatorBuilderOption
	if v := c.Animation.AngularRate; v != nil {
		opts = append(opts, animator.WithAngularRate(*v))
	}
	if v := c.Animation.Amplitude; v != nil {
		opts = append(opts, animator.WithAmplitude(*v))
	}
	if v := c.Animation.Offset; v != nil {
		opts = append(opts, animator.WithOffset(*v))
	}
	if v := c.Animation.Phase; v != nil {
		opts = append(opts, animator.WithPhase(*v))
	}
	return opts
}

// EngineOptions returns the engine options for this configuration, excluding the window and
// renderer which the caller creates.
//
// Returns:
//   - []engine.EngineBuilderOption: the options
func (c Config) EngineOptions() []engine.EngineBuilderOption {
	toggle, _ := common.KeyByName(c.Keys.Toggle)
	closeKey, _ := common.KeyByName(c.Keys.Close)
	return []engine.EngineBuilderOption{
		engine.WithFenceTimeout(c.Renderer.FenceTimeout),
		engine.WithProfiling(c.Profiling),
		engine.WithInitialAnimation(c.Animation.Enabled),
		engine.WithAnimatorOptions(c.AnimatorOptions()...),
		engine.WithKeyBindings(toggle, closeKey),
	}
}
