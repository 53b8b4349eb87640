// Command responsive opens a window with an animated quad that pauses with Space, quits with
// Escape and keeps showing correct content while the window is being resized.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine"
	"github.com/Carmen-Shannon/oxy-responsive/engine/config"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer"
	"github.com/Carmen-Shannon/oxy-responsive/engine/window"
)

// Exit codes.
const (
	exitOK    = 0
	exitSetup = 1
	exitUsage = 2
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run parses flags, loads the configuration and runs the engine until the window closes.
//
// Parameters:
//   - args: command line arguments without the program name
//   - stderr: destination for usage text and logs
//
// Returns:
//   - int: the process exit code
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("responsive", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath = flags.String("config", "responsive.yaml", "YAML configuration file; missing means defaults")
		logLevel   = flags.String("log-level", "", "override the configured log level (debug, info, warn, error)")
		animate    = flags.Bool("animate", false, "start with the animation running")
		profile    = flags.Bool("profile", false, "log frame statistics every second")
		shaderPath = flags.String("shader", "", "WGSL file replacing the built-in quad program")
	)
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitSetup
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.Animation.Enabled = cfg.Animation.Enabled || *animate
	cfg.Profiling = cfg.Profiling || *profile
	if *shaderPath != "" {
		cfg.Renderer.Shader.Path = *shaderPath
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitSetup
	}
	common.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	log := common.Logger()

	rendererOpts, err := cfg.RendererOptions()
	if err != nil {
		log.Error("failed to load shader", "error", err)
		return exitSetup
	}

	win, err := window.NewWindowE(cfg.WindowOptions()...)
	if err != nil {
		log.Error("failed to create window", "error", err)
		return exitSetup
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOpts...)
	if err != nil {
		log.Error("failed to create renderer", "error", err)
		_ = win.Close()
		return exitSetup
	}

	eng := engine.NewEngine(append(cfg.EngineOptions(),
		engine.WithWindow(win),
		engine.WithRenderer(r),
	)...)

	log.Info("starting", "title", cfg.Window.Title, "width", cfg.Window.Width, "height", cfg.Window.Height)
	if err := eng.Run(); err != nil {
		log.Error("engine stopped", "error", err)
		return exitSetup
	}
	log.Info("clean shutdown")
	return exitOK
}
