// Package platform opens a glfw window with an OpenGL core-profile context.
//
// Everything here must run on the main OS thread; callers lock it in an init
// function before main starts.
package platform

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glchapters/config"
	"github.com/stewi1014/glchapters/gpu"
	"github.com/stewi1014/glchapters/gpu/glnative"
)

// Window is a glfw window whose context is current on the calling thread.
type Window struct {
	*glfw.Window
	GL *glnative.API
}

// Open initialises glfw, creates the window and context described by cfg,
// and loads the GL entry points. The caller must call Destroy.
func Open(cfg config.Config, logger *slog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GL.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GL.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.RedBits, 8)
	glfw.WindowHint(glfw.GreenBits, 8)
	glfw.WindowHint(glfw.BlueBits, 8)
	glfw.WindowHint(glfw.AlphaBits, 8)
	if cfg.GL.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	window, err := glfw.CreateWindow(
		cfg.Width,
		cfg.Height,
		cfg.Title,
		nil,
		nil,
	)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create a new rendering window: %w", err)
	}

	w := &Window{
		Window: window,
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(0)

	w.GL, err = glnative.New()
	if err != nil {
		w.Destroy()
		return nil, err
	}

	gpu.LogVersion(logger, w.GL)

	if cfg.GL.Debug && !w.GL.EnableDebugOutput(logger) {
		logger.Warn("GL debug output unavailable", "extension", glnative.DebugExtension)
	}

	return w, nil
}

// Destroy closes the window and terminates glfw.
func (w *Window) Destroy() {
	w.Window.Destroy()
	glfw.Terminate()
}

func (w *Window) Size() (width, height int) {
	return w.GetFramebufferSize()
}

func (w *Window) SetSizeCallback(f func(width, height int)) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

func (w *Window) SetCloseCallback(f func()) {
	w.Window.SetCloseCallback(func(_ *glfw.Window) {
		f()
	})
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}
