// Package window drives a platform window: it owns the frame loop, the
// resize, render, idle, close and timer callbacks, and the FPS title.
package window

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stewi1014/glchapters/render"
)

// Window is the platform side of the host. Callbacks fire from PollEvents on
// the calling goroutine.
type Window interface {
	render.Presenter
	SetTitle(title string)
	Size() (width, height int)
	SetSizeCallback(func(width, height int))
	SetCloseCallback(func())
	ShouldClose() bool
	PollEvents()
}

// Renderer draws one frame and presents it.
type Renderer interface {
	Render(p render.Presenter)
}

// Viewporter receives the new drawable region after a resize.
type Viewporter interface {
	Viewport(x, y, width, height int32)
}

type Option func(*Host)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// WithClock replaces time.Now for the FPS timer.
func WithClock(now func() time.Time) Option {
	return func(h *Host) { h.now = now }
}

// WithCleanup sets the function run once when the window closes.
func WithCleanup(cleanup func() error) Option {
	return func(h *Host) { h.cleanup = cleanup }
}

func WithTitlePrefix(prefix string) Option {
	return func(h *Host) { h.prefix = prefix }
}

// Host holds all state the callbacks touch. It is not safe for concurrent
// use; every method runs on the goroutine that owns the GL context.
type Host struct {
	win      Window
	viewport Viewporter
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
	cleanup  func() error
	prefix   string

	width, height int
	fps           FPSCounter
	redraw        bool
	closed        bool

	cleanedUp  bool
	cleanupErr error
}

// New registers the host's callbacks on win, applies the current size to
// the viewport and arms the FPS timer to fire immediately.
func New(win Window, viewport Viewporter, renderer Renderer, opts ...Option) *Host {
	h := &Host{
		win:      win,
		viewport: viewport,
		renderer: renderer,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	win.SetSizeCallback(h.resize)
	win.SetCloseCallback(h.close)

	h.resize(win.Size())
	h.fps.Arm(h.now(), 0)
	return h
}

// Run dispatches events and renders until the window closes or ctx is done.
// The cleanup function has run exactly once when Run returns, and its error
// is returned.
func (h *Host) Run(ctx context.Context) error {
	for {
		h.win.PollEvents()
		if h.closed || h.win.ShouldClose() || ctx.Err() != nil {
			break
		}

		h.timer(h.now())
		if h.redraw {
			h.render()
		}
		h.idle()
	}

	if err := ctx.Err(); err != nil {
		h.logger.Debug("frame loop cancelled", "cause", context.Cause(ctx))
	}
	return h.runCleanup()
}

// Size returns the last size reported to the viewport.
func (h *Host) Size() (width, height int) {
	return h.width, h.height
}

// Frames returns the frames rendered since the last timer tick.
func (h *Host) Frames() uint {
	return h.fps.Frames()
}

func (h *Host) resize(width, height int) {
	h.width, h.height = width, height
	h.viewport.Viewport(0, 0, int32(width), int32(height))
	h.redraw = true
}

func (h *Host) render() {
	h.redraw = false
	h.fps.Frame()
	h.renderer.Render(h.win)
}

// idle keeps the loop rendering as fast as it can.
func (h *Host) idle() {
	h.redraw = true
}

func (h *Host) timer(now time.Time) {
	fps, ok := h.fps.Tick(now)
	if !ok {
		return
	}
	h.win.SetTitle(fmt.Sprintf("%s: %d FPS @ %d x %d", h.prefix, fps, h.width, h.height))
}

func (h *Host) close() {
	h.closed = true
	h.runCleanup()
}

func (h *Host) runCleanup() error {
	if h.cleanedUp {
		return h.cleanupErr
	}
	h.cleanedUp = true

	h.logger.Debug("window closed, releasing resources")
	if h.cleanup != nil {
		h.cleanupErr = h.cleanup()
	}
	return h.cleanupErr
}
