// Package app wires the window, GPU resources and renderer together for one
// tutorial chapter.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/stewi1014/glchapters/config"
	"github.com/stewi1014/glchapters/dialog"
	"github.com/stewi1014/glchapters/platform"
	"github.com/stewi1014/glchapters/programs"
	"github.com/stewi1014/glchapters/render"
	"github.com/stewi1014/glchapters/resources"
	"github.com/stewi1014/glchapters/window"
)

// Chapter describes one tutorial program.
type Chapter struct {
	// Title is the default window title and FPS title prefix.
	Title string
	// Program names a registered shader program to draw the quad with.
	// Empty means the chapter only clears the screen.
	Program string
}

// Main runs chapter and exits the process with status 1 on any error.
// It must be called from the main goroutine with the OS thread locked.
func Main(chapter Chapter) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.FromEnv(chapter.Title)
	logger := newLogger(cfg)
	if err != nil {
		fatal(cfg, logger, fmt.Errorf("config: %w", err))
	}

	if err := Run(ctx, cfg, chapter, logger); err != nil {
		fatal(cfg, logger, err)
	}
}

// Run opens the window, uploads the chapter's resources and renders until
// the window is closed. Resources are released before Run returns.
func Run(ctx context.Context, cfg config.Config, chapter Chapter, logger *slog.Logger) error {
	win, err := platform.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer win.Destroy()

	var geometry render.Geometry
	cleanup := func() error { return nil }

	if chapter.Program != "" {
		source, err := programs.Lookup(chapter.Program)
		if err != nil {
			return err
		}

		m := resources.NewManager(win.GL, source, logger)
		if err := m.Setup(); err != nil {
			return errors.Join(err, m.Teardown())
		}
		geometry = m.Buffers
		cleanup = m.Teardown
	}

	renderer := render.New(win.GL, cfg.ClearColour(), geometry)
	host := window.New(win, win.GL, renderer,
		window.WithLogger(logger),
		window.WithTitlePrefix(cfg.Title),
		window.WithCleanup(cleanup),
	)
	return host.Run(ctx)
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func fatal(cfg config.Config, logger *slog.Logger, err error) {
	logger.Error("fatal", "err", err)
	if cfg.ErrorDialog {
		if dialogErr := dialog.ShowError(cfg.Title, err); dialogErr != nil {
			logger.Warn("could not show error dialog", "err", dialogErr)
		}
	}
	os.Exit(1)
}
