// Package app runs the lowpoly viewer: it owns the window, pumps SDL
// events into the controller and draws every frame.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/control"
	"github.com/Faultbox/lowpoly/internal/engine/input"
	"github.com/Faultbox/lowpoly/internal/engine/renderer"
	"github.com/Faultbox/lowpoly/internal/engine/window"
	"github.com/Faultbox/lowpoly/internal/logger"
)

// msaaSamples is the multisample count requested for the GL context.
const msaaSamples = 4

// App is the running viewer.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	ctrl     *control.Controller
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
}

// New creates the controller, the window and the renderer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Image.Width.Default),
		zap.Int("height", cfg.Image.Height.Default),
		zap.Int("points", cfg.Generation.Points.Default),
		zap.Int("holes", len(cfg.Generation.Holes)),
	)

	// The mesh is built before any SDL state so bad parameters fail fast
	var err error
	a.ctrl, err = control.New(cfg, logger.Log)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Image.Width.Default,
		Height:     cfg.Image.Height.Default,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    msaaSamples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(w, h)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.log.Info("viewer initialized")
	return a, nil
}

// Run pumps events, advances the mesh and draws until the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop",
		zap.Duration("tick", time.Second/time.Duration(max(a.cfg.Image.FPS.Default, 1))),
	)

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		a.ctrl.Update(dt)
		a.renderer.Draw(a.ctrl.Frame())
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			a.updateTitle(frameCount)
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
		case input.EventKeyDown:
			if isQuitKey(ev.Key) {
				a.running = false
				return
			}
			if act := keyAction(ev.Key, ev.Shift, ev.Repeat); act != control.ActionNone {
				a.ctrl.Apply(act)
			}
		case input.EventMouseDown:
			a.ctrl.Apply(control.ActionRegenerate)
		}
	}
}

func (a *App) updateTitle(fps int) {
	p := a.ctrl.Engine().Params()
	title := fmt.Sprintf("%s | %d points | %d fps", a.cfg.Window.Title, p.Points, fps)
	if a.ctrl.Paused() {
		title += " | paused"
	}
	a.window.SetTitle(title)
}

// Close releases the renderer and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
