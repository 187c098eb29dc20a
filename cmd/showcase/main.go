// Package main is the showcase page: a full-window scroll-driven 3D scene
// with the 2D page furniture drawn on top.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/app"
	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/debugpanel"
	"github.com/Faultbox/scrollscene/internal/engine/input"
	"github.com/Faultbox/scrollscene/internal/engine/overlay"
	"github.com/Faultbox/scrollscene/internal/engine/renderer"
	"github.com/Faultbox/scrollscene/internal/engine/window"
	"github.com/Faultbox/scrollscene/internal/logger"
)

const windowTitle = "Scroll Scene"

// maxFrameDelta caps dt after a stall so timelines do not jump.
const maxFrameDelta = 0.1

// hotkeys are the debug shortcuts enabled by debug.show_panel.
var hotkeys = map[sdl.Scancode]debugpanel.Hotkey{
	sdl.SCANCODE_F1: debugpanel.HotkeyFog,
	sdl.SCANCODE_F2: debugpanel.HotkeyHelpers,
	sdl.SCANCODE_F3: debugpanel.HotkeyStats,
	sdl.SCANCODE_F4: debugpanel.HotkeyAnimate,
	sdl.SCANCODE_F5: debugpanel.HotkeyOverview,
	sdl.SCANCODE_F6: debugpanel.HotkeyNormalize,
	sdl.SCANCODE_F7: debugpanel.HotkeyDump,
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("showcase failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	vp := viewport(win)

	rend, err := renderer.New(renderer.Config{Width: vp.PixelW, Height: vp.PixelH}, logger.Named("renderer"))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer rend.Close()

	a, err := app.New(cfg, rend, vp, logger.Named("app"))
	if err != nil {
		return err
	}
	defer a.Close()

	ov, err := overlay.New(vp.Width, vp.Height, a.Atlas)
	if err != nil {
		return fmt.Errorf("creating overlay: %w", err)
	}
	defer ov.Close()

	var panel *debugpanel.Panel
	if cfg.Debug.ShowPanel {
		panel = debugpanel.New(a.Context(), a.Scene, a.Assets, debugpanel.Toggles{
			Fog:     cfg.Scene.FogEnabled,
			Helpers: cfg.Debug.Helpers,
			Stats:   a.ShowStats,
			Animate: a.Scene.WaveAnimation(),
		}, logger.Named("panel"))
		logger.Info("debug hotkeys enabled", zap.String("keys", "F1 fog, F2 helpers, F3 stats, F4 animate, F5 overview, F6 normalize, F7 dump"))
	}

	var minFrame time.Duration
	if cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	in := input.New()
	last := time.Now()
	for {
		if in.Update() {
			logger.Info("quit requested")
			return nil
		}
		if _, _, resized := input.Dispatch(in.Events(), a.Page); resized {
			// The event carries window points; the drawable may differ.
			vp = viewport(win)
			rend.Resize(vp.PixelW, vp.PixelH)
			ov.Resize(vp.Width, vp.Height)
			a.Resize(vp)
		}
		for _, e := range in.Events() {
			switch {
			case e.Type == input.EventKeyDown && panel != nil:
				panel.Apply(hotkeys[e.Key])
			case e.Type == input.EventDrag && a.Scene.OverviewActive():
				a.Scene.Overview().HandleDrag(e.DX, e.DY)
			}
		}
		if panel != nil {
			a.ShowStats = panel.Toggles.Stats
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), maxFrameDelta)
		last = now

		rend.Clear(a.Scene.Scene().Fog.Color)
		// Frame errors are logged by the scene; the page keeps going.
		_ = a.Step(dt)
		ov.Flush(a.Compose())
		win.SwapBuffers()

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}
}

func viewport(win *window.Window) app.Viewport {
	w, h := win.GetSize()
	pw, ph := win.DrawableSize()
	return app.Viewport{Width: w, Height: h, PixelW: pw, PixelH: ph}
}
