// Package app wires the showcase together: configuration, the background
// model load, the 3D scene controller, the scrolling page and the overlay
// batch. Both binaries drive it from their own window loop.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/assets"
	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/debugpanel"
	"github.com/Faultbox/scrollscene/internal/engine/geom"
	"github.com/Faultbox/scrollscene/internal/engine/overlay"
	"github.com/Faultbox/scrollscene/internal/page"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

// Viewport sizes: the page lays out in window points, the scene renders in
// drawable pixels.
type Viewport struct {
	Width, Height  int
	PixelW, PixelH int
}

// App is the running showcase. All methods run on the render loop.
type App struct {
	Config *config.Config
	Scene  *showcase.Controller
	Page   *page.Page
	Assets *assets.Manager
	Meter  *debugpanel.FrameMeter
	Atlas  *geom.Atlas
	Batch  *overlay.Batch
	Layout overlay.Layout

	ShowStats bool

	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

// New boots the showcase. The model load starts immediately; the first
// section plays as soon as the scene exists.
func New(cfg *config.Config, drawer showcase.Drawer, vp Viewport, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Config:    cfg,
		Assets:    assets.NewManager(cfg.Assets.SampleCount, log.Named("assets")),
		Meter:     debugpanel.NewFrameMeter(0.1),
		Atlas:     geom.NewAtlas(),
		Layout:    overlay.DefaultLayout(),
		ShowStats: cfg.Debug.ShowStats,
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
	}
	a.Batch = overlay.NewBatch(a.Atlas)

	opts, err := showcase.OptionsFromConfig(cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	if vp.PixelH > 0 {
		opts.Aspect = float32(vp.PixelW) / float32(vp.PixelH)
	}

	deps := showcase.Deps{Drawer: drawer, Log: log.Named("scene")}
	if cfg.Assets.ModelPath != "" {
		deps.Model = a.Assets.LoadAsync(ctx, cfg.Assets.ModelPath)
	} else {
		log.Warn("no model path configured; model sections stay unavailable")
	}

	a.Scene, err = showcase.New(deps, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	a.Scene.Resize(vp.PixelW, vp.PixelH)

	a.Page, err = page.New(page.Options{
		Config:         cfg.Page,
		ViewportWidth:  float64(vp.Width),
		ViewportHeight: float64(vp.Height),
		Measure:        func(s string) float32 { return a.Atlas.Measure(s, 1) },
	}, a.Scene, log.Named("page"))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	if first := a.Scene.Sections(); len(first) > 0 {
		if err := a.Scene.AnimateToSection(first[0]); err != nil {
			log.Warn("initial section not started", zap.String("section", string(first[0])), zap.Error(err))
		}
	}

	log.Info("showcase ready",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.String("model", cfg.Assets.ModelPath),
	)
	return a, nil
}

// Step advances one frame: page first, so trigger crossings land in this
// frame's scene update, then the scene draws. The error is the scene's frame
// result; it has already been logged.
func (a *App) Step(dt float64) error {
	a.Meter.Tick(dt)
	a.Page.Update(dt)
	return a.Scene.Frame(dt)
}

// Halted reports whether err means the scene stopped drawing this frame.
func Halted(err error) bool {
	return errors.Is(err, showcase.ErrRenderHalted)
}

// Compose fills the overlay batch for this frame.
func (a *App) Compose() *overlay.Batch {
	a.Batch.Reset()
	var stats []string
	if a.ShowStats {
		stats = a.StatsLines()
	}
	overlay.Compose(a.Batch, a.Page, a.Layout, stats)
	return a.Batch
}

// StatsLines returns the stats overlay text.
func (a *App) StatsLines() []string {
	return debugpanel.StatsLines(a.Meter, a.Scene.Stats(), a.Scene.Current(), a.Page.Pending())
}

// Resize relays a new window size.
func (a *App) Resize(vp Viewport) {
	a.Scene.Resize(vp.PixelW, vp.PixelH)
	a.Page.Resize(float64(vp.Width), float64(vp.Height))
	a.log.Debug("resized", zap.Int("width", vp.Width), zap.Int("height", vp.Height))
}

// Context is cancelled by Close; background loads started with it stop
// delivering.
func (a *App) Context() context.Context { return a.ctx }

// Close stops background work.
func (a *App) Close() {
	a.cancel()
	a.log.Info("showcase closed", zap.Object("state", a.Scene.State()))
}
