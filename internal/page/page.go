// Package page is the scrolling document around the 3D scene. It owns the
// smooth scroll position, fires section changes as the page crosses trigger
// lines, and hosts the 2D furniture: ticker, carousel and parallax hero.
package page

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/carousel"
	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/showcase"
	"github.com/Faultbox/scrollscene/internal/ticker"
	"github.com/Faultbox/scrollscene/internal/tween"
)

// SceneDriver is the part of the 3D scene the page drives.
type SceneDriver interface {
	AnimateToSection(id showcase.Section) error
	ReverseSection(id showcase.Section) error
}

// Key is a page navigation key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Options configures a page.
type Options struct {
	Config         config.PageConfig
	ViewportWidth  float64
	ViewportHeight float64
	// Measure sizes ticker text; nil uses the bitmap font.
	Measure ticker.MeasureFunc
}

// Page is the scroll-driven document. All methods run on the render loop.
type Page struct {
	cfg   config.PageConfig
	scene SceneDriver
	sched *tween.Scheduler
	log   *zap.Logger

	Ticker   *ticker.Ticker
	Carousel *carousel.Carousel
	Parallax *Parallax
	Scroll   *Scroller

	regions  []Region
	triggers []*Trigger
	pending  *request

	viewW, viewH float64
}

// New boots the 2D subsystems and lays the page out for the viewport.
func New(opts Options, scene SceneDriver, log *zap.Logger) (*Page, error) {
	if scene == nil {
		return nil, errors.New("page: nil scene")
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	if len(cfg.Regions) == 0 {
		return nil, errors.New("page: no regions")
	}

	p := &Page{
		cfg:      cfg,
		scene:    scene,
		sched:    tween.NewScheduler(),
		log:      log,
		Parallax: NewParallax(cfg.ParallaxDepths, cfg.SpringFrequency, cfg.SpringDamping),
		Scroll:   NewScroller(cfg.SpringFrequency, cfg.SpringDamping),
	}

	known := make(map[string]bool, len(cfg.Regions))
	for _, r := range cfg.Regions {
		known[r.ID] = true
	}
	for _, tc := range cfg.Triggers {
		if !known[tc.Region] {
			return nil, fmt.Errorf("page: trigger on unknown region %q", tc.Region)
		}
		p.triggers = append(p.triggers, &Trigger{
			Region:             tc.Region,
			Start:              tc.Start,
			OnEnter:            showcase.Section(tc.OnEnter),
			OnLeaveBack:        showcase.Section(tc.OnLeaveBack),
			ReverseOnLeaveBack: showcase.Section(tc.ReverseOnLeaveBack),
		})
	}

	quotes := make([]ticker.Quote, 0, len(cfg.Quotes))
	for _, q := range cfg.Quotes {
		quotes = append(quotes, ticker.Quote{Symbol: q.Symbol, Price: q.Price, Change: q.Change})
	}
	tk, err := ticker.New(ticker.Options{
		Quotes:   quotes,
		Language: cfg.Language,
		Leg:      cfg.TickerLeg,
		Measure:  opts.Measure,
	}, p.sched, log.Named("ticker"))
	if err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	p.Ticker = tk

	car, err := carousel.New(carousel.Options{
		Captions:       cfg.Slides,
		Interval:       cfg.CarouselInterval,
		ViewportWidth:  float32(opts.ViewportWidth),
		ViewportHeight: float32(opts.ViewportHeight),
	}, p.sched, log.Named("carousel"))
	if err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	p.Carousel = car

	p.layout(opts.ViewportWidth, opts.ViewportHeight)
	log.Info("page ready",
		zap.Int("regions", len(p.regions)),
		zap.Int("triggers", len(p.triggers)),
		zap.Float64("height", p.Height()),
	)
	return p, nil
}

func (p *Page) layout(viewW, viewH float64) {
	p.viewW, p.viewH = viewW, viewH
	p.regions = p.regions[:0]
	top := 0.0
	for _, r := range p.cfg.Regions {
		h := r.Height * viewH
		p.regions = append(p.regions, Region{ID: r.ID, Top: top, Height: h})
		top += h
	}
	for _, t := range p.triggers {
		if r, ok := p.Region(t.Region); ok {
			t.line = r.Top - t.Start*viewH
		}
	}
	p.Scroll.SetMax(top - viewH)
}

// Resize lays the page out for a new viewport.
func (p *Page) Resize(viewW, viewH float64) {
	p.layout(viewW, viewH)
	p.Carousel.Resize(float32(viewW), float32(viewH))
}

// Update advances the page by dt seconds: 2D animations, smooth scroll, the
// pending section request, trigger crossings and the parallax springs.
func (p *Page) Update(dt float64) {
	p.sched.Advance(dt)
	p.Scroll.Update(dt)

	if p.pending != nil {
		p.try(*p.pending)
	}
	for _, req := range cross(p.triggers, p.Scroll.Offset) {
		p.fire(req)
	}

	p.Parallax.Update(dt)
}

func (p *Page) fire(req request) {
	if req.reverse != "" {
		if err := p.scene.ReverseSection(req.reverse); err != nil {
			p.log.Debug("reverse skipped", zap.String("section", string(req.reverse)), zap.Error(err))
		}
	}
	if req.section != "" {
		p.try(request{section: req.section})
	}
}

// try requests a section change. A section that is not ready yet stays
// pending and is retried every frame; a newer request replaces it.
func (p *Page) try(req request) {
	err := p.scene.AnimateToSection(req.section)
	switch {
	case err == nil:
		if p.pending != nil {
			p.log.Info("pending section started", zap.String("section", string(req.section)))
		}
		p.pending = nil
	case errors.Is(err, showcase.ErrSectionNotReady):
		if p.pending == nil || p.pending.section != req.section {
			p.log.Info("section pending", zap.String("section", string(req.section)))
		}
		p.pending = &req
	case errors.Is(err, showcase.ErrAssetUnavailable):
		p.log.Warn("section dropped", zap.String("section", string(req.section)), zap.Error(err))
		p.pending = nil
	default:
		p.log.Error("section change failed", zap.String("section", string(req.section)), zap.Error(err))
		p.pending = nil
	}
}

// Pending returns the section waiting to become ready, or "".
func (p *Page) Pending() showcase.Section {
	if p.pending == nil {
		return ""
	}
	return p.pending.section
}

// Wheel scrolls by wheel notches; positive dy scrolls up.
func (p *Page) Wheel(dy float64) {
	p.Scroll.ScrollBy(-dy * p.cfg.ScrollStep)
}

// HandleKey routes navigation keys. It reports whether the key was used.
func (p *Page) HandleKey(k Key) bool {
	switch k {
	case KeyLeft:
		p.Carousel.Prev()
	case KeyRight:
		p.Carousel.Next()
	case KeyUp:
		p.Scroll.ScrollBy(-p.cfg.ScrollStep)
	case KeyDown:
		p.Scroll.ScrollBy(p.cfg.ScrollStep)
	case KeyPageUp:
		p.Scroll.ScrollBy(-p.viewH)
	case KeyPageDown:
		p.Scroll.ScrollBy(p.viewH)
	case KeyHome:
		p.Scroll.ScrollTo(0)
	case KeyEnd:
		p.Scroll.ScrollTo(p.Scroll.Max)
	default:
		return false
	}
	return true
}

// PointerMove feeds the pointer position in viewport pixels. Only the hero
// region reacts, and only while the pointer is over it.
func (p *Page) PointerMove(x, y float64) {
	if len(p.regions) == 0 {
		return
	}
	hero := p.regions[0]
	top := hero.Top - p.Scroll.Offset
	inside := x >= 0 && x < p.viewW && y >= top && y < top+hero.Height
	if !inside {
		p.Parallax.Pointer(0, 0, false)
		return
	}
	nx := (x - p.viewW/2) / (p.viewW / 2)
	ny := (y - (top + hero.Height/2)) / (hero.Height / 2)
	p.Parallax.Pointer(nx, ny, true)
}

// PointerLeave is called when the pointer leaves the window.
func (p *Page) PointerLeave() { p.Parallax.Pointer(0, 0, false) }

// Region looks up a region by id.
func (p *Page) Region(id string) (Region, bool) {
	for _, r := range p.regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// Regions returns the laid out regions.
func (p *Page) Regions() []Region {
	out := make([]Region, len(p.regions))
	copy(out, p.regions)
	return out
}

// Triggers returns the scroll triggers in page order.
func (p *Page) Triggers() []*Trigger { return p.triggers }

// Height returns the full page height in pixels.
func (p *Page) Height() float64 {
	if len(p.regions) == 0 {
		return 0
	}
	return p.regions[len(p.regions)-1].Bottom()
}

// Viewport returns the viewport size in pixels.
func (p *Page) Viewport() (float64, float64) { return p.viewW, p.viewH }

// Offset returns the rendered scroll offset.
func (p *Page) Offset() float64 { return p.Scroll.Offset }

// Scheduler returns the scheduler driving the 2D animations.
func (p *Page) Scheduler() *tween.Scheduler { return p.sched }
