// Package carousel is the testimonial slider: a cyclic strip of slides that
// autoplays and tilts the inactive slides away from the viewer.
package carousel

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/tween"
)

// Layout constants, in pixels and degrees.
const (
	Margin      = 20
	Tilt        = 40
	SlideFactor = 0.35

	moveDuration = 0.6
)

// ErrNoSlides is returned when a carousel is created without slides.
var ErrNoSlides = errors.New("carousel: no slides")

// Slide is one carousel item.
type Slide struct {
	Caption string
	Active  bool
	// Rotation about Y in degrees; 0 for the active slide.
	Rotation float32
}

// Options configures a carousel.
type Options struct {
	Captions []string
	Interval time.Duration

	ViewportWidth  float32
	ViewportHeight float32
}

// Carousel tracks the active slide and animates the strip toward it.
// Index is 1-based. All methods run on the render loop.
type Carousel struct {
	Slides []Slide
	// Offset is the animated horizontal translation of the strip.
	Offset float32

	index    int
	interval float64

	viewW, viewH  float32
	width, height float32

	sched *tween.Scheduler
	timer *tween.Timeline
	log   *zap.Logger
}

// New lays out the slides, snaps to the first one and starts autoplay.
func New(opts Options, sched *tween.Scheduler, log *zap.Logger) (*Carousel, error) {
	if len(opts.Captions) == 0 {
		return nil, ErrNoSlides
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Carousel{
		Slides:   make([]Slide, len(opts.Captions)),
		interval: opts.Interval.Seconds(),
		sched:    sched,
		log:      log,
	}
	if c.interval <= 0 {
		c.interval = 8
	}
	for i, caption := range opts.Captions {
		c.Slides[i].Caption = caption
	}

	c.layout(opts.ViewportWidth, opts.ViewportHeight)
	c.index = c.wrap(1)
	c.snap()

	c.timer = sched.NewTimeline("carousel:autoplay").
		Call(func() { c.move(c.index+1) }, tween.At(c.interval)).
		Repeat(-1)
	c.timer.Restart()
	return c, nil
}

// Index returns the 1-based active slide.
func (c *Carousel) Index() int { return c.index }

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.Slides) }

// Move activates slide i, wrapping out-of-range indices, and returns the
// resulting index. It does not touch the autoplay timer.
func (c *Carousel) Move(i int) int {
	return c.move(i)
}

// Next moves one slide forward and restarts the autoplay timer.
func (c *Carousel) Next() int {
	i := c.move(c.index+1)
	c.timer.Restart()
	return i
}

// Prev moves one slide back and restarts the autoplay timer.
func (c *Carousel) Prev() int {
	i := c.move(c.index-1)
	c.timer.Restart()
	return i
}

// Resize recomputes slide sizes for a new viewport and snaps the strip.
func (c *Carousel) Resize(viewW, viewH float32) {
	c.layout(viewW, viewH)
	c.snap()
}

// SlideSize returns the width and height of one slide cell.
func (c *Carousel) SlideSize() (float32, float32) { return c.width, c.height }

// ItemWidth is the visible slide width inside its margins.
func (c *Carousel) ItemWidth() float32 { return c.width - 2*Margin }

// TotalWidth is the width of the whole strip.
func (c *Carousel) TotalWidth() float32 { return c.width * float32(len(c.Slides)) }

// TargetOffset is the strip translation that centres slide index.
func (c *Carousel) TargetOffset(index int) float32 {
	return float32(index)*-c.width + c.width/2 + c.viewW/2
}

// SlideX returns the left edge of slide i (0-based) in viewport space.
func (c *Carousel) SlideX(i int) float32 {
	return c.Offset + float32(i)*c.width + Margin
}

func (c *Carousel) layout(viewW, viewH float32) {
	c.viewW, c.viewH = viewW, viewH
	c.width = viewW * SlideFactor
	c.height = viewH * SlideFactor
}

func (c *Carousel) wrap(i int) int {
	n := len(c.Slides)
	if i < 1 {
		return n
	}
	if i > n {
		return 1
	}
	return i
}

func (c *Carousel) rotationFor(i int) float32 {
	switch {
	case i == c.index-1:
		return 0
	case i < c.index-1:
		return Tilt
	default:
		return -Tilt
	}
}

func (c *Carousel) move(i int) int {
	c.index = c.wrap(i)
	tl := c.sched.Once("carousel:move")
	tl.To(tween.Float(&c.Offset), c.TargetOffset(c.index), moveDuration, tween.At(0))
	for s := range c.Slides {
		c.Slides[s].Active = s == c.index-1
		tl.To(tween.Float(&c.Slides[s].Rotation), c.rotationFor(s), moveDuration, tween.At(0))
	}
	c.log.Debug("carousel move", zap.Int("index", c.index))
	return c.index
}

func (c *Carousel) snap() {
	c.Offset = c.TargetOffset(c.index)
	for s := range c.Slides {
		c.Slides[s].Active = s == c.index-1
		c.Slides[s].Rotation = c.rotationFor(s)
	}
}
