package page

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Scroller smooths the page offset toward a target with a critically damped
// spring. Offsets are in pixels from the top of the page.
type Scroller struct {
	Target float64
	Offset float64
	Max    float64

	velocity float64

	frequency float64
	damping   float64
	spring    harmonica.Spring
	springDT  float64
}

// NewScroller creates a scroller at the top of the page.
func NewScroller(frequency, damping float64) *Scroller {
	if frequency <= 0 {
		frequency = 6
	}
	if damping <= 0 {
		damping = 1
	}
	return &Scroller{frequency: frequency, damping: damping}
}

// ScrollBy moves the target by d pixels.
func (s *Scroller) ScrollBy(d float64) { s.ScrollTo(s.Target + d) }

// ScrollTo sets the target offset, clamped to the page.
func (s *Scroller) ScrollTo(y float64) {
	s.Target = math.Max(0, math.Min(y, s.Max))
}

// SetMax changes the scrollable height and re-clamps the target.
func (s *Scroller) SetMax(limit float64) {
	s.Max = math.Max(0, limit)
	s.ScrollTo(s.Target)
}

// Jump moves target and offset at once, with no animation.
func (s *Scroller) Jump(y float64) {
	s.ScrollTo(y)
	s.Offset = s.Target
	s.velocity = 0
}

// Settled reports whether the offset has reached the target.
func (s *Scroller) Settled() bool { return s.Offset == s.Target && s.velocity == 0 }

// Update steps the spring by dt seconds.
func (s *Scroller) Update(dt float64) {
	if dt <= 0 || s.Settled() {
		return
	}
	if dt != s.springDT {
		s.spring = harmonica.NewSpring(dt, s.frequency, s.damping)
		s.springDT = dt
	}
	s.Offset, s.velocity = s.spring.Update(s.Offset, s.velocity, s.Target)
	if math.Abs(s.Offset-s.Target) < 0.05 && math.Abs(s.velocity) < 0.5 {
		s.Offset = s.Target
		s.velocity = 0
	}
}
