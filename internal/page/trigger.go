package page

import "github.com/Faultbox/scrollscene/internal/showcase"

// Region is one stacked block of the page, in pixels.
type Region struct {
	ID     string
	Top    float64
	Height float64
}

// Bottom returns the first pixel below the region.
func (r Region) Bottom() float64 { return r.Top + r.Height }

// Trigger watches the line where a region's top meets Start·viewport height.
// Crossing it downward enters; crossing it upward leaves back.
type Trigger struct {
	Region string
	Start  float64

	OnEnter     showcase.Section
	OnLeaveBack showcase.Section
	// ReverseOnLeaveBack is reversed before OnLeaveBack is played.
	ReverseOnLeaveBack showcase.Section

	line   float64
	active bool
}

// Line returns the scroll offset at which the trigger fires.
func (t *Trigger) Line() float64 { return t.line }

// Active reports whether the page is scrolled past the trigger line.
func (t *Trigger) Active() bool { return t.active }

// request is a section change produced by a trigger.
type request struct {
	section showcase.Section
	reverse showcase.Section
}

// cross updates every trigger for the new offset and returns the requests in
// the order the crossings happened.
func cross(triggers []*Trigger, offset float64) []request {
	var down, up []request
	for _, t := range triggers {
		now := offset >= t.line
		switch {
		case now && !t.active:
			down = append(down, request{section: t.OnEnter})
		case !now && t.active:
			up = append(up, request{section: t.OnLeaveBack, reverse: t.ReverseOnLeaveBack})
		}
		t.active = now
	}
	// Moving up, the lowest trigger is crossed first.
	for i, j := 0, len(up)-1; i < j; i, j = i+1, j-1 {
		up[i], up[j] = up[j], up[i]
	}
	return append(down, up...)
}
