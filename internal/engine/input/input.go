// Package input translates SDL2 events into page and camera input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scrollscene/internal/page"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseLeave
	EventWheel
	EventDrag
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	// DX, DY hold drag deltas; DY also holds wheel notches.
	DX, DY float32
}

// Input handles all input processing.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. Returns true on quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Translate(event) {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. It lets callers that own the event pump,
// like the imgui backend, feed events in. Returns true on quit.
func (i *Input) Translate(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		case sdl.WINDOWEVENT_LEAVE:
			i.events = append(i.events, Event{Type: EventMouseLeave})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				i.events = append(i.events, Event{Type: EventQuit})
				return true
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
		}

	case *sdl.MouseMotionEvent:
		i.events = append(i.events, Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)})
		if i.dragging {
			i.events = append(i.events, Event{Type: EventDrag, DX: float32(e.XRel), DY: float32(e.YRel)})
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		i.events = append(i.events, Event{Type: EventWheel, DY: dy})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Reset drops queued events; used when events are fed through Translate.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// PageKey maps a scancode to a page navigation key.
func PageKey(sc sdl.Scancode) page.Key {
	switch sc {
	case sdl.SCANCODE_LEFT:
		return page.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return page.KeyRight
	case sdl.SCANCODE_UP:
		return page.KeyUp
	case sdl.SCANCODE_DOWN:
		return page.KeyDown
	case sdl.SCANCODE_PAGEUP:
		return page.KeyPageUp
	case sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_SPACE:
		return page.KeyPageDown
	case sdl.SCANCODE_HOME:
		return page.KeyHome
	case sdl.SCANCODE_END:
		return page.KeyEnd
	}
	return page.KeyNone
}

// Dispatch routes translated events to the page. It returns the new size on
// resize and whether one happened.
func Dispatch(events []Event, p *page.Page) (w, h int, resized bool) {
	for _, e := range events {
		switch e.Type {
		case EventKeyDown:
			p.HandleKey(PageKey(e.Key))
		case EventWheel:
			p.Wheel(float64(e.DY))
		case EventMouseMove:
			p.PointerMove(float64(e.MouseX), float64(e.MouseY))
		case EventMouseLeave:
			p.PointerLeave()
		case EventWindowResize:
			w, h, resized = e.Width, e.Height, true
		}
	}
	return w, h, resized
}
