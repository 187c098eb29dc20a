package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scrollscene/internal/page"
)

func TestPageKey(t *testing.T) {
	tests := []struct {
		sc   sdl.Scancode
		want page.Key
	}{
		{sdl.SCANCODE_LEFT, page.KeyLeft},
		{sdl.SCANCODE_RIGHT, page.KeyRight},
		{sdl.SCANCODE_PAGEDOWN, page.KeyPageDown},
		{sdl.SCANCODE_SPACE, page.KeyPageDown},
		{sdl.SCANCODE_HOME, page.KeyHome},
		{sdl.SCANCODE_A, page.KeyNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageKey(tt.sc), "scancode %d", tt.sc)
	}
}

func TestTranslate(t *testing.T) {
	in := New()

	assert.False(t, in.Translate(&sdl.MouseWheelEvent{Y: 2}))
	assert.False(t, in.Translate(&sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED}))
	assert.False(t, in.Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600}))
	assert.False(t, in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_END}}))
	assert.False(t, in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_END}}))

	ev := in.Events()
	require.Len(t, ev, 4)
	assert.Equal(t, Event{Type: EventWheel, DY: 2}, ev[0])
	assert.Equal(t, Event{Type: EventWheel, DY: -1}, ev[1])
	assert.Equal(t, Event{Type: EventWindowResize, Width: 800, Height: 600}, ev[2])
	assert.Equal(t, Event{Type: EventKeyDown, Key: sdl.SCANCODE_END}, ev[3])

	assert.True(t, in.Translate(&sdl.QuitEvent{}))
	assert.True(t, in.Translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}}))

	in.Reset()
	assert.Empty(t, in.Events())
}

func TestTranslate_RightDrag(t *testing.T) {
	in := New()
	in.Translate(&sdl.MouseMotionEvent{X: 5, Y: 5, XRel: 1})
	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT})
	in.Translate(&sdl.MouseMotionEvent{X: 8, Y: 9, XRel: 3, YRel: 4})
	in.Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT})
	in.Translate(&sdl.MouseMotionEvent{X: 9, Y: 9, XRel: 1})

	var drags []Event
	for _, e := range in.Events() {
		if e.Type == EventDrag {
			drags = append(drags, e)
		}
	}
	require.Len(t, drags, 1)
	assert.Equal(t, float32(3), drags[0].DX)
	assert.Equal(t, float32(4), drags[0].DY)
}
