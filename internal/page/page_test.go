package page

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

type fakeScene struct {
	calls   []string
	ready   map[showcase.Section]bool
	failed  map[showcase.Section]bool
	current showcase.Section
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		ready: map[showcase.Section]bool{
			"section1": true,
			"section2": true,
		},
		failed: map[showcase.Section]bool{},
	}
}

func (f *fakeScene) AnimateToSection(id showcase.Section) error {
	f.calls = append(f.calls, "to:"+string(id))
	switch {
	case f.failed[id]:
		return fmt.Errorf("%w: %s", showcase.ErrAssetUnavailable, id)
	case !f.ready[id]:
		return fmt.Errorf("%w: %s", showcase.ErrSectionNotReady, id)
	}
	f.current = id
	return nil
}

func (f *fakeScene) ReverseSection(id showcase.Section) error {
	f.calls = append(f.calls, "reverse:"+string(id))
	if !f.ready[id] {
		return fmt.Errorf("%w: %s", showcase.ErrSectionNotReady, id)
	}
	return nil
}

func newTestPage(t *testing.T, scene SceneDriver) *Page {
	t.Helper()
	p, err := New(Options{
		Config:         config.Default().Page,
		ViewportWidth:  1000,
		ViewportHeight: 800,
		Measure:        func(string) float32 { return 50 },
	}, scene, nil)
	require.NoError(t, err)
	return p
}

func run(p *Page, seconds float64) {
	frames := int(seconds*60 + 0.5)
	for i := 0; i < frames; i++ {
		p.Update(1.0 / 60)
	}
}

func TestNew_Layout(t *testing.T) {
	p := newTestPage(t, newFakeScene())

	regions := p.Regions()
	require.Len(t, regions, 5)
	assert.Equal(t, Region{ID: "section2", Top: 800, Height: 800}, regions[1])
	assert.Equal(t, Region{ID: "section5", Top: 3200, Height: 1200}, regions[4])
	assert.Equal(t, 4400.0, p.Height())
	assert.Equal(t, 3600.0, p.Scroll.Max)

	tr := p.Triggers()
	require.Len(t, tr, 2)
	assert.Equal(t, 400.0, tr[0].Line(), "section2 top at 50% of the viewport")
	assert.Equal(t, 2800.0, tr[1].Line())

	require.NotNil(t, p.Ticker)
	require.NotNil(t, p.Carousel)
	assert.Len(t, p.Parallax.Layers, 4)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Config: config.Default().Page}, nil, nil)
	assert.Error(t, err)

	cfg := config.Default().Page
	cfg.Triggers = append(cfg.Triggers, config.TriggerConfig{Region: "nowhere", OnEnter: "section1"})
	_, err = New(Options{Config: cfg, ViewportWidth: 100, ViewportHeight: 100}, newFakeScene(), nil)
	assert.ErrorContains(t, err, "nowhere")

	cfg = config.Default().Page
	cfg.Slides = nil
	_, err = New(Options{Config: cfg, ViewportWidth: 100, ViewportHeight: 100}, newFakeScene(), nil)
	assert.Error(t, err)
}

func TestScroll_SpringSettles(t *testing.T) {
	p := newTestPage(t, newFakeScene())

	p.Scroll.ScrollTo(1000)
	p.Update(1.0 / 60)
	assert.Greater(t, p.Offset(), 0.0)
	assert.Less(t, p.Offset(), 1000.0, "offset follows, it does not jump")

	run(p, 3)
	assert.Equal(t, 1000.0, p.Offset())
	assert.True(t, p.Scroll.Settled())

	p.Scroll.ScrollTo(-50)
	assert.Zero(t, p.Scroll.Target)
	p.Scroll.ScrollTo(1e9)
	assert.Equal(t, p.Scroll.Max, p.Scroll.Target)
}

func TestScroll_NoOvershoot(t *testing.T) {
	s := NewScroller(6, 1)
	s.SetMax(5000)
	s.ScrollTo(1000)
	for i := 0; i < 300; i++ {
		s.Update(1.0 / 60)
		assert.LessOrEqual(t, s.Offset, 1000.0+1e-6, "critically damped spring overshot at frame %d", i)
	}
}

func TestTriggers_EnterAndLeaveBack(t *testing.T) {
	scene := newFakeScene()
	p := newTestPage(t, scene)

	p.Scroll.ScrollTo(500)
	run(p, 3)
	assert.Equal(t, []string{"to:section2"}, scene.calls)
	assert.True(t, p.Triggers()[0].Active())

	// Staying past the line does not fire again.
	p.Scroll.ScrollTo(700)
	run(p, 2)
	assert.Len(t, scene.calls, 1)

	p.Scroll.ScrollTo(0)
	run(p, 3)
	assert.Equal(t, []string{"to:section2", "to:section1"}, scene.calls)
	assert.Equal(t, showcase.Section("section1"), scene.current)
}

func TestTriggers_Section5ReversesSection3(t *testing.T) {
	scene := newFakeScene()
	scene.ready["section3"] = true
	p := newTestPage(t, scene)

	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	assert.Equal(t, []string{"to:section2", "to:section3"}, scene.calls, "both lines crossed in one frame, in page order")

	scene.calls = nil
	p.Scroll.Jump(2000)
	p.Update(1.0 / 60)
	assert.Equal(t, []string{"reverse:section3", "to:section2"}, scene.calls)

	scene.calls = nil
	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	p.Scroll.Jump(0)
	p.Update(1.0 / 60)
	assert.Equal(t, []string{"to:section3", "reverse:section3", "to:section2", "to:section1"}, scene.calls,
		"moving up, the lower line is crossed first")
}

func TestTriggers_EmptyActionsAreSkipped(t *testing.T) {
	scene := newFakeScene()
	cfg := config.Default().Page
	cfg.Triggers = []config.TriggerConfig{
		{Region: "section2", Start: 0.5, OnEnter: "section2"},
		{Region: "section5", Start: 0.5, OnLeaveBack: "section2"},
	}
	p, err := New(Options{
		Config:         cfg,
		ViewportWidth:  1000,
		ViewportHeight: 800,
		Measure:        func(string) float32 { return 50 },
	}, scene, nil)
	require.NoError(t, err)

	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	assert.Equal(t, []string{"to:section2"}, scene.calls, "section5 has nothing on enter")

	scene.calls = nil
	p.Scroll.Jump(2000)
	p.Update(1.0 / 60)
	p.Scroll.Jump(0)
	p.Update(1.0 / 60)
	assert.Equal(t, []string{"to:section2"}, scene.calls, "only section5 plays on leave back")
	assert.Nil(t, p.pending)
}

func TestPending_RetriedUntilReady(t *testing.T) {
	scene := newFakeScene()
	p := newTestPage(t, scene)

	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	assert.Equal(t, showcase.Section("section3"), p.Pending())
	assert.Equal(t, showcase.Section("section2"), scene.current)

	before := len(scene.calls)
	run(p, 0.5)
	assert.Equal(t, before+30, len(scene.calls), "retried every frame")
	assert.Equal(t, showcase.Section("section3"), p.Pending())

	scene.ready["section3"] = true
	p.Update(1.0 / 60)
	assert.Empty(t, p.Pending())
	assert.Equal(t, showcase.Section("section3"), scene.current)

	n := len(scene.calls)
	run(p, 0.5)
	assert.Len(t, scene.calls, n, "no retries once started")
}

func TestPending_DroppedOnAssetFailure(t *testing.T) {
	scene := newFakeScene()
	p := newTestPage(t, scene)

	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	require.Equal(t, showcase.Section("section3"), p.Pending())

	scene.failed["section3"] = true
	p.Update(1.0 / 60)
	assert.Empty(t, p.Pending())

	n := len(scene.calls)
	run(p, 0.5)
	assert.Len(t, scene.calls, n)
	assert.Equal(t, showcase.Section("section2"), scene.current)
}

func TestPending_ReplacedByNewerRequest(t *testing.T) {
	scene := newFakeScene()
	p := newTestPage(t, scene)

	p.Scroll.Jump(3000)
	p.Update(1.0 / 60)
	require.Equal(t, showcase.Section("section3"), p.Pending())

	p.Scroll.Jump(1000)
	p.Update(1.0 / 60)
	assert.Empty(t, p.Pending())
	assert.Equal(t, showcase.Section("section2"), scene.current)

	scene.ready["section3"] = true
	run(p, 0.5)
	assert.Equal(t, showcase.Section("section2"), scene.current, "stale request must not fire")
}

func TestHandleKey(t *testing.T) {
	p := newTestPage(t, newFakeScene())

	assert.True(t, p.HandleKey(KeyRight))
	assert.Equal(t, 2, p.Carousel.Index())
	assert.True(t, p.HandleKey(KeyLeft))
	assert.True(t, p.HandleKey(KeyLeft))
	assert.Equal(t, p.Carousel.Len(), p.Carousel.Index())

	p.HandleKey(KeyPageDown)
	assert.Equal(t, 800.0, p.Scroll.Target)
	p.HandleKey(KeyDown)
	assert.Equal(t, 920.0, p.Scroll.Target)
	p.HandleKey(KeyUp)
	p.HandleKey(KeyPageUp)
	assert.Zero(t, p.Scroll.Target)
	p.HandleKey(KeyEnd)
	assert.Equal(t, 3600.0, p.Scroll.Target)
	p.HandleKey(KeyHome)
	assert.Zero(t, p.Scroll.Target)

	assert.False(t, p.HandleKey(KeyNone))
}

func TestWheel(t *testing.T) {
	p := newTestPage(t, newFakeScene())
	p.Wheel(-2)
	assert.Equal(t, 240.0, p.Scroll.Target)
	p.Wheel(1)
	assert.Equal(t, 120.0, p.Scroll.Target)
}

func TestParallax_HoverOnly(t *testing.T) {
	p := newTestPage(t, newFakeScene())
	layers := p.Parallax.Layers

	// Top-left corner of the hero.
	p.PointerMove(0, 0)
	require.True(t, p.Parallax.Hovering())
	run(p, 3)
	for i := range layers {
		tx, ty := p.Parallax.Target(i)
		assert.InDelta(t, tx, p.Parallax.Layers[i].X, 0.05)
		assert.InDelta(t, ty, p.Parallax.Layers[i].Y, 0.05)
		assert.Positive(t, p.Parallax.Layers[i].X, "layers move against the pointer")
	}
	assert.Greater(t, p.Parallax.Layers[3].X, p.Parallax.Layers[0].X, "deeper layers move further")

	// Leaving the hero returns the layers to rest.
	p.PointerMove(500, 900)
	assert.False(t, p.Parallax.Hovering())
	run(p, 3)
	for _, l := range p.Parallax.Layers {
		assert.InDelta(t, 0, l.X, 0.05)
		assert.InDelta(t, 0, l.Y, 0.05)
	}
}

func TestParallax_HeroScrolledAway(t *testing.T) {
	p := newTestPage(t, newFakeScene())
	p.Scroll.Jump(800)
	p.PointerMove(500, 400)
	assert.False(t, p.Parallax.Hovering())
	p.PointerLeave()
	assert.False(t, p.Parallax.Hovering())
}

func TestResize(t *testing.T) {
	p := newTestPage(t, newFakeScene())
	p.Resize(2000, 1000)

	r, ok := p.Region("section5")
	require.True(t, ok)
	assert.Equal(t, 4000.0, r.Top)
	assert.Equal(t, 1500.0, r.Height)
	assert.Equal(t, 3500.0, p.Triggers()[1].Line())
	w, _ := p.Carousel.SlideSize()
	assert.InDelta(t, 700, w, 1e-3)

	_, ok = p.Region("missing")
	assert.False(t, ok)
}
