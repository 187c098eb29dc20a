package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/engine/geom"
	"github.com/Faultbox/scrollscene/internal/page"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

type nopScene struct{}

func (nopScene) AnimateToSection(showcase.Section) error { return nil }
func (nopScene) ReverseSection(showcase.Section) error   { return nil }

func newPage(t *testing.T) *page.Page {
	t.Helper()
	atlas := geom.NewAtlas()
	p, err := page.New(page.Options{
		Config:         config.Default().Page,
		ViewportWidth:  1000,
		ViewportHeight: 800,
		Measure:        func(s string) float32 { return atlas.Measure(s, 1) },
	}, nopScene{}, nil)
	require.NoError(t, err)
	return p
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 128.0 / 255, 0, 1}, c)

	_, err = Hex("#fff")
	assert.Error(t, err)
	_, err = Hex("#gggggg")
	assert.Error(t, err)
}

func TestBatch_RectAndText(t *testing.T) {
	b := NewBatch(geom.NewAtlas())
	b.Rect(10, 20, 30, 40, ColorWhite)
	require.Equal(t, 6, b.SolidCount())
	assert.Equal(t, []float32{10, 20, 1, 1, 1, 1}, b.Solid[:6])
	assert.Equal(t, []float32{40, 60}, b.Solid[12:14], "third corner is bottom-right")

	adv := b.Text(0, 0, "ab", 2, ColorText)
	assert.Equal(t, float32(28), adv)
	assert.Equal(t, 12, b.TextCount())
	require.Len(t, b.Glyphs, 12*TextVertexSize)
	assert.Equal(t, []float32{0, 0}, b.Glyphs[:2], "first glyph starts at the pen")
	assert.Equal(t, ColorText.A, b.Glyphs[TextVertexSize-1])

	b.RectOutline(0, 0, 10, 10, 1, ColorWhite)
	assert.Equal(t, 6+4*6, b.SolidCount())

	b.Reset()
	assert.Zero(t, b.SolidCount())
	assert.Zero(t, b.TextCount())
}

func TestBatch_CardFacingIsFlat(t *testing.T) {
	b := NewBatch(nil)
	left, right := b.Card(100, 0, 50, 80, 0, ColorWhite)
	assert.InDelta(t, 75, left, 1e-4)
	assert.InDelta(t, 125, right, 1e-4)

	left, right = b.Card(100, 0, 50, 80, 40, ColorWhite)
	assert.Less(t, right-left, float32(50), "tilted cards are narrower")
	assert.Zero(t, b.Text(0, 0, "x", 1, ColorWhite), "no atlas, no text")
}

func TestCompose(t *testing.T) {
	p := newPage(t)
	b := NewBatch(geom.NewAtlas())

	Compose(b, p, DefaultLayout(), nil)
	assert.Positive(t, b.SolidCount())
	assert.Positive(t, b.TextCount())

	solid := b.SolidCount()
	text := b.TextCount()
	b.Reset()
	Compose(b, p, DefaultLayout(), []string{"fps 60", "section1"})
	assert.Equal(t, solid+6, b.SolidCount(), "stats panel background")
	assert.Greater(t, b.TextCount(), text)
}

func TestCompose_TickerStripPinned(t *testing.T) {
	p := newPage(t)
	b := NewBatch(geom.NewAtlas())
	p.Scroll.Jump(2000)
	Compose(b, p, Layout{}, nil)

	// With no hero in view and no titles, the first quad is the strip.
	require.GreaterOrEqual(t, b.SolidCount(), 6)
	assert.Equal(t, float32(800-StripHeight), b.Solid[1])
}
