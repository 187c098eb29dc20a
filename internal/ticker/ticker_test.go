package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/scrollscene/internal/tween"
)

func fixedMeasure(string) float32 { return 10 }

func newTestTicker(t *testing.T) (*Ticker, *tween.Scheduler) {
	t.Helper()
	s := tween.NewScheduler()
	tk, err := New(Options{
		Quotes: []Quote{
			{Symbol: "BTC", Price: 64210.5, Change: 2.31},
			{Symbol: "ETH", Price: 3120.75, Change: -1.12},
		},
		Language: "en",
		Leg:      4 * time.Second,
		Measure:  fixedMeasure,
	}, s, nil)
	require.NoError(t, err)
	return tk, s
}

func advance(s *tween.Scheduler, seconds float64) {
	for t := 0.0; t < seconds; t += 0.5 {
		s.Advance(0.5)
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Language: "en"}, tween.NewScheduler(), nil)
	assert.ErrorIs(t, err, ErrNoQuotes)

	_, err = New(Options{Quotes: []Quote{{Symbol: "X"}}, Language: "!!"}, tween.NewScheduler(), nil)
	assert.Error(t, err)
}

func TestListWidth(t *testing.T) {
	tk, _ := newTestTicker(t)
	require.Len(t, tk.Items, 2)
	for _, it := range tk.Items {
		assert.Equal(t, float32(10+ItemPadding), it.Width)
	}
	assert.Equal(t, float32(BaseWidth+2*(10+ItemPadding)), tk.ListWidth)
	assert.True(t, tk.Items[0].Up())
	assert.False(t, tk.Items[1].Up())
}

func TestMarqueeLoops(t *testing.T) {
	tk, s := newTestTicker(t)
	w := tk.ListWidth
	half := w / 2

	assert.Zero(t, tk.ListX)
	assert.Equal(t, w, tk.CloneX)

	steps := []struct {
		at     float64
		list   float32
		clone  float32
		reason string
	}{
		{2, -half, half, "first leg, halfway"},
		{4, w, 0, "list jumps behind the clone"},
		{6, half, -half, "second leg, halfway"},
		{8, 0, w, "back to the start"},
		{10, -half, half, "second cycle"},
	}
	elapsed := 0.0
	for _, st := range steps {
		advance(s, st.at-elapsed)
		elapsed = st.at
		assert.InDelta(t, st.list, tk.ListX, 1e-3, "list: %s", st.reason)
		assert.InDelta(t, st.clone, tk.CloneX, 1e-3, "clone: %s", st.reason)
	}
}

func TestCopiesStayAdjacent(t *testing.T) {
	tk, s := newTestTicker(t)
	w := tk.ListWidth
	for i := 0; i < 40; i++ {
		s.Advance(0.25)
		gap := tk.CloneX - tk.ListX
		if gap < 0 {
			gap = -gap
		}
		assert.InDelta(t, w, gap, 1e-2, "step %d", i)
	}
}

func TestPauseResume(t *testing.T) {
	tk, s := newTestTicker(t)
	advance(s, 1)
	tk.Pause()
	x := tk.ListX
	advance(s, 2)
	assert.Equal(t, x, tk.ListX)
	tk.Resume()
	advance(s, 1)
	assert.Less(t, tk.ListX, x)
	assert.True(t, tk.Timeline().IsActive())
}

func TestFormat(t *testing.T) {
	en := message.NewPrinter(language.English)
	assert.Equal(t, "BTC 64,210.50 +2.31%", Format(en, Quote{Symbol: "BTC", Price: 64210.5, Change: 2.31}))
	assert.Equal(t, "ETH 3,120.75 -1.12%", Format(en, Quote{Symbol: "ETH", Price: 3120.75, Change: -1.12}))

	de := message.NewPrinter(language.German)
	assert.Contains(t, Format(de, Quote{Symbol: "BTC", Price: 64210.5, Change: 2.31}), "64.210,50")
}

func TestBasicMeasure(t *testing.T) {
	// Face7x13 advances 7 pixels per glyph.
	assert.Equal(t, float32(21), BasicMeasure("abc"))
	assert.Zero(t, BasicMeasure(""))
}
