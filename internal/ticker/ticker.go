// Package ticker implements the endless quote marquee.
//
// The strip is drawn twice, a list and its clone, each ListWidth wide. One
// repeating timeline slides the list out to the left while the clone slides
// in behind it, then swaps roles, so the two copies always tile seamlessly.
package ticker

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Faultbox/scrollscene/internal/tween"
)

// BaseWidth is added to the summed item widths.
const BaseWidth = 30

// ItemPadding is the horizontal space around each item's text.
const ItemPadding = 24

// ErrNoQuotes is returned when a ticker is created without items.
var ErrNoQuotes = errors.New("ticker: no quotes")

// Quote is one instrument shown in the strip.
type Quote struct {
	Symbol string
	Price  float64
	Change float64
}

// Item is a formatted quote with its measured width.
type Item struct {
	Quote
	Text  string
	Width float32
}

// Up reports whether the quote gained.
func (it Item) Up() bool { return it.Change >= 0 }

// MeasureFunc returns the advance width of s in pixels.
type MeasureFunc func(s string) float32

// Options configures a ticker.
type Options struct {
	Quotes   []Quote
	Language string
	// Leg is the time one copy takes to cross its own width.
	Leg time.Duration
	// Measure defaults to the basic 7x13 bitmap font.
	Measure MeasureFunc
}

// Ticker holds the animated positions of the list and its clone.
type Ticker struct {
	Items []Item
	// ListWidth is the width of one copy of the strip.
	ListWidth float32

	ListX  float32
	CloneX float32

	tl  *tween.Timeline
	log *zap.Logger
}

// BasicMeasure measures text in basicfont.Face7x13.
func BasicMeasure(s string) float32 {
	return float32(font.MeasureString(basicfont.Face7x13, s).Ceil())
}

// Format renders a quote for the given locale.
func Format(p *message.Printer, q Quote) string {
	sign := "+"
	if q.Change < 0 {
		sign = "-"
	}
	change := q.Change
	if change < 0 {
		change = -change
	}
	return p.Sprintf("%s %v %s%v%%",
		q.Symbol,
		number.Decimal(q.Price, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
		sign,
		number.Decimal(change, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
	)
}

// New formats and measures the quotes and starts the marquee timeline.
func New(opts Options, sched *tween.Scheduler, log *zap.Logger) (*Ticker, error) {
	if len(opts.Quotes) == 0 {
		return nil, ErrNoQuotes
	}
	if log == nil {
		log = zap.NewNop()
	}
	measure := opts.Measure
	if measure == nil {
		measure = BasicMeasure
	}
	tag, err := language.Parse(opts.Language)
	if err != nil {
		return nil, fmt.Errorf("ticker language %q: %w", opts.Language, err)
	}
	leg := opts.Leg.Seconds()
	if leg <= 0 {
		leg = 50
	}

	p := message.NewPrinter(tag)
	t := &Ticker{ListWidth: BaseWidth, log: log}
	for _, q := range opts.Quotes {
		it := Item{Quote: q, Text: Format(p, q)}
		it.Width = measure(it.Text) + ItemPadding
		t.Items = append(t.Items, it)
		t.ListWidth += it.Width
	}

	w := t.ListWidth
	list, clone := tween.Float(&t.ListX), tween.Float(&t.CloneX)
	linear := tween.Ease(tween.Linear)
	t.tl = sched.NewTimeline("ticker").
		FromTo(list, 0, -w, leg, tween.At(0), linear).
		FromTo(clone, w, 0, leg, tween.At(0), linear).
		Set(list, w, tween.At(leg)).
		To(clone, -w, leg, tween.At(leg), linear).
		To(list, 0, leg, tween.At(leg), linear).
		Repeat(-1)
	t.tl.Restart()

	t.CloneX = w
	log.Debug("ticker ready", zap.Int("items", len(t.Items)), zap.Float32("width", w), zap.String("language", tag.String()))
	return t, nil
}

// Pause stops the marquee.
func (t *Ticker) Pause() { t.tl.Pause() }

// Resume continues the marquee.
func (t *Ticker) Resume() { t.tl.Play() }

// Timeline exposes the marquee timeline for inspection.
func (t *Ticker) Timeline() *tween.Timeline { return t.tl }
