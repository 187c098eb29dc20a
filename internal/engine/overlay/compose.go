package overlay

import (
	"github.com/Faultbox/scrollscene/internal/carousel"
	"github.com/Faultbox/scrollscene/internal/page"
	"github.com/Faultbox/scrollscene/internal/ticker"
)

// StripHeight is the height of the ticker strip pinned to the viewport bottom.
const StripHeight = 28

// Layout places the page furniture.
type Layout struct {
	Headline       string
	CarouselRegion string
	// Titles maps region ids to the caption drawn at the region top.
	Titles map[string]string
}

// DefaultLayout returns the product layout.
func DefaultLayout() Layout {
	return Layout{
		Headline:       "SCROLL TO EXPLORE",
		CarouselRegion: "section4",
		Titles: map[string]string{
			"section2": "Live market data",
			"section3": "Depth and volume",
			"section4": "Why us",
			"section5": "Meet the model",
		},
	}
}

// Compose queues everything the page shows for the current frame. stats
// lines are drawn in a panel at the top-left when non-empty.
func Compose(b *Batch, p *page.Page, l Layout, stats []string) {
	viewW, viewH := p.Viewport()
	vw, vh := float32(viewW), float32(viewH)
	scroll := float32(p.Offset())

	regions := p.Regions()
	if len(regions) > 0 {
		hero := regions[0]
		top := float32(hero.Top) - scroll
		if top+float32(hero.Height) > 0 {
			composeHero(b, p.Parallax, vw, top, float32(hero.Height), l.Headline)
		}
	}
	for _, r := range regions[min(1, len(regions)):] {
		title, ok := l.Titles[r.ID]
		top := float32(r.Top) - scroll
		if !ok || top > vh || top+float32(r.Height) < 0 {
			continue
		}
		b.Text(40, top+40, title, 3, ColorText)
	}

	if r, ok := p.Region(l.CarouselRegion); ok {
		top := float32(r.Top) - scroll
		if top < vh && top+float32(r.Height) > 0 {
			composeCarousel(b, p.Carousel, top+(float32(r.Height)-slideHeight(p.Carousel))/2)
		}
	}

	composeTicker(b, p.Ticker, vw, vh-StripHeight)

	if len(stats) > 0 {
		composeStats(b, stats)
	}
}

func composeHero(b *Batch, px *page.Parallax, vw, top, height float32, headline string) {
	cx, cy := vw/2, top+height/2
	n := float32(len(px.Layers))
	for i, l := range px.Layers {
		// Nearer layers are smaller and brighter.
		k := 1 - float32(i)/(n+1)
		w, h := vw*0.5*k, height*0.45*k
		c := ColorSlideEdge.WithAlpha(0.08 + 0.12*float32(i))
		b.RectOutline(cx-w/2+l.X, cy-h/2+l.Y, w, h, 2, c)
	}
	if headline != "" {
		const scale = 4
		w := b.atlas.Measure(headline, scale)
		b.Text(cx-w/2, cy-b.atlas.LineHeight*scale/2, headline, scale, ColorWhite)
	}
}

func slideHeight(c *carousel.Carousel) float32 {
	_, h := c.SlideSize()
	return h
}

func composeCarousel(b *Batch, c *carousel.Carousel, top float32) {
	_, h := c.SlideSize()
	itemW := c.ItemWidth()
	for i, s := range c.Slides {
		x := c.SlideX(i)
		col := ColorSlide
		if s.Active {
			col = col.Lighten(0.15)
		}
		left, right := b.Card(x+itemW/2, top, itemW, h, s.Rotation, col)
		if right-left < 1 {
			continue
		}
		tw := b.atlas.Measure(s.Caption, 2)
		if tw < right-left {
			b.Text((left+right-tw)/2, top+h/2-b.atlas.LineHeight, s.Caption, 2, ColorText)
		}
	}
	// Pager dots under the strip.
	n := float32(c.Len())
	const dot, gap = 8, 10
	x := c.Offset + c.TotalWidth()/2 - (n*dot+(n-1)*gap)/2
	for i := 0; i < c.Len(); i++ {
		col := ColorTextDim
		if i == c.Index()-1 {
			col = ColorWhite
		}
		b.Rect(x+float32(i)*(dot+gap), top+h+16, dot, dot, col)
	}
}

func composeTicker(b *Batch, t *ticker.Ticker, vw, y float32) {
	b.Rect(0, y, vw, StripHeight, ColorStrip)
	ty := y + (StripHeight-b.atlas.LineHeight)/2
	for _, base := range [2]float32{t.ListX, t.CloneX} {
		if base > vw || base+t.ListWidth < 0 {
			continue
		}
		x := base
		for _, it := range t.Items {
			col := ColorDown
			if it.Up() {
				col = ColorUp
			}
			b.Text(x+ticker.ItemPadding/2, ty, it.Text, 1, col)
			x += it.Width
		}
	}
}

func composeStats(b *Batch, lines []string) {
	lh := b.atlas.LineHeight + 2
	var w float32
	for _, s := range lines {
		w = max(w, b.atlas.Measure(s, 1))
	}
	b.Rect(8, 8, w+16, float32(len(lines))*lh+12, ColorPanelBg)
	for i, s := range lines {
		b.Text(16, 14+float32(i)*lh, s, 1, ColorText)
	}
}
