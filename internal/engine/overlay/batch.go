package overlay

import (
	"math"

	"github.com/Faultbox/scrollscene/internal/engine/geom"
)

// Vertex sizes of the two batches.
const (
	SolidVertexSize = 6 // x, y, r, g, b, a
	TextVertexSize  = 8 // x, y, u, v, r, g, b, a
)

// Batch collects 2D quads in screen pixels, origin top-left. It has no GL
// state, so composition can be tested headless.
type Batch struct {
	Solid  []float32
	Glyphs []float32
	atlas  *geom.Atlas
}

// NewBatch creates a batch that lays text out with atlas.
func NewBatch(atlas *geom.Atlas) *Batch {
	return &Batch{
		Solid:  make([]float32, 0, 4096),
		Glyphs: make([]float32, 0, 4096),
		atlas:  atlas,
	}
}

// Reset empties the batch for a new frame.
func (b *Batch) Reset() {
	b.Solid = b.Solid[:0]
	b.Glyphs = b.Glyphs[:0]
}

// Atlas returns the glyph atlas.
func (b *Batch) Atlas() *geom.Atlas { return b.atlas }

// Rect adds a filled rectangle.
func (b *Batch) Rect(x, y, w, h float32, c Color) {
	b.Quad([4][2]float32{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, c)
}

// RectOutline adds a rectangle border.
func (b *Batch) RectOutline(x, y, w, h, thickness float32, c Color) {
	b.Rect(x, y, w, thickness, c)
	b.Rect(x, y+h-thickness, w, thickness, c)
	b.Rect(x, y+thickness, thickness, h-thickness*2, c)
	b.Rect(x+w-thickness, y+thickness, thickness, h-thickness*2, c)
}

// Quad adds an arbitrary convex quad given clockwise corners.
func (b *Batch) Quad(p [4][2]float32, c Color) {
	for _, k := range [6]int{0, 1, 2, 0, 2, 3} {
		b.Solid = append(b.Solid, p[k][0], p[k][1], c.R, c.G, c.B, c.A)
	}
}

// Card adds a w×h rectangle centred on cx rotated about the vertical axis by
// deg degrees and seen in perspective. Returns the projected horizontal span.
func (b *Batch) Card(cx, y, w, h, deg float32, c Color) (float32, float32) {
	rad := float64(deg) * math.Pi / 180
	half := w / 2 * float32(math.Cos(rad))
	// The far edge shrinks; depth is half the width times sin.
	depth := w / 2 * float32(math.Sin(rad))
	const focal = 1200
	near := focal / (focal - depth)
	far := focal / (focal + depth)
	lh, rh := h*near, h*far
	ly, ry := y+(h-lh)/2, y+(h-rh)/2
	b.Quad([4][2]float32{
		{cx - half, ly}, {cx + half, ry},
		{cx + half, ry + rh}, {cx - half, ly + lh},
	}, c)
	return cx - half, cx + half
}

// Text adds s with its top-left corner at (x, y) and returns the advance.
func (b *Batch) Text(x, y float32, s string, scale float32, c Color) float32 {
	if b.atlas == nil {
		return 0
	}
	cw := float32(b.atlas.CellWidth) * scale
	ch := b.atlas.LineHeight * scale
	cur := x
	for _, r := range s {
		if r == '\n' {
			cur = x
			y += ch
			continue
		}
		g := b.atlas.Glyph(r)
		b.Glyphs = append(b.Glyphs,
			cur, y, g.U0, g.V0, c.R, c.G, c.B, c.A,
			cur+cw, y, g.U1, g.V0, c.R, c.G, c.B, c.A,
			cur+cw, y+ch, g.U1, g.V1, c.R, c.G, c.B, c.A,
			cur, y, g.U0, g.V0, c.R, c.G, c.B, c.A,
			cur+cw, y+ch, g.U1, g.V1, c.R, c.G, c.B, c.A,
			cur, y+ch, g.U0, g.V1, c.R, c.G, c.B, c.A,
		)
		cur += g.Advance * scale
	}
	return cur - x
}

// SolidCount returns the number of queued solid vertices.
func (b *Batch) SolidCount() int { return len(b.Solid) / SolidVertexSize }

// TextCount returns the number of queued text vertices.
func (b *Batch) TextCount() int { return len(b.Glyphs) / TextVertexSize }
