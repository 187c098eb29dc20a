package geom

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// DiscSprite rasterizes an anti-aliased filled circle used as the point
// sprite for particles.
func DiscSprite(size int) *image.Alpha {
	if size < 2 {
		size = 2
	}
	r := float32(size) / 2
	z := vector.NewRasterizer(size, size)
	const k = 0.5522847 // cubic bezier circle constant
	c := r * k
	z.MoveTo(r, 0)
	z.CubeTo(r+c, 0, 2*r, r-c, 2*r, r)
	z.CubeTo(2*r, r+c, r+c, 2*r, r, 2*r)
	z.CubeTo(r-c, 2*r, 0, r+c, 0, r)
	z.CubeTo(0, r-c, r-c, 0, r, 0)
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Glyph is the atlas cell of one printable character.
type Glyph struct {
	// Texture coordinates of the cell.
	U0, V0, U1, V1 float32
	Advance        float32
}

// Atlas is a bitmap font packed into one alpha texture.
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight float32
	Ascent     float32
	CellWidth  int
}

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// NewAtlas renders ASCII 32..126 of the 7x13 bitmap face into a grid.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols
	w, h := atlasCols*cellW, rows*cellH

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.Alpha{A: 0xff}), Face: face}

	a := &Atlas{
		Image:      img,
		Glyphs:     make(map[rune]Glyph, count),
		LineHeight: float32(cellH),
		Ascent:     float32(face.Ascent),
		CellWidth:  cellW,
	}
	for i := 0; i < count; i++ {
		ch := firstGlyph + rune(i)
		x, y := (i%atlasCols)*cellW, (i/atlasCols)*cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(ch))
		a.Glyphs[ch] = Glyph{
			U0:      float32(x) / float32(w),
			V0:      float32(y) / float32(h),
			U1:      float32(x+cellW) / float32(w),
			V1:      float32(y+cellH) / float32(h),
			Advance: float32(cellW),
		}
	}
	return a
}

// Glyph returns the cell for ch, falling back to '?'.
func (a *Atlas) Glyph(ch rune) Glyph {
	if g, ok := a.Glyphs[ch]; ok {
		return g
	}
	return a.Glyphs['?']
}

// Measure returns the width of s in pixels at the given scale.
func (a *Atlas) Measure(s string, scale float32) float32 {
	var w float32
	for _, ch := range s {
		w += a.Glyph(ch).Advance
	}
	return float32(math.Ceil(float64(w * scale)))
}
