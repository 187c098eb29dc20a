package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Page palette.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}

	ColorStrip     = Color{0.02, 0.07, 0.12, 0.85}
	ColorUp        = Color{0.18, 0.8, 0.44, 1}
	ColorDown      = Color{0.91, 0.3, 0.24, 1}
	ColorSlide     = Color{0.06, 0.16, 0.25, 0.9}
	ColorSlideEdge = Color{0.2, 0.6, 0.9, 1}
	ColorText      = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim   = Color{0.5, 0.5, 0.6, 1}
	ColorPanelBg   = Color{0.08, 0.08, 0.12, 0.8}
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Hex parses "#rrggbb".
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("overlay: bad colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("overlay: bad colour %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
