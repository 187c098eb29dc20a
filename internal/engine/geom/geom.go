// Package geom builds CPU-side vertex data for the scene renderer. Nothing
// here touches OpenGL, so layouts can be checked without a context.
package geom

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scrollscene/internal/showcase"
)

// Bar colours.
var (
	BarUp   = mgl32.Vec3{0.18, 0.8, 0.44}
	BarDown = mgl32.Vec3{0.91, 0.3, 0.24}
)

// Grid returns line segment endpoints (xyz) of a square grid on the XZ plane.
func Grid(size float32, divisions int) []float32 {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)
	out := make([]float32, 0, (divisions+1)*12)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		out = append(out,
			-half, 0, k, half, 0, k,
			k, 0, -half, k, 0, half,
		)
	}
	return out
}

// Axes returns three segments from the origin with per-vertex colours:
// X red, Y green, Z blue. Each vertex is xyz followed by rgb.
func Axes(size float32) []float32 {
	return []float32{
		0, 0, 0, 1, 0, 0, size, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0, 0, size, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1, 0, 0, size, 0, 0, 1,
	}
}

// LightMarkers returns one point per light.
func LightMarkers(lights []showcase.Light) []float32 {
	out := make([]float32, 0, len(lights)*3)
	for _, l := range lights {
		out = append(out, l.Position[0], l.Position[1], l.Position[2])
	}
	return out
}

// ChartStrip returns the revealed part of the chart as a line strip.
func ChartStrip(c *showcase.LineChart) []float32 {
	n := c.VisibleCount()
	out := make([]float32, 0, n*3)
	for _, p := range c.Points[:n] {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// Points flattens vectors to xyz triples.
func Points(pts []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(pts)*3)
	for _, p := range pts {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// BarVertexSize is the float count per bar vertex: position, normal, colour.
const BarVertexSize = 9

// box faces as (normal, four corners) in unit-cube coordinates.
var boxFaces = [6]struct {
	n       mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
}

// Bars returns triangles for every bar with a visible height. Bars are boxes
// standing on the baseline, as deep as they are wide.
func Bars(vb *showcase.VolumeBars) []float32 {
	out := make([]float32, 0, len(vb.Bars)*36*BarVertexSize)
	for i, b := range vb.Bars {
		h := vb.BarHeight(i)
		if h <= 0 {
			continue
		}
		col := BarDown
		if b.Up() {
			col = BarUp
		}
		origin := mgl32.Vec3{b.X - vb.Width/2, vb.Base[1], vb.Base[2] - vb.Width/2}
		size := mgl32.Vec3{vb.Width, h, vb.Width}
		for _, f := range boxFaces {
			var c [4]mgl32.Vec3
			for k, u := range f.corners {
				c[k] = origin.Add(mgl32.Vec3{u[0] * size[0], u[1] * size[1], u[2] * size[2]})
			}
			for _, k := range [6]int{0, 1, 2, 0, 2, 3} {
				out = append(out,
					c[k][0], c[k][1], c[k][2],
					f.n[0], f.n[1], f.n[2],
					col[0], col[1], col[2],
				)
			}
		}
	}
	return out
}
