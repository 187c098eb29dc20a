package showcase

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Noise parameters for the market series.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
)

// LineChart is a price line revealed left to right.
type LineChart struct {
	Points  []mgl32.Vec3
	Reveal  float32 // fraction of the line drawn, 0..1
	Opacity float32
	Color   mgl32.Vec3
}

// NewLineChart samples n points of 1D noise spread over width, centered on
// origin, with values scaled to height.
func NewLineChart(seed int64, n int, width, height float32, origin mgl32.Vec3) *LineChart {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, seed)
	c := &LineChart{
		Points: make([]mgl32.Vec3, n),
		Color:  mgl32.Vec3{0.2, 0.8, 1},
	}
	for i := range c.Points {
		t := float32(i) / float32(max(n-1, 1))
		v := float32(p.Noise1D(float64(i) * 0.08))
		c.Points[i] = origin.Add(mgl32.Vec3{-width/2 + t*width, v * height, 0})
	}
	return c
}

// VisibleCount returns how many points the reveal currently exposes.
func (c *LineChart) VisibleCount() int {
	n := len(c.Points)
	if c.Reveal <= 0 || n == 0 {
		return 0
	}
	if c.Reveal >= 1 {
		return n
	}
	return min(n, int(math.Ceil(float64(c.Reveal)*float64(n-1)))+1)
}

// Bar is one candlestick-like volume bar.
type Bar struct {
	X      float32
	Open   float32
	Close  float32
	Volume float32
}

// Up reports whether the bar closed higher than it opened.
func (b Bar) Up() bool { return b.Close >= b.Open }

// VolumeBars is a row of bars that grow from the baseline.
type VolumeBars struct {
	Bars    []Bar
	Base    mgl32.Vec3
	Width   float32
	Height  float32
	Grow    float32 // 0..1 height multiplier
	Opacity float32
}

// NewVolumeBars derives n bars from the same noise family as the chart.
func NewVolumeBars(seed int64, n int, width, height float32, base mgl32.Vec3) *VolumeBars {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, seed+1)
	vb := &VolumeBars{
		Bars:   make([]Bar, n),
		Base:   base,
		Width:  width / float32(max(n, 1)) * 0.6,
		Height: height,
	}
	prev := float32(p.Noise1D(0))
	for i := range vb.Bars {
		t := (float32(i) + 0.5) / float32(max(n, 1))
		next := float32(p.Noise1D(float64(i+1) * 0.15))
		vol := float32(math.Abs(p.Noise1D(float64(i)*0.37+100))) + 0.1
		vb.Bars[i] = Bar{
			X:      base[0] - width/2 + t*width,
			Open:   prev,
			Close:  next,
			Volume: min(vol, 1),
		}
		prev = next
	}
	return vb
}

// BarHeight returns the drawn height of bar i including the grow factor.
func (vb *VolumeBars) BarHeight(i int) float32 {
	return vb.Bars[i].Volume * vb.Height * vb.Grow
}
