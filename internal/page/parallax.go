package page

import "github.com/charmbracelet/harmonica"

// DefaultStrength is the layer offset, in pixels, at depth 1 and full input.
const DefaultStrength = 60

// Layer is one parallax plane of the hero.
type Layer struct {
	Depth float32
	X, Y  float32

	vx, vy float64
}

// Parallax moves hero layers against the pointer while it hovers the hero.
// Deeper layers move further. Offsets follow the input through springs.
type Parallax struct {
	Layers   []Layer
	Strength float32

	inputX, inputY float64
	hovering       bool

	frequency float64
	damping   float64
	spring    harmonica.Spring
	springDT  float64
}

// NewParallax creates one layer per depth.
func NewParallax(depths []float32, frequency, damping float64) *Parallax {
	p := &Parallax{Strength: DefaultStrength, frequency: frequency, damping: damping}
	if p.frequency <= 0 {
		p.frequency = 6
	}
	if p.damping <= 0 {
		p.damping = 1
	}
	for _, d := range depths {
		p.Layers = append(p.Layers, Layer{Depth: d})
	}
	return p
}

// Pointer feeds the pointer position relative to the hero centre, each axis in
// [-1, 1]. inside is false once the pointer leaves the hero.
func (p *Parallax) Pointer(nx, ny float64, inside bool) {
	p.hovering = inside
	if !inside {
		p.inputX, p.inputY = 0, 0
		return
	}
	p.inputX = clamp(nx, -1, 1)
	p.inputY = clamp(ny, -1, 1)
}

// Hovering reports whether the pointer is over the hero.
func (p *Parallax) Hovering() bool { return p.hovering }

// Target returns the resting offset of layer i for the current input.
func (p *Parallax) Target(i int) (float32, float32) {
	k := -float64(p.Layers[i].Depth) * float64(p.Strength)
	return float32(p.inputX * k), float32(p.inputY * k)
}

// Update steps every layer spring by dt seconds.
func (p *Parallax) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt != p.springDT {
		p.spring = harmonica.NewSpring(dt, p.frequency, p.damping)
		p.springDT = dt
	}
	for i := range p.Layers {
		l := &p.Layers[i]
		tx, ty := p.Target(i)
		x, vx := p.spring.Update(float64(l.X), l.vx, float64(tx))
		y, vy := p.spring.Update(float64(l.Y), l.vy, float64(ty))
		l.X, l.Y, l.vx, l.vy = float32(x), float32(y), vx, vy
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
