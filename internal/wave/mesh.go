// Package wave builds the undulating wireframe planes and their particle
// fields.
package wave

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scrollscene/internal/tween"
)

// Options configures a wave mesh.
type Options struct {
	Name     string
	Color    mgl32.Vec3
	DotColor mgl32.Vec3
	YOffset  float32

	// Group transform.
	Position mgl32.Vec3
	Rotation mgl32.Vec3

	WaveEnabled bool

	Size     float32 // Edge length of the square grid
	Segments int     // Cells per edge
	Height   float32 // Target heights are sampled from [-Height, 0)

	// ParticleStride mirrors every n-th surface vertex into the particle field.
	ParticleStride int

	PhaseScale float64 // Multiplier applied to the phase inside sin()
	PhaseStep  float64 // Phase advance per Tick

	SettleDuration float64 // Seconds each vertex takes to settle
	SettleStagger  float64 // Extra delay per vertex index

	Opacity      float32
	PointOpacity float32
	PointSize    float32
}

// DefaultOptions returns the plane settings used by the showcase scene.
func DefaultOptions() Options {
	return Options{
		Name:           "plane",
		Color:          mgl32.Vec3{0, 0x5e / 255.0, 0x97 / 255.0},
		DotColor:       mgl32.Vec3{1, 1, 1},
		Size:           1200,
		Segments:       24,
		Height:         50,
		ParticleStride: 1,
		PhaseScale:     0.0002,
		PhaseStep:      60,
		SettleDuration: 1,
		SettleStagger:  0.0001,
		Opacity:        0.3,
		PointOpacity:   1,
		PointSize:      5,
	}
}

// Mesh is a deformable grid surface plus a companion particle field sharing
// the same coordinate frame.
type Mesh struct {
	opts  Options
	sched *tween.Scheduler

	cols, rows int
	base       []mgl32.Vec3 // x/z layout, y is ignored
	targets    []float32    // per-vertex amplitude reference, fixed at construction
	heights    []float32    // current displacement excluding YOffset

	// GPU-ready buffers (x, y, z per vertex).
	Surface   []float32
	Normals   []float32
	Edges     []uint32 // wireframe line indices into Surface
	Particles []float32

	particleSrc  []int
	morphTargets []mgl32.Vec3

	phase       float64
	waveEnabled bool
	settle      *tween.Timeline

	SurfaceDirty   bool
	ParticlesDirty bool

	// Animated state.
	Position     mgl32.Vec3
	Rotation     mgl32.Vec3
	Opacity      float32
	PointOpacity float32
	PointScale   float32
	Morph        float32
}

// New builds a mesh. rng provides the per-vertex target heights.
func New(opts Options, sched *tween.Scheduler, rng *rand.Rand) *Mesh {
	if opts.Segments <= 0 {
		opts.Segments = 1
	}
	if opts.ParticleStride <= 0 {
		opts.ParticleStride = 1
	}

	m := &Mesh{
		opts:         opts,
		sched:        sched,
		cols:         opts.Segments + 1,
		rows:         opts.Segments + 1,
		Position:     opts.Position,
		Rotation:     opts.Rotation,
		Opacity:      opts.Opacity,
		PointOpacity: opts.PointOpacity,
		PointScale:   1,
		waveEnabled:  opts.WaveEnabled,
	}

	m.buildSurface(rng)
	m.buildEdges()
	m.buildParticles()
	m.computeNormals()
	m.SurfaceDirty = true
	m.ParticlesDirty = true
	return m
}

func (m *Mesh) buildSurface(rng *rand.Rand) {
	n := m.cols * m.rows
	half := m.opts.Size / 2
	step := m.opts.Size / float32(m.opts.Segments)

	m.base = make([]mgl32.Vec3, n)
	m.targets = make([]float32, n)
	m.heights = make([]float32, n)
	m.Surface = make([]float32, n*3)
	m.Normals = make([]float32, n*3)

	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			i := row*m.cols + col
			m.base[i] = mgl32.Vec3{-half + float32(col)*step, 0, -half + float32(row)*step}
			m.targets[i] = rng.Float32()*m.opts.Height - m.opts.Height
			m.writeVertex(i)
		}
	}
}

// buildEdges emits the triangle edges of every cell, matching a wireframe
// render of the triangulated grid.
func (m *Mesh) buildEdges() {
	idx := func(row, col int) uint32 { return uint32(row*m.cols + col) }
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if col+1 < m.cols {
				m.Edges = append(m.Edges, idx(row, col), idx(row, col+1))
			}
			if row+1 < m.rows {
				m.Edges = append(m.Edges, idx(row, col), idx(row+1, col))
			}
			if col+1 < m.cols && row+1 < m.rows {
				m.Edges = append(m.Edges, idx(row+1, col), idx(row, col+1))
			}
		}
	}
}

func (m *Mesh) buildParticles() {
	for i := 0; i < len(m.base); i += m.opts.ParticleStride {
		m.particleSrc = append(m.particleSrc, i)
	}
	m.Particles = make([]float32, len(m.particleSrc)*3)
	m.writeParticles()
}

// Name returns the configured mesh name.
func (m *Mesh) Name() string { return m.opts.Name }

// Options returns the construction options.
func (m *Mesh) Options() Options { return m.opts }

// VertexCount returns the number of surface vertices.
func (m *Mesh) VertexCount() int { return len(m.base) }

// ParticleCount returns the number of particles.
func (m *Mesh) ParticleCount() int { return len(m.particleSrc) }

// Target returns the fixed amplitude reference of vertex i.
func (m *Mesh) Target(i int) float32 { return m.targets[i] }

// Phase returns the running phase counter.
func (m *Mesh) Phase() float64 { return m.phase }

// WaveEnabled reports whether Tick displaces vertices.
func (m *Mesh) WaveEnabled() bool { return m.waveEnabled }

// Settling reports whether a settle animation is still running.
func (m *Mesh) Settling() bool {
	return m.settle != nil && !m.settle.Completed()
}

// VertexY returns the written y coordinate of surface vertex i.
func (m *Mesh) VertexY(i int) float32 { return m.Surface[i*3+1] }

// ParticleY returns the written y coordinate of particle j.
func (m *Mesh) ParticleY(j int) float32 { return m.Particles[j*3+1] }

// Displacement is the wave function for vertex i at the given phase.
func (m *Mesh) Displacement(i int, phase float64) float32 {
	t := m.targets[i]
	return float32(math.Sin(float64(i)+phase*m.opts.PhaseScale)) * (t - t*0.6)
}

// Tick advances the wave by one frame. It does nothing while the wave is
// disabled and reports whether the buffers changed.
func (m *Mesh) Tick() bool {
	if !m.waveEnabled {
		return false
	}
	for i := range m.base {
		m.heights[i] = m.Displacement(i, m.phase)
		m.writeVertex(i)
	}
	m.writeParticles()
	m.computeNormals()
	m.SurfaceDirty = true
	m.ParticlesDirty = true
	m.phase += m.opts.PhaseStep
	return true
}

// SetWaveState turns the wave on or off. Turning it off settles each vertex
// back to the base offset with a small per-index delay; repeated calls with
// the same state are ignored.
func (m *Mesh) SetWaveState(on bool) {
	if on {
		if m.waveEnabled {
			return
		}
		m.waveEnabled = true
		if m.settle != nil {
			m.settle.Kill()
			m.settle = nil
		}
		return
	}

	if !m.waveEnabled {
		return
	}
	m.waveEnabled = false

	tl := m.sched.Once(m.opts.Name + ":settle")
	for i := range m.heights {
		i := i
		p := tween.Func(&m.heights[i],
			func() float32 { return m.heights[i] },
			func(v float32) {
				m.heights[i] = v
				m.writeVertex(i)
			},
		)
		tl.To(p, 0, m.opts.SettleDuration,
			tween.At(m.opts.SettleStagger*float64(i)),
			tween.Ease(tween.OutQuad),
		)
	}
	tl.OnUpdate = func() {
		m.writeParticles()
		m.computeNormals()
		m.SurfaceDirty = true
		m.ParticlesDirty = true
	}
	m.settle = tl
}

// AnimateTransform tweens the group transform. Position and rotation share a
// label so they start on the same frame.
func (m *Mesh) AnimateTransform(pos, rot mgl32.Vec3, duration float64) *tween.Timeline {
	tl := m.sched.Once(m.opts.Name + ":transform")
	tl.AddLabel("lb0")
	m.AddTransform(tl, "lb0", pos, rot, duration)
	return tl
}

// AddTransform appends the transform tweens to an existing timeline at label.
func (m *Mesh) AddTransform(tl *tween.Timeline, label string, pos, rot mgl32.Vec3, duration float64) {
	for axis := 0; axis < 3; axis++ {
		tl.To(tween.Float(&m.Position[axis]), pos[axis], duration, tween.AtLabel(label))
		tl.To(tween.Float(&m.Rotation[axis]), rot[axis], duration, tween.AtLabel(label))
	}
}

// OpacityProp binds the surface opacity.
func (m *Mesh) OpacityProp() tween.Prop { return tween.Float(&m.Opacity) }

// PointOpacityProp binds the particle opacity.
func (m *Mesh) PointOpacityProp() tween.Prop { return tween.Float(&m.PointOpacity) }

// PointScaleProp binds the particle size multiplier.
func (m *Mesh) PointScaleProp() tween.Prop { return tween.Float(&m.PointScale) }

// MorphProp binds the particle morph weight.
func (m *Mesh) MorphProp() tween.Prop {
	return tween.Func(&m.Morph,
		func() float32 { return m.Morph },
		func(v float32) {
			m.Morph = v
			m.writeParticles()
			m.ParticlesDirty = true
		},
	)
}

// SetMorphTargets assigns the points particles migrate to as Morph goes to 1.
// Points are given in world space and converted into the mesh frame using the
// current group transform. Particle j uses target j modulo len(points).
func (m *Mesh) SetMorphTargets(points []mgl32.Vec3) {
	inv := m.ModelMatrix().Inv()
	m.morphTargets = make([]mgl32.Vec3, len(points))
	for i, p := range points {
		m.morphTargets[i] = mgl32.TransformCoordinate(p, inv)
	}
	m.writeParticles()
	m.ParticlesDirty = true
}

// HasMorphTargets reports whether morph targets were assigned.
func (m *Mesh) HasMorphTargets() bool { return len(m.morphTargets) > 0 }

// ModelMatrix returns the group transform (translation, then XYZ rotation).
func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(mgl32.HomogRotate3DX(m.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(m.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(m.Rotation[2]))
}

// MarkClean clears the dirty flags after an upload.
func (m *Mesh) MarkClean() {
	m.SurfaceDirty = false
	m.ParticlesDirty = false
}

func (m *Mesh) writeVertex(i int) {
	b := m.base[i]
	m.Surface[i*3] = b[0]
	m.Surface[i*3+1] = m.heights[i] + m.opts.YOffset
	m.Surface[i*3+2] = b[2]
}

func (m *Mesh) writeParticles() {
	n := len(m.morphTargets)
	for j, src := range m.particleSrc {
		x := m.Surface[src*3]
		y := m.Surface[src*3+1]
		z := m.Surface[src*3+2]
		if n > 0 && m.Morph != 0 {
			t := m.morphTargets[j%n]
			w := m.Morph
			x += (t[0] - x) * w
			y += (t[1] - y) * w
			z += (t[2] - z) * w
		}
		m.Particles[j*3] = x
		m.Particles[j*3+1] = y
		m.Particles[j*3+2] = z
	}
}

// computeNormals averages face normals of the triangulated grid per vertex.
func (m *Mesh) computeNormals() {
	for i := range m.Normals {
		m.Normals[i] = 0
	}
	pos := func(i int) mgl32.Vec3 {
		return mgl32.Vec3{m.Surface[i*3], m.Surface[i*3+1], m.Surface[i*3+2]}
	}
	addFace := func(a, b, c int) {
		n := pos(b).Sub(pos(a)).Cross(pos(c).Sub(pos(a)))
		for _, v := range [3]int{a, b, c} {
			m.Normals[v*3] += n[0]
			m.Normals[v*3+1] += n[1]
			m.Normals[v*3+2] += n[2]
		}
	}
	for row := 0; row+1 < m.rows; row++ {
		for col := 0; col+1 < m.cols; col++ {
			a := row*m.cols + col
			b := a + 1
			c := a + m.cols
			d := c + 1
			addFace(a, c, b)
			addFace(c, d, b)
		}
	}
	for i := 0; i < len(m.Normals); i += 3 {
		n := mgl32.Vec3{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
		if n.Len() < 1e-6 {
			n = mgl32.Vec3{0, 1, 0}
		} else {
			n = n.Normalize()
		}
		m.Normals[i], m.Normals[i+1], m.Normals[i+2] = n[0], n[1], n[2]
	}
}
