// Package renderer draws the showcase scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/engine/camera"
	"github.com/Faultbox/scrollscene/internal/engine/geom"
	"github.com/Faultbox/scrollscene/internal/engine/shader"
	"github.com/Faultbox/scrollscene/internal/engine/texture"
	"github.com/Faultbox/scrollscene/internal/showcase"
	"github.com/Faultbox/scrollscene/internal/wave"
)

const spriteSize = 64

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// planeBuffers are the GPU copies of one wave mesh.
type planeBuffers struct {
	surface   *buffer
	particles *buffer
}

// Renderer draws a showcase.Scene. It implements showcase.Drawer.
type Renderer struct {
	config Config
	log    *zap.Logger

	lines  *shader.Program
	points *shader.Program
	bars   *shader.Program

	sprite uint32

	planes map[*wave.Mesh]*planeBuffers
	chart  *buffer
	barBuf *buffer
	bust   *buffer
	grid   *buffer
	axes   *buffer
	marker *buffer

	chartCount int
	barsGrow   float32
	gridKey    [2]float32
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:   cfg,
		log:      log,
		planes:   make(map[*wave.Mesh]*planeBuffers),
		barsGrow: -1,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.lines, err = shader.Compile("lines", lineVertexShader, lineFragmentShader); err != nil {
		return nil, err
	}
	if r.points, err = shader.Compile("points", pointVertexShader, pointFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.bars, err = shader.Compile("bars", barVertexShader, barFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	r.sprite = texture.UploadAlpha(geom.DiscSprite(spriteSize), texture.Linear)
	r.chart = newBuffer(3)
	r.barBuf = newBuffer(3, 3, 3)
	r.bust = newBuffer(3)
	r.grid = newBuffer(3)
	r.axes = newBuffer(3, 3)
	r.axes.upload(geom.Axes(1))
	r.marker = newBuffer(3)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	log.Debug("renderer ready", zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, pb := range r.planes {
		pb.surface.delete()
		pb.particles.delete()
	}
	r.planes = map[*wave.Mesh]*planeBuffers{}
	for _, b := range []*buffer{r.chart, r.barBuf, r.bust, r.grid, r.axes, r.marker} {
		if b != nil {
			b.delete()
		}
	}
	texture.Delete(&r.sprite)
	for _, p := range []*shader.Program{r.lines, r.points, r.bars} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Clear starts a frame with the fog colour as background.
func (r *Renderer) Clear(bg mgl32.Vec3) {
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the scene through view.
func (r *Renderer) Draw(scene *showcase.Scene, view camera.Viewer) error {
	if scene == nil || view == nil {
		return fmt.Errorf("renderer: nothing to draw")
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("renderer: pending GL error 0x%x", code)
	}

	viewM := view.ViewMatrix()
	proj := view.ProjectionMatrix()
	for _, p := range []*shader.Program{r.lines, r.points, r.bars} {
		p.Use()
		p.SetMat4("uView", viewM)
		p.SetMat4("uProjection", proj)
		p.SetBool("uFogEnabled", scene.Fog.Enabled)
		p.SetVec3("uFogColor", scene.Fog.Color)
		p.SetFloat("uFogDensity", scene.Fog.Density)
	}

	if scene.Helpers.Visible {
		r.drawHelpers(scene)
	}
	if scene.Bars != nil && scene.Bars.Opacity > 0 {
		r.drawBars(scene)
	}
	if scene.Chart != nil && scene.Chart.Opacity > 0 {
		r.drawChart(scene.Chart)
	}

	// Transparent points do not write depth so they blend over each other.
	for _, m := range scene.Planes {
		r.drawPlane(m)
	}
	if b := scene.Bust; b != nil && b.Loaded() && b.Opacity > 0 {
		r.drawBust(b)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("renderer: GL error 0x%x", code)
	}
	return nil
}

func (r *Renderer) buffersFor(m *wave.Mesh) *planeBuffers {
	pb, ok := r.planes[m]
	if !ok {
		pb = &planeBuffers{surface: newBuffer(3), particles: newBuffer(3)}
		pb.surface.uploadIndices(m.Edges)
		r.planes[m] = pb
		m.SurfaceDirty, m.ParticlesDirty = true, true
		r.log.Debug("plane buffers created", zap.String("plane", m.Name()), zap.Int("vertices", m.VertexCount()))
	}
	if m.SurfaceDirty {
		pb.surface.upload(m.Surface)
	}
	if m.ParticlesDirty {
		pb.particles.upload(m.Particles)
	}
	m.MarkClean()
	return pb
}

func (r *Renderer) drawPlane(m *wave.Mesh) {
	pb := r.buffersFor(m)
	opts := m.Options()
	model := m.ModelMatrix()

	if m.Opacity > 0 {
		r.lines.Use()
		r.lines.SetMat4("uModel", model)
		r.lines.SetVec3("uColor", opts.Color)
		r.lines.SetFloat("uOpacity", m.Opacity)
		r.lines.SetBool("uVertexColor", false)
		pb.surface.draw(gl.LINES)
	}

	if m.PointOpacity > 0 && m.PointScale > 0 {
		r.usePoints(model, opts.DotColor, m.PointOpacity, opts.PointSize*m.PointScale)
		gl.DepthMask(false)
		pb.particles.draw(gl.POINTS)
		gl.DepthMask(true)
	}
}

func (r *Renderer) usePoints(model mgl32.Mat4, color mgl32.Vec3, opacity, size float32) {
	r.points.Use()
	r.points.SetMat4("uModel", model)
	r.points.SetVec3("uColor", color)
	r.points.SetFloat("uOpacity", opacity)
	r.points.SetFloat("uSize", size)
	r.points.SetFloat("uScale", 1)
	r.points.SetFloat("uViewportHeight", float32(r.config.Height))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.sprite)
	r.points.SetInt("uSprite", 0)
}

func (r *Renderer) drawBust(b *showcase.Bust) {
	if b.Dirty {
		r.bust.upload(geom.Points(b.Base))
		b.Dirty = false
	}
	r.usePoints(b.ModelMatrix(), b.Color, b.Opacity, 3)
	gl.DepthMask(false)
	r.bust.draw(gl.POINTS)
	gl.DepthMask(true)
}

func (r *Renderer) drawChart(c *showcase.LineChart) {
	if n := c.VisibleCount(); n != r.chartCount {
		r.chart.upload(geom.ChartStrip(c))
		r.chartCount = n
	}
	r.lines.Use()
	r.lines.SetMat4("uModel", mgl32.Ident4())
	r.lines.SetVec3("uColor", c.Color)
	r.lines.SetFloat("uOpacity", c.Opacity)
	r.lines.SetBool("uVertexColor", false)
	r.chart.draw(gl.LINE_STRIP)
}

func (r *Renderer) drawBars(scene *showcase.Scene) {
	vb := scene.Bars
	if vb.Grow != r.barsGrow {
		r.barBuf.upload(geom.Bars(vb))
		r.barsGrow = vb.Grow
	}
	r.bars.Use()
	for i := 0; i < 2; i++ {
		var dir, col mgl32.Vec3
		if i < len(scene.Lights) {
			l := scene.Lights[i]
			dir = l.Position.Normalize()
			col = l.Color.Mul(l.Intensity)
		}
		r.bars.SetVec3(fmt.Sprintf("uLightDir[%d]", i), dir)
		r.bars.SetVec3(fmt.Sprintf("uLightColor[%d]", i), col)
	}
	r.bars.SetFloat("uAmbient", scene.Ambient)
	r.bars.SetFloat("uOpacity", vb.Opacity)
	r.barBuf.draw(gl.TRIANGLES)
}

func (r *Renderer) drawHelpers(scene *showcase.Scene) {
	h := scene.Helpers
	if key := [2]float32{h.GridSize, float32(h.GridDivisions)}; key != r.gridKey {
		r.grid.upload(geom.Grid(h.GridSize, h.GridDivisions))
		r.gridKey = key
	}

	r.lines.Use()
	r.lines.SetFloat("uOpacity", 1)
	r.lines.SetMat4("uModel", mgl32.Ident4())
	r.lines.SetBool("uVertexColor", false)
	r.lines.SetVec3("uColor", mgl32.Vec3{0.35, 0.35, 0.35})
	r.grid.draw(gl.LINES)

	r.lines.SetMat4("uModel", mgl32.Scale3D(h.AxesSize, h.AxesSize, h.AxesSize))
	r.lines.SetBool("uVertexColor", true)
	r.axes.draw(gl.LINES)

	r.marker.upload(geom.LightMarkers(scene.Lights))
	r.usePoints(mgl32.Ident4(), mgl32.Vec3{1, 0.9, 0.4}, 1, 40)
	r.marker.draw(gl.POINTS)
}
