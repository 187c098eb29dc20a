package showcase

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scrollscene/internal/engine/camera"
	"github.com/Faultbox/scrollscene/internal/wave"
)

// Drawer renders the scene. The GL renderer implements it; tests use fakes.
type Drawer interface {
	Draw(scene *Scene, view camera.Viewer) error
}

// Scene is everything the renderer draws. The controller owns it and is the
// only writer.
type Scene struct {
	Planes  []*wave.Mesh
	Chart   *LineChart
	Bars    *VolumeBars
	Bust    *Bust
	Fog     Fog
	Helpers Helpers
	Lights  []Light
	Ambient float32
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Enabled bool
	Color   mgl32.Vec3
	Density float32
}

// Helpers are the developer overlays: axes, grid and light markers.
type Helpers struct {
	Visible       bool
	AxesSize      float32
	GridSize      float32
	GridDivisions int
}

// Light is a directional light placed at Position, pointing at the origin.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// DefaultLights returns the two diagonal key lights.
func DefaultLights() []Light {
	white := mgl32.Vec3{1, 1, 1}
	return []Light{
		{Position: mgl32.Vec3{500, 350, 500}, Color: white, Intensity: 1},
		{Position: mgl32.Vec3{-500, 350, -500}, Color: white, Intensity: 1},
	}
}

// Bust is the loaded model drawn as a point cloud.
type Bust struct {
	Base     []mgl32.Vec3 // normalized model points
	Position mgl32.Vec3
	Scale    float32
	Spin     float32 // rotation about Y, radians
	Opacity  float32
	Color    mgl32.Vec3
	Dirty    bool
}

// Loaded reports whether model points were assigned.
func (b *Bust) Loaded() bool { return len(b.Base) > 0 }

// SetPoints replaces the model points.
func (b *Bust) SetPoints(points []mgl32.Vec3) {
	b.Base = append(b.Base[:0], points...)
	b.Dirty = true
}

// ModelMatrix places the normalized points in the world.
func (b *Bust) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position[0], b.Position[1], b.Position[2]).
		Mul4(mgl32.HomogRotate3DY(b.Spin)).
		Mul4(mgl32.Scale3D(b.Scale, b.Scale, b.Scale))
}

// WorldPoints returns the model points in world space.
func (b *Bust) WorldPoints() []mgl32.Vec3 {
	m := b.ModelMatrix()
	out := make([]mgl32.Vec3, len(b.Base))
	for i, p := range b.Base {
		out[i] = mgl32.TransformCoordinate(p, m)
	}
	return out
}
