// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewer is anything the renderer can draw through.
type Viewer interface {
	Eye() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// Lens holds perspective projection settings.
type Lens struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// ProjectionMatrix returns the perspective projection for the lens.
func (l *Lens) ProjectionMatrix() mgl32.Mat4 {
	aspect := l.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(l.FOV), aspect, l.Near, l.Far)
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (l *Lens) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.Aspect = float32(width) / float32(height)
}

// Camera is a perspective camera looking from Position at Target. Both vectors
// are plain fields so animations can drive them component by component.
type Camera struct {
	Lens
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Lens:   Lens{FOV: fov, Aspect: aspect, Near: near, Far: far},
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 { return c.Position }

// LookAt moves the camera and points it at target.
func (c *Camera) LookAt(position, target mgl32.Vec3) {
	c.Position = position
	c.Target = target
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// OrbitCamera orbits around a center point. It backs the overview camera of
// the debug panel.
type OrbitCamera struct {
	Lens
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians
	Yaw      float32 // radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing the whole scene.
func NewOrbitCamera(lens Lens) *OrbitCamera {
	return &OrbitCamera{
		Lens:            lens,
		Distance:        1800,
		Pitch:           0.5,
		MinDistance:     100,
		MaxDistance:     5000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	pitch := float64(c.Pitch)
	yaw := float64(c.Yaw)
	offset := mgl32.Vec3{
		c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		c.Distance * float32(gomath.Sin(pitch)),
		c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Center, mgl32.Vec3{0, 1, 0})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
