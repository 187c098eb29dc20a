package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCamera_ViewMatrixLooksAtTarget(t *testing.T) {
	c := NewPerspective(45, 16.0/9, 1, 10000)
	c.LookAt(mgl32.Vec3{0, 0, 750}, mgl32.Vec3{})

	// The target lands on the view-space -Z axis.
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, c.ViewMatrix())
	assert.InDelta(t, 0, p[0], 1e-3)
	assert.InDelta(t, 0, p[1], 1e-3)
	assert.InDelta(t, -750, p[2], 1e-3)
	assert.Equal(t, mgl32.Vec3{0, 0, 750}, c.Eye())
}

func TestLens_SetViewport(t *testing.T) {
	l := Lens{FOV: 45, Aspect: 1, Near: 1, Far: 100}
	l.SetViewport(1920, 1080)
	assert.InDelta(t, 16.0/9, l.Aspect, 1e-6)

	l.SetViewport(0, 1080)
	assert.InDelta(t, 16.0/9, l.Aspect, 1e-6, "zero sizes are ignored")
}

func TestOrbitCamera_Eye(t *testing.T) {
	c := NewOrbitCamera(Lens{FOV: 45, Aspect: 1, Near: 1, Far: 10000})
	c.Pitch = 0
	c.Distance = 100

	eye := c.Eye()
	assert.InDelta(t, 0, eye[0], 1e-4)
	assert.InDelta(t, 0, eye[1], 1e-4)
	assert.InDelta(t, 100, eye[2], 1e-4)
}

func TestOrbitCamera_Clamps(t *testing.T) {
	c := NewOrbitCamera(Lens{})

	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.Pitch)

	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)

	c.HandleZoom(-1000)
	assert.Equal(t, c.MaxDistance, c.Distance)
}
