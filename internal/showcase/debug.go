package showcase

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Developer toggles used by the debug panel.

// SetFog turns the distance fog on or off.
func (c *Controller) SetFog(on bool) { c.scene.Fog.Enabled = on }

// SetHelpers shows or hides axes, grid and light markers.
func (c *Controller) SetHelpers(on bool) { c.scene.Helpers.Visible = on }

// SetWaveAnimation forces the wave on regardless of section, or hands
// control back to the current section.
func (c *Controller) SetWaveAnimation(on bool) {
	c.waveOverride = on
	sectionWave := false
	if spec, ok := c.specs[c.current]; ok {
		sectionWave = spec.Wave
	}
	for _, p := range c.scene.Planes {
		p.SetWaveState(on || sectionWave)
	}
}

// WaveAnimation reports whether the wave is forced on.
func (c *Controller) WaveAnimation() bool { return c.waveOverride }

// NormalizeVertices stops the wave and settles every plane flat.
func (c *Controller) NormalizeVertices() {
	c.waveOverride = false
	for _, p := range c.scene.Planes {
		p.SetWaveState(false)
	}
}

// ResetCamera moves the section camera back to its start position.
func (c *Controller) ResetCamera() {
	c.cam.LookAt(c.opts.CameraStart, mgl32.Vec3{})
}

// UseOverview switches between the section camera and the orbit camera.
func (c *Controller) UseOverview(on bool) { c.useOverview = on }

// OverviewActive reports whether the orbit camera is in use.
func (c *Controller) OverviewActive() bool { return c.useOverview }

// ResetPlanes animates both planes back to their neutral transform.
func (c *Controller) ResetPlanes() {
	for _, p := range c.scene.Planes {
		p.AnimateTransform(mgl32.Vec3{}, mgl32.Vec3{}, 1)
	}
	c.log.Debug("planes reset")
}

// Sections returns the configured section ids in order.
func (c *Controller) Sections() []Section { return c.registry.Sections() }

// Go is AnimateToSection for UI buttons: failures are logged, not returned.
func (c *Controller) Go(id Section) {
	if err := c.AnimateToSection(id); err != nil {
		c.log.Warn("section transition rejected", zap.String("section", string(id)), zap.Error(err))
	}
}
