package showcase

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimelineInfo is a read-only view of one timeline.
type TimelineInfo struct {
	Name     string
	Time     float64
	Progress float64
	Active   bool
	Reversed bool
}

// SceneState is a snapshot of everything section transitions affect.
type SceneState struct {
	Section        Section
	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3
	FogDensity     float32
	WaveEnabled    bool
	Morph          float32
	Sections       map[Section]Lifecycle
	Timelines      []TimelineInfo
}

// State captures the current scene state.
func (c *Controller) State() SceneState {
	s := SceneState{
		Section:        c.current,
		CameraPosition: c.cam.Position,
		CameraTarget:   c.cam.Target,
		FogDensity:     c.scene.Fog.Density,
		Sections:       make(map[Section]Lifecycle),
	}
	if len(c.scene.Planes) > 0 {
		s.WaveEnabled = c.scene.Planes[0].WaveEnabled()
		s.Morph = c.scene.Planes[0].Morph
	}
	for _, id := range c.registry.Sections() {
		state, _ := c.registry.State(id)
		s.Sections[id] = state
	}
	for _, tl := range c.sched.Timelines() {
		s.Timelines = append(s.Timelines, TimelineInfo{
			Name:     tl.Name(),
			Time:     tl.Time(),
			Progress: tl.Progress(),
			Active:   tl.IsActive(),
			Reversed: tl.Reversed(),
		})
	}
	return s
}

// MarshalLogObject lets the state be logged as a structured field.
func (s SceneState) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("section", string(s.Section))
	enc.AddFloat32("fog", s.FogDensity)
	enc.AddBool("wave", s.WaveEnabled)
	enc.AddFloat32("morph", s.Morph)
	_ = enc.AddArray("camera", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, v := range s.CameraPosition {
			arr.AppendFloat32(v)
		}
		return nil
	}))
	_ = enc.AddObject("sections", zapcore.ObjectMarshalerFunc(func(obj zapcore.ObjectEncoder) error {
		for id, l := range s.Sections {
			obj.AddString(string(id), l.String())
		}
		return nil
	}))
	enc.AddInt("timelines", len(s.Timelines))
	return nil
}

// DumpState logs the current scene state.
func (c *Controller) DumpState() {
	c.log.Info("scene state", zap.Object("state", c.State()))
}
