package showcase

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scrollscene/internal/config"
)

// SectionSpec is the scene target of one section.
type SectionSpec struct {
	ID       Section
	Duration float64

	Camera mgl32.Vec3
	Target mgl32.Vec3
	Fog    float32

	PlaneOpacity float32
	PointOpacity float32
	ChartOpacity float32
	BarsOpacity  float32
	BustOpacity  float32
	Morph        float32

	Wave          bool
	RequiresModel bool

	Planes []PlaneTransform
}

// PlaneTransform is a target group transform for one plane.
type PlaneTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// Options configures the scene controller.
type Options struct {
	Seed     uint64
	Sections []SectionSpec

	CameraStart mgl32.Vec3
	FOV         float32
	Aspect      float32

	FogEnabled bool
	FogColor   mgl32.Vec3

	PlaneColor  mgl32.Vec3
	DotColor    mgl32.Vec3
	PlaneOffset float32

	BustScale    float32
	BustPosition mgl32.Vec3

	Helpers bool

	MaxConsecutiveFailures int
	FailureCooldown        time.Duration
}

// OptionsFromConfig converts the loaded configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	fog, err := config.ParseHexColor(cfg.Scene.FogColor)
	if err != nil {
		return Options{}, fmt.Errorf("scene.fog_color: %w", err)
	}
	plane, err := config.ParseHexColor(cfg.Scene.PlaneColor)
	if err != nil {
		return Options{}, fmt.Errorf("scene.plane_color: %w", err)
	}
	dot, err := config.ParseHexColor(cfg.Scene.DotColor)
	if err != nil {
		return Options{}, fmt.Errorf("scene.dot_color: %w", err)
	}

	opts := Options{
		Seed:                   cfg.Scene.Seed,
		CameraStart:            cfg.Scene.CameraStart,
		FOV:                    cfg.Scene.FOV,
		Aspect:                 float32(cfg.Graphics.Width) / float32(max(cfg.Graphics.Height, 1)),
		FogEnabled:             cfg.Scene.FogEnabled,
		FogColor:               fog,
		PlaneColor:             plane,
		DotColor:               dot,
		PlaneOffset:            cfg.Scene.PlaneOffset,
		BustScale:              cfg.Assets.Scale,
		BustPosition:           cfg.Assets.Position,
		Helpers:                cfg.Debug.Helpers,
		MaxConsecutiveFailures: cfg.Scene.MaxConsecutiveFailures,
		FailureCooldown:        cfg.Scene.FailureCooldown,
	}
	for _, s := range cfg.Scene.Sections {
		spec := SectionSpec{
			ID:            Section(s.ID),
			Duration:      s.Duration,
			Camera:        s.Camera,
			Target:        s.Target,
			Fog:           s.Fog,
			PlaneOpacity:  s.PlaneOpacity,
			PointOpacity:  s.PointOpacity,
			ChartOpacity:  s.ChartOpacity,
			BarsOpacity:   s.BarsOpacity,
			BustOpacity:   s.BustOpacity,
			Morph:         s.Morph,
			Wave:          s.Wave,
			RequiresModel: s.RequiresModel,
		}
		for _, p := range s.Planes {
			spec.Planes = append(spec.Planes, PlaneTransform{Position: p.Position, Rotation: p.Rotation})
		}
		opts.Sections = append(opts.Sections, spec)
	}
	return opts, nil
}

// DefaultOptions is the default configuration converted for the controller.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(err) // defaults are constants
	}
	return opts
}

func (o *Options) withDefaults() {
	if o.FOV == 0 {
		o.FOV = 45
	}
	if o.Aspect == 0 {
		o.Aspect = 16.0 / 9
	}
	if o.BustScale == 0 {
		o.BustScale = 120
	}
	if o.MaxConsecutiveFailures < 1 {
		o.MaxConsecutiveFailures = 5
	}
	if o.FailureCooldown <= 0 {
		o.FailureCooldown = 2 * time.Second
	}
}
