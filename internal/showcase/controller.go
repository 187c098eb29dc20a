// Package showcase is the scroll-driven scene: it owns the planes, charts and
// bust, prebuilds one timeline per section and switches between them.
package showcase

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/assets"
	"github.com/Faultbox/scrollscene/internal/engine/camera"
	"github.com/Faultbox/scrollscene/internal/tween"
	"github.com/Faultbox/scrollscene/internal/wave"
)

// ModelSource delivers the asynchronously loaded bust exactly once.
type ModelSource interface {
	Poll() (assets.Result, bool)
}

// Deps are the collaborators handed to the controller.
type Deps struct {
	Scheduler *tween.Scheduler
	Drawer    Drawer
	Model     ModelSource
	Log       *zap.Logger
}

// Controller drives the scene. All methods must be called from the render
// loop goroutine.
type Controller struct {
	opts     Options
	specs    map[Section]SectionSpec
	sched    *tween.Scheduler
	registry *Registry
	drawer   Drawer
	model    ModelSource
	log      *zap.Logger

	scene    *Scene
	cam      *camera.Camera
	overview *camera.OrbitCamera

	current      Section
	useOverview  bool
	waveOverride bool

	breaker breaker
	stats   Stats
}

// New builds the scene and prebuilds every section timeline that does not
// depend on the model.
func New(deps Deps, opts Options) (*Controller, error) {
	opts.withDefaults()
	if len(opts.Sections) == 0 {
		return nil, errors.New("showcase: no sections configured")
	}
	if deps.Drawer == nil {
		return nil, errors.New("showcase: nil drawer")
	}

	c := &Controller{
		opts:     opts,
		specs:    make(map[Section]SectionSpec, len(opts.Sections)),
		sched:    deps.Scheduler,
		registry: NewRegistry(),
		drawer:   deps.Drawer,
		model:    deps.Model,
		log:      deps.Log,
		breaker: breaker{
			max:      opts.MaxConsecutiveFailures,
			cooldown: opts.FailureCooldown.Seconds(),
		},
	}
	if c.sched == nil {
		c.sched = tween.NewScheduler()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	c.buildScene()

	for _, spec := range opts.Sections {
		if err := c.registry.Register(spec.ID); err != nil {
			return nil, err
		}
		c.specs[spec.ID] = spec
	}
	for _, spec := range opts.Sections {
		if spec.RequiresModel {
			continue
		}
		if err := c.registry.MarkReady(spec.ID, c.buildSection(spec)); err != nil {
			return nil, err
		}
	}

	c.log.Info("scene ready",
		zap.Int("sections", len(opts.Sections)),
		zap.Int("planes", len(c.scene.Planes)),
		zap.Uint64("seed", opts.Seed),
	)
	return c, nil
}

func (c *Controller) buildScene() {
	rng := rand.New(rand.NewPCG(c.opts.Seed, c.opts.Seed^0x9e3779b97f4a7c15))
	seed := int64(c.opts.Seed)

	first := c.opts.Sections[0]

	c.cam = camera.NewPerspective(c.opts.FOV, c.opts.Aspect, 1, 10000)
	c.cam.LookAt(c.opts.CameraStart, mgl32.Vec3{})
	c.overview = camera.NewOrbitCamera(c.cam.Lens)

	c.scene = &Scene{
		Fog: Fog{
			Enabled: c.opts.FogEnabled,
			Color:   c.opts.FogColor,
			Density: first.Fog,
		},
		Helpers: Helpers{
			Visible:       c.opts.Helpers,
			AxesSize:      500,
			GridSize:      1000,
			GridDivisions: 50,
		},
		Lights:  DefaultLights(),
		Ambient: 0.2,
		Chart:   NewLineChart(seed, 120, 900, 140, mgl32.Vec3{0, 40, 0}),
		Bars:    NewVolumeBars(seed, 40, 900, 120, mgl32.Vec3{0, -160, 0}),
		Bust: &Bust{
			Position: c.opts.BustPosition,
			Scale:    c.opts.BustScale,
			Color:    mgl32.Vec3{1, 1, 1},
		},
	}

	for i, name := range []string{"plane-up", "plane-down"} {
		o := wave.DefaultOptions()
		o.Name = name
		o.Color = c.opts.PlaneColor
		o.DotColor = c.opts.DotColor
		o.YOffset = c.opts.PlaneOffset
		if i == 1 {
			o.YOffset = -c.opts.PlaneOffset
		}
		o.Opacity = first.PlaneOpacity
		o.PointOpacity = first.PointOpacity
		c.scene.Planes = append(c.scene.Planes, wave.New(o, c.sched, rng))
	}
}

// AnimateToSection transitions the scene to target. It is the only way the
// current section changes.
func (c *Controller) AnimateToSection(target Section) error {
	state, err := c.registry.State(target)
	if err != nil {
		return err
	}
	switch state {
	case Unavailable:
		return fmt.Errorf("%w: %s", ErrSectionNotReady, target)
	case Failed:
		return fmt.Errorf("%w: %s: %v", ErrAssetUnavailable, target, c.registry.Cause(target))
	}

	tl, err := c.registry.Timeline(target)
	if err != nil {
		return err
	}
	if target == c.current && (tl.IsActive() || tl.Completed()) {
		c.log.Debug("section already active", zap.String("section", string(target)))
		return nil
	}

	order := c.registry.Order(target)
	for _, other := range c.registry.Sections() {
		if other == target {
			continue
		}
		if c.registry.Order(other) > order {
			if err := c.registry.ReverseHelpers(other); err != nil && !isNotReady(err) {
				return err
			}
		}
		if otl, err := c.registry.Timeline(other); err == nil && otl.IsActive() && !otl.Reversed() {
			otl.Pause()
		}
	}

	if err := c.registry.PlayHelpers(target); err != nil {
		return err
	}
	if err := c.registry.Play(target); err != nil {
		return err
	}

	c.log.Info("animating to section",
		zap.String("from", string(c.current)),
		zap.String("to", string(target)),
	)
	c.current = target
	return nil
}

// ReverseSection plays a section's timeline backwards from where it is.
func (c *Controller) ReverseSection(id Section) error {
	if err := c.registry.Reverse(id); err != nil {
		return err
	}
	c.log.Info("reversing section", zap.String("section", string(id)))
	return nil
}

func isNotReady(err error) bool {
	return errors.Is(err, ErrSectionNotReady) || errors.Is(err, ErrAssetUnavailable)
}

// buildSection prebuilds a section's timelines. Camera, fog and material
// tweens share one label so they start on the same frame.
func (c *Controller) buildSection(spec SectionSpec) SectionTimelines {
	const lb0 = "lb0"
	id := spec.ID
	d := spec.Duration
	at := tween.AtLabel(lb0)
	ease := tween.Ease(tween.InOutCubic)

	main := c.sched.NewTimeline(string(id))
	main.AddLabel(lb0)
	for a := 0; a < 3; a++ {
		main.To(tween.Float(&c.cam.Position[a]), spec.Camera[a], d, at, ease)
		main.To(tween.Float(&c.cam.Target[a]), spec.Target[a], d, at, ease)
	}
	main.To(tween.Float(&c.scene.Fog.Density), spec.Fog, d, at, ease)
	for _, p := range c.scene.Planes {
		main.To(p.OpacityProp(), spec.PlaneOpacity, d, at, ease)
		main.To(p.PointOpacityProp(), spec.PointOpacity, d, at, ease)
		main.To(p.MorphProp(), spec.Morph, d, at, ease)
	}
	main.To(tween.Float(&c.scene.Chart.Opacity), spec.ChartOpacity, d, at, ease)
	main.To(tween.Float(&c.scene.Bars.Opacity), spec.BarsOpacity, d, at, ease)
	main.To(tween.Float(&c.scene.Bust.Opacity), spec.BustOpacity, d, at, ease)

	main.OnStart = func() { c.onSectionStart(id) }
	main.OnComplete = func() { c.onSectionComplete(id) }
	main.OnReverseComplete = func() {
		c.log.Debug("section reversed", zap.String("section", string(id)))
	}

	tls := SectionTimelines{Main: main}

	if len(spec.Planes) > 0 {
		h := c.sched.NewTimeline(string(id) + ":helpers")
		h.AddLabel(lb0)
		for i, pt := range spec.Planes {
			if i >= len(c.scene.Planes) {
				break
			}
			c.scene.Planes[i].AddTransform(h, lb0, pt.Position, pt.Rotation, d)
		}
		tls.Helpers = h
	}

	tls.Repeating = c.buildRepeating(spec)
	return tls
}

// buildRepeating creates the continuous effects a section shows while active.
func (c *Controller) buildRepeating(spec SectionSpec) []*tween.Timeline {
	id := string(spec.ID)
	var out []*tween.Timeline

	if spec.Wave {
		pulse := c.sched.NewTimeline(id + ":pulse")
		for _, p := range c.scene.Planes {
			pulse.FromTo(p.PointScaleProp(), 1, 1.6, 2, tween.At(0), tween.Ease(tween.InOutSine))
		}
		out = append(out, pulse.Repeat(-1).Yoyo(true))
	}
	if spec.ChartOpacity > 0 {
		reveal := c.sched.NewTimeline(id+":chart").
			FromTo(tween.Float(&c.scene.Chart.Reveal), 0, 1, 4, tween.Ease(tween.Linear)).
			Repeat(-1).RepeatDelay(1)
		out = append(out, reveal)
	}
	if spec.BarsOpacity > 0 {
		grow := c.sched.NewTimeline(id+":bars").
			FromTo(tween.Float(&c.scene.Bars.Grow), 0, 1, 1.5).
			Repeat(-1).Yoyo(true).RepeatDelay(0.5)
		out = append(out, grow)
	}
	if spec.BustOpacity > 0 {
		spin := c.sched.NewTimeline(id+":spin").
			FromTo(tween.Float(&c.scene.Bust.Spin), 0, 2*3.1415927, 20, tween.Ease(tween.Linear)).
			Repeat(-1)
		out = append(out, spin)
	}
	return out
}

// onSectionStart stops every other section's continuous effects at their
// first frame, then starts this section's.
func (c *Controller) onSectionStart(id Section) {
	for _, other := range c.registry.Sections() {
		if other != id {
			_ = c.registry.SeekToStart(other)
		}
	}
	_ = c.registry.StartRepeating(id)

	spec := c.specs[id]
	for _, p := range c.scene.Planes {
		p.SetWaveState(spec.Wave || c.waveOverride)
	}
	if spec.Morph > 0 && c.scene.Bust.Loaded() {
		targets := c.scene.Bust.WorldPoints()
		for _, p := range c.scene.Planes {
			p.SetMorphTargets(targets)
		}
	}
	c.log.Debug("section started", zap.String("section", string(id)))
}

// onSectionComplete parks the timelines of sections that are not direct
// neighbours. Parked timelines keep their captured values for the next visit.
func (c *Controller) onSectionComplete(id Section) {
	near, _ := c.registry.Neighbours(id)
	keep := map[Section]bool{id: true}
	for _, n := range near {
		keep[n] = true
	}
	for _, other := range c.registry.Sections() {
		if keep[other] {
			continue
		}
		if err := c.registry.Park(other); err == nil {
			c.log.Debug("section parked", zap.String("section", string(other)))
		}
	}
	c.log.Info("section complete", zap.String("section", string(id)))
}

// pollModel installs the bust once its background load finishes and builds
// the sections that were waiting for it.
func (c *Controller) pollModel() {
	if c.model == nil {
		return
	}
	res, ok := c.model.Poll()
	if !ok {
		return
	}
	c.applyModel(res)
}

func (c *Controller) applyModel(res assets.Result) {
	if res.Err != nil || res.Set == nil {
		cause := res.Err
		if cause == nil {
			cause = assets.ErrNoGeometry
		}
		for _, spec := range c.opts.Sections {
			if spec.RequiresModel {
				_ = c.registry.MarkFailed(spec.ID, cause)
			}
		}
		c.log.Warn("model unavailable", zap.String("path", res.Path), zap.Error(cause))
		return
	}

	c.scene.Bust.SetPoints(res.Set.Points)
	for _, spec := range c.opts.Sections {
		if !spec.RequiresModel {
			continue
		}
		if state, _ := c.registry.State(spec.ID); state == Ready {
			continue
		}
		if err := c.registry.MarkReady(spec.ID, c.buildSection(spec)); err != nil {
			c.log.Error("building section", zap.String("section", string(spec.ID)), zap.Error(err))
		}
	}
	c.log.Info("model installed", zap.String("path", res.Path), zap.Int("points", len(res.Set.Points)))
}

// SetModelSource replaces the model source, e.g. after picking a new file.
// Sections already built keep their timelines; only the bust points change.
func (c *Controller) SetModelSource(src ModelSource) {
	c.model = src
}

// Current returns the active section, or "" before the first transition.
func (c *Controller) Current() Section { return c.current }

// Registry exposes the timeline registry for inspection.
func (c *Controller) Registry() *Registry { return c.registry }

// Scene returns the drawable scene.
func (c *Controller) Scene() *Scene { return c.scene }

// Camera returns the section-driven camera.
func (c *Controller) Camera() *camera.Camera { return c.cam }

// Overview returns the free orbit camera.
func (c *Controller) Overview() *camera.OrbitCamera { return c.overview }

// Scheduler returns the tween scheduler driving the scene.
func (c *Controller) Scheduler() *tween.Scheduler { return c.sched }

// Viewer returns the camera the next frame is drawn through.
func (c *Controller) Viewer() camera.Viewer {
	if c.useOverview {
		return c.overview
	}
	return c.cam
}

// Resize updates both cameras for a new framebuffer size.
func (c *Controller) Resize(width, height int) {
	c.cam.SetViewport(width, height)
	c.overview.SetViewport(width, height)
}
