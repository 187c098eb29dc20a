// Package debugpanel is the developer panel of the inspector build: scene
// toggles, section buttons, model loading, a timeline table and the stats
// overlay.
package debugpanel

import (
	"context"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/assets"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

// Target is the part of the scene controller the panel drives.
type Target interface {
	SetFog(on bool)
	SetHelpers(on bool)
	SetWaveAnimation(on bool)
	NormalizeVertices()
	ResetCamera()
	UseOverview(on bool)
	ResetPlanes()
	Sections() []showcase.Section
	Go(id showcase.Section)
	State() showcase.SceneState
	DumpState()
	SetModelSource(src showcase.ModelSource)
}

// Loader starts background model loads.
type Loader interface {
	LoadAsync(ctx context.Context, path string) *assets.Pending
}

// Toggles is the checkbox state of the panel.
type Toggles struct {
	Fog      bool
	Helpers  bool
	Stats    bool
	Animate  bool
	Overview bool
}

// Panel draws the debug window. Draw and Poll run on the render loop; the
// file dialog runs on its own goroutine and hands its pick over a channel.
type Panel struct {
	Toggles Toggles

	target Target
	loader Loader
	ctx    context.Context
	log    *zap.Logger

	picks   chan string
	loading string
	status  string

	// Capture is called by the "capture frame" button when set.
	Capture func() (string, error)
}

// New creates a panel with the given initial toggles.
func New(ctx context.Context, target Target, loader Loader, initial Toggles, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{
		Toggles: initial,
		target:  target,
		loader:  loader,
		ctx:     ctx,
		log:     log,
		picks:   make(chan string, 1),
	}
}

// Status returns the last message shown under the buttons.
func (p *Panel) Status() string { return p.status }

// Loading returns the model path being loaded, or "".
func (p *Panel) Loading() string { return p.loading }

// SetFog, SetHelpers, SetAnimate and SetOverview apply a toggle to the
// controller and remember it.

func (p *Panel) SetFog(on bool) {
	p.Toggles.Fog = on
	p.target.SetFog(on)
}

func (p *Panel) SetHelpers(on bool) {
	p.Toggles.Helpers = on
	p.target.SetHelpers(on)
}

func (p *Panel) SetAnimate(on bool) {
	p.Toggles.Animate = on
	p.target.SetWaveAnimation(on)
}

func (p *Panel) SetOverview(on bool) {
	p.Toggles.Overview = on
	p.target.UseOverview(on)
}

// Normalize stops the wave and flattens the planes.
func (p *Panel) Normalize() {
	p.Toggles.Animate = false
	p.target.NormalizeVertices()
}

// Queue hands a picked model path to the render loop. A pick arriving while
// another is queued replaces it.
func (p *Panel) Queue(path string) {
	for {
		select {
		case p.picks <- path:
			return
		default:
		}
		select {
		case <-p.picks:
		default:
		}
	}
}

// Poll starts the load of a queued pick. Call once per frame.
func (p *Panel) Poll() {
	select {
	case path := <-p.picks:
		p.loading = path
		p.status = "loading " + path
		p.target.SetModelSource(p.loader.LoadAsync(p.ctx, path))
		p.log.Info("model load requested", zap.String("path", path))
	default:
	}
}

func (p *Panel) openModelDialog() {
	go func() {
		path, err := dialog.File().
			Filter("glTF models", "gltf", "glb").
			Filter("All Files", "*").
			Title("Load bust model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				p.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		p.Queue(path)
	}()
}

// Draw renders the panel window.
func (p *Panel) Draw() {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowBgAlpha(0.85)
	if !imgui.BeginV("Debug", nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoCollapse) {
		imgui.End()
		return
	}

	if v := p.Toggles.Fog; imgui.Checkbox("Fog", &v) {
		p.SetFog(v)
	}
	if v := p.Toggles.Helpers; imgui.Checkbox("Helpers", &v) {
		p.SetHelpers(v)
	}
	imgui.Checkbox("Stats", &p.Toggles.Stats)
	if v := p.Toggles.Animate; imgui.Checkbox("Animate vertices", &v) {
		p.SetAnimate(v)
	}
	if v := p.Toggles.Overview; imgui.Checkbox("Overview camera", &v) {
		p.SetOverview(v)
	}

	imgui.Separator()
	if imgui.Button("Normalize vertices") {
		p.Normalize()
	}
	imgui.SameLine()
	if imgui.Button("Reset camera") {
		p.target.ResetCamera()
	}
	imgui.SameLine()
	if imgui.Button("Reset planes") {
		p.target.ResetPlanes()
	}

	imgui.Separator()
	for i, id := range p.target.Sections() {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(string(id)) {
			p.target.Go(id)
		}
	}

	imgui.Separator()
	if imgui.Button("Load model...") {
		p.openModelDialog()
	}
	imgui.SameLine()
	if imgui.Button("Dump state") {
		p.target.DumpState()
		p.status = "state logged"
	}
	if p.Capture != nil {
		imgui.SameLine()
		if imgui.Button("Capture frame") {
			if path, err := p.Capture(); err != nil {
				p.status = "capture failed: " + err.Error()
			} else {
				p.status = "saved " + path
			}
		}
	}
	if p.status != "" {
		imgui.TextDisabled(p.status)
	}

	imgui.Separator()
	p.drawTimelines(p.target.State())
	imgui.End()
}

func (p *Panel) drawTimelines(st showcase.SceneState) {
	imgui.Text(fmt.Sprintf("section %s  fog %.5f  morph %.2f", st.Section, st.FogDensity, st.Morph))
	rows := TimelineRows(st)
	if !imgui.BeginTable("timelines", int32(len(timelineColumns))) {
		return
	}
	for _, col := range timelineColumns {
		imgui.TableSetupColumnV(col, imgui.TableColumnFlagsWidthFixed, 0, 0)
	}
	for _, row := range rows {
		imgui.TableNextRow()
		for _, cell := range row {
			imgui.TableNextColumn()
			imgui.Text(cell)
		}
	}
	imgui.EndTable()
}

var timelineColumns = []string{"timeline", "time", "progress", "state"}

// TimelineRows formats the timeline table, one row per scheduled timeline.
func TimelineRows(st showcase.SceneState) [][]string {
	rows := make([][]string, 0, len(st.Timelines))
	for _, tl := range st.Timelines {
		state := "idle"
		switch {
		case tl.Active && tl.Reversed:
			state = "reversing"
		case tl.Active:
			state = "playing"
		case tl.Progress >= 1:
			state = "done"
		}
		rows = append(rows, []string{
			tl.Name,
			fmt.Sprintf("%.2f", tl.Time),
			fmt.Sprintf("%3.0f%%", tl.Progress*100),
			state,
		})
	}
	return rows
}
