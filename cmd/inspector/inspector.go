package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/app"
	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/debugpanel"
	"github.com/Faultbox/scrollscene/internal/engine/debug"
	"github.com/Faultbox/scrollscene/internal/engine/framebuffer"
	"github.com/Faultbox/scrollscene/internal/engine/overlay"
	"github.com/Faultbox/scrollscene/internal/engine/renderer"
	"github.com/Faultbox/scrollscene/internal/engine/ui"
	"github.com/Faultbox/scrollscene/internal/logger"
	"github.com/Faultbox/scrollscene/internal/page"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

const (
	windowTitle = "Scroll Scene Inspector"
	// panelWidth is kept clear on the left for the debug panel.
	panelWidth    = 380
	maxFrameDelta = 0.1
)

// pageKeys maps ImGui keys to page navigation.
var pageKeys = []struct {
	key  imgui.Key
	page page.Key
}{
	{imgui.KeyLeftArrow, page.KeyLeft},
	{imgui.KeyRightArrow, page.KeyRight},
	{imgui.KeyUpArrow, page.KeyUp},
	{imgui.KeyDownArrow, page.KeyDown},
	{imgui.KeyPageUp, page.KeyPageUp},
	{imgui.KeyPageDown, page.KeyPageDown},
	{imgui.KeySpace, page.KeyPageDown},
	{imgui.KeyHome, page.KeyHome},
	{imgui.KeyEnd, page.KeyEnd},
}

// Inspector renders the showcase into an offscreen framebuffer and shows it
// next to the debug panel.
type Inspector struct {
	backend *ui.Backend
	app     *app.App
	rend    *renderer.Renderer
	overlay *overlay.Renderer
	fb      *framebuffer.Framebuffer
	panel   *debugpanel.Panel
	log     *zap.Logger

	captures  *debug.Capture
	vp        app.Viewport
	last      time.Time
	hovering  bool
	lastMouse imgui.Vec2
	title     showcase.Section
}

// NewInspector opens the window and boots the showcase inside it.
func NewInspector(cfg *config.Config, captureDir string) (*Inspector, error) {
	in := &Inspector{
		captures: debug.NewCapture(captureDir, "scrollscene"),
		log:      logger.Named("inspector"),
	}

	var err error
	in.backend, err = ui.NewBackend(windowTitle, cfg.Graphics.Width+panelWidth, cfg.Graphics.Height, logger.Named("ui"))
	if err != nil {
		return nil, err
	}

	in.vp = app.Viewport{
		Width: cfg.Graphics.Width, Height: cfg.Graphics.Height,
		PixelW: cfg.Graphics.Width, PixelH: cfg.Graphics.Height,
	}

	in.rend, err = renderer.New(renderer.Config{Width: in.vp.PixelW, Height: in.vp.PixelH}, logger.Named("renderer"))
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	in.fb, err = framebuffer.New(int32(in.vp.PixelW), int32(in.vp.PixelH))
	if err != nil {
		in.rend.Close()
		return nil, err
	}

	in.app, err = app.New(cfg, in.rend, in.vp, logger.Named("app"))
	if err != nil {
		in.fb.Destroy()
		in.rend.Close()
		return nil, err
	}

	in.overlay, err = overlay.New(in.vp.Width, in.vp.Height, in.app.Atlas)
	if err != nil {
		in.app.Close()
		in.fb.Destroy()
		in.rend.Close()
		return nil, fmt.Errorf("creating overlay: %w", err)
	}

	in.panel = debugpanel.New(in.app.Context(), in.app.Scene, in.app.Assets, debugpanel.Toggles{
		Fog:     cfg.Scene.FogEnabled,
		Helpers: cfg.Debug.Helpers,
		Stats:   cfg.Debug.ShowStats,
		Animate: in.app.Scene.WaveAnimation(),
	}, logger.Named("panel"))
	in.panel.Capture = in.capture

	return in, nil
}

// Run starts the ImGui loop; it returns when the window closes.
func (in *Inspector) Run() {
	in.last = time.Now()
	in.backend.Run(in.render)
}

// Close releases GL resources and stops background loads.
func (in *Inspector) Close() {
	in.app.Close()
	in.overlay.Close()
	in.fb.Destroy()
	in.rend.Close()
}

func (in *Inspector) render() {
	now := time.Now()
	dt := min(now.Sub(in.last).Seconds(), maxFrameDelta)
	in.last = now

	in.panel.Poll()
	in.app.ShowStats = in.panel.Toggles.Stats
	for _, k := range pageKeys {
		if ui.IsKeyPressed(k.key) {
			in.app.Page.HandleKey(k.page)
		}
	}

	in.drawScene(dt)
	in.panel.Draw()

	if cur := in.app.Scene.Current(); cur != in.title {
		in.title = cur
		in.backend.SetWindowTitle(fmt.Sprintf("%s - %s", windowTitle, cur))
	}
}

func (in *Inspector) drawScene(dt float64) {
	x, y, w, h := in.backend.Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x+panelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-panelWidth, h))
	imgui.BeginV("Scene", nil, imgui.WindowFlagsNoMove|imgui.WindowFlagsNoResize|
		imgui.WindowFlagsNoCollapse|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse)
	defer imgui.End()

	avail := imgui.ContentRegionAvail()
	in.fit(avail)

	restore := in.fb.BindWithViewport()
	in.rend.Clear(in.app.Scene.Scene().Fog.Color)
	// Frame errors are logged by the scene and shown in the stats overlay.
	_ = in.app.Step(dt)
	in.overlay.Flush(in.app.Compose())
	restore()

	origin := imgui.CursorScreenPos()
	imgui.ImageWithBgV(
		ui.Texture(in.fb.ColorTexture()),
		imgui.NewVec2(float32(in.vp.Width), float32(in.vp.Height)),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	mouse := imgui.MousePos()
	if imgui.IsItemHovered() {
		in.hovering = true
		in.app.Page.PointerMove(float64(mouse.X-origin.X), float64(mouse.Y-origin.Y))

		if wheel := ui.Wheel(); wheel != 0 {
			if in.app.Scene.OverviewActive() {
				in.app.Scene.Overview().HandleZoom(wheel)
			} else {
				in.app.Page.Wheel(float64(wheel))
			}
		}
		if imgui.IsMouseDragging(imgui.MouseButtonRight) {
			in.app.Scene.Overview().HandleDrag(mouse.X-in.lastMouse.X, mouse.Y-in.lastMouse.Y)
		}
	} else if in.hovering {
		in.hovering = false
		in.app.Page.PointerLeave()
	}
	in.lastMouse = mouse
}

// fit resizes the offscreen target to the scene window's content area.
func (in *Inspector) fit(avail imgui.Vec2) {
	w, h := int(avail.X), int(avail.Y)
	if w < 1 || h < 1 || (w == in.vp.Width && h == in.vp.Height) {
		return
	}
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	in.vp = app.Viewport{
		Width: w, Height: h,
		PixelW: int(float32(w) * scale.X), PixelH: int(float32(h) * scale.Y),
	}
	in.fb.Resize(int32(in.vp.PixelW), int32(in.vp.PixelH))
	in.rend.Resize(in.vp.PixelW, in.vp.PixelH)
	in.overlay.Resize(in.vp.Width, in.vp.Height)
	in.app.Resize(in.vp)
}

// capture saves the last rendered frame as a PNG and returns its path.
func (in *Inspector) capture() (string, error) {
	img := in.fb.Snapshot()
	path, err := in.captures.Save(img)
	if err != nil {
		return "", err
	}
	in.log.Info("frame captured", zap.String("path", path), zap.Int("width", img.Bounds().Dx()))
	return path, nil
}
