package debugpanel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scrollscene/internal/assets"
	"github.com/Faultbox/scrollscene/internal/showcase"
)

type fakeTarget struct {
	calls  []string
	source showcase.ModelSource
}

func onOff(name string, on bool) string {
	if on {
		return name + ":on"
	}
	return name + ":off"
}

func (f *fakeTarget) record(s string)                { f.calls = append(f.calls, s) }
func (f *fakeTarget) SetFog(on bool)                 { f.record(onOff("fog", on)) }
func (f *fakeTarget) SetHelpers(on bool)             { f.record(onOff("helpers", on)) }
func (f *fakeTarget) SetWaveAnimation(on bool)       { f.record(onOff("wave", on)) }
func (f *fakeTarget) NormalizeVertices()             { f.record("normalize") }
func (f *fakeTarget) ResetCamera()                   { f.record("camera") }
func (f *fakeTarget) UseOverview(on bool)            { f.record(onOff("overview", on)) }
func (f *fakeTarget) ResetPlanes()                   { f.record("planes") }
func (f *fakeTarget) Sections() []showcase.Section   { return []showcase.Section{"section1", "section2"} }
func (f *fakeTarget) Go(id showcase.Section)         { f.record("go:" + string(id)) }
func (f *fakeTarget) State() showcase.SceneState     { return showcase.SceneState{} }
func (f *fakeTarget) DumpState()                     { f.record("dump") }

func (f *fakeTarget) SetModelSource(src showcase.ModelSource) {
	f.record("model")
	f.source = src
}

type fakeLoader struct{ paths []string }

func (l *fakeLoader) LoadAsync(ctx context.Context, path string) *assets.Pending {
	l.paths = append(l.paths, path)
	return assets.NewManager(10, nil).LoadAsync(ctx, path)
}

func TestPanel_Toggles(t *testing.T) {
	target := &fakeTarget{}
	p := New(context.Background(), target, &fakeLoader{}, Toggles{Fog: true, Stats: true}, nil)

	p.SetFog(false)
	p.SetHelpers(true)
	p.SetAnimate(true)
	p.SetOverview(true)
	p.Normalize()

	assert.Equal(t, Toggles{Helpers: true, Stats: true, Overview: true}, p.Toggles)
	assert.Equal(t, []string{"fog:off", "helpers:on", "wave:on", "overview:on", "normalize"}, target.calls)
}

func TestPanel_QueueAndPoll(t *testing.T) {
	target := &fakeTarget{}
	loader := &fakeLoader{}
	p := New(context.Background(), target, loader, Toggles{}, nil)

	p.Poll()
	assert.Empty(t, loader.paths, "nothing queued")

	p.Queue("first.glb")
	p.Queue("second.glb")
	p.Poll()
	require.Equal(t, []string{"second.glb"}, loader.paths, "latest pick wins")
	assert.Equal(t, "second.glb", p.Loading())
	assert.Contains(t, p.Status(), "second.glb")
	require.NotNil(t, target.source)

	res, err := target.source.(*assets.Pending).Wait(context.Background())
	require.NoError(t, err)
	assert.Error(t, res.Err, "missing file reports an error through the pending result")

	p.Poll()
	assert.Len(t, loader.paths, 1)
}

func TestTimelineRows(t *testing.T) {
	st := showcase.SceneState{Timelines: []showcase.TimelineInfo{
		{Name: "section1", Time: 0.5, Progress: 0.25, Active: true},
		{Name: "section2", Time: 2, Progress: 1},
		{Name: "section3", Time: 1, Progress: 0.5, Active: true, Reversed: true},
		{Name: "ticker"},
	}}
	rows := TimelineRows(st)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"section1", "0.50", " 25%", "playing"}, rows[0])
	assert.Equal(t, "done", rows[1][3])
	assert.Equal(t, "reversing", rows[2][3])
	assert.Equal(t, "idle", rows[3][3])
}

func TestFrameMeter(t *testing.T) {
	m := NewFrameMeter(0.5)
	m.readMem = func() uint64 { return 3 << 20 }

	m.Tick(0)
	assert.Zero(t, m.FPS)

	m.Tick(1.0 / 50)
	assert.InDelta(t, 20, m.FrameMS, 1e-9)
	assert.InDelta(t, 50, m.FPS, 1e-9)
	assert.InDelta(t, 3, m.HeapMB, 1e-9, "first tick samples memory")

	m.Tick(0.010)
	assert.InDelta(t, 15, m.FrameMS, 1e-9)
}

func TestStatsLines(t *testing.T) {
	m := NewFrameMeter(0.1)
	m.readMem = func() uint64 { return 0 }
	m.Tick(1.0 / 60)

	lines := StatsLines(m, showcase.Stats{Frames: 10, Drawn: 9, Skipped: 1, Consecutive: 1}, "", "section3")
	assert.Equal(t, "fps 60  16.7 ms", lines[0])
	assert.Equal(t, "section -", lines[1])
	assert.Equal(t, "pending section3", lines[2])
	assert.Equal(t, "frames 10 drawn 9 skipped 1 halts 0", lines[3])
	assert.Equal(t, "failing x1", lines[len(lines)-1])

	lines = StatsLines(m, showcase.Stats{Open: true}, "section2", "")
	assert.Equal(t, "section section2", lines[1])
	assert.Equal(t, "render halted", lines[len(lines)-1])
}

func TestPanel_Apply(t *testing.T) {
	target := &fakeTarget{}
	p := New(context.Background(), target, &fakeLoader{}, Toggles{Fog: true}, nil)

	for _, h := range []Hotkey{HotkeyFog, HotkeyHelpers, HotkeyStats, HotkeyOverview, HotkeyDump} {
		assert.True(t, p.Apply(h))
	}
	assert.False(t, p.Apply(HotkeyNone))

	assert.Equal(t, Toggles{Helpers: true, Stats: true, Overview: true}, p.Toggles)
	assert.Equal(t, []string{"fog:off", "helpers:on", "overview:on", "dump"}, target.calls)
}
