package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_ToLinear(t *testing.T) {
	s := NewScheduler()
	var x float32 = 10
	tl := s.NewTimeline("lin").To(Float(&x), 20, 1, Ease(Linear))

	// Paused by default.
	s.Advance(0.5)
	assert.Equal(t, float32(10), x)

	tl.Play()
	s.Advance(0.5)
	assert.InDelta(t, 15, x, 1e-4)
	s.Advance(0.5)
	assert.InDelta(t, 20, x, 1e-4)
	assert.True(t, tl.Completed())
	assert.False(t, tl.IsActive())
}

func TestTimeline_LabelsStartTogether(t *testing.T) {
	s := NewScheduler()
	var a, b, c float32
	tl := s.NewTimeline("lbl")
	tl.To(Float(&a), 1, 2, Ease(Linear))
	tl.AddLabel("lb0", At(0.5))
	tl.To(Float(&b), 1, 1, AtLabel("lb0"), Ease(Linear))
	tl.To(Float(&c), 1, 1, AtLabel("lb0"), Ease(Linear))

	at, ok := tl.Label("lb0")
	require.True(t, ok)
	assert.Equal(t, 0.5, at)

	tl.Play()
	s.Advance(0.25)
	assert.Zero(t, b)
	assert.Zero(t, c)

	s.Advance(0.5)
	assert.InDelta(t, 0.25, b, 1e-4)
	assert.Equal(t, b, c, "label-grouped tweens must progress in lockstep")
	assert.Equal(t, 2.0, tl.Duration())
}

func TestTimeline_DefaultPositionAppends(t *testing.T) {
	s := NewScheduler()
	var a, b float32
	tl := s.NewTimeline("seq").
		To(Float(&a), 1, 1).
		To(Float(&b), 1, 1)
	assert.Equal(t, 2.0, tl.Duration())
}

func TestTimeline_CallbacksOrder(t *testing.T) {
	s := NewScheduler()
	var x float32
	var events []string

	tl := s.NewTimeline("cb").To(Float(&x), 1, 1)
	tl.Call(func() { events = append(events, "call") }, At(0.5))
	tl.OnStart = func() { events = append(events, "start") }
	tl.OnComplete = func() { events = append(events, "complete") }
	tl.OnReverseComplete = func() { events = append(events, "reverse") }

	tl.Play()
	for i := 0; i < 12; i++ {
		s.Advance(0.1)
	}
	tl.Reverse()
	for i := 0; i < 12; i++ {
		s.Advance(0.1)
	}

	assert.Equal(t, []string{"start", "call", "complete", "reverse"}, events)
	assert.InDelta(t, 0, x, 1e-4)
}

func TestTimeline_ReverseRestoresFrom(t *testing.T) {
	s := NewScheduler()
	x := float32(3)
	tl := s.NewTimeline("rev").To(Float(&x), 9, 1, At(0.5), Ease(Linear))
	tl.Play()
	s.Advance(2)
	require.InDelta(t, 9, x, 1e-4)

	tl.Reverse()
	s.Advance(2)
	assert.InDelta(t, 3, x, 1e-4)
	assert.Zero(t, tl.Time())
}

func TestTimeline_RepeatForever(t *testing.T) {
	s := NewScheduler()
	var x float32
	repeats := 0
	tl := s.NewTimeline("loop").FromTo(Float(&x), 0, 1, 1, Ease(Linear)).Repeat(-1)
	tl.OnRepeat = func() { repeats++ }
	tl.Play()

	for i := 0; i < 25; i++ {
		s.Advance(0.1)
	}
	assert.Equal(t, 2, repeats)
	assert.Equal(t, 2, tl.Iteration())
	assert.InDelta(t, 0.5, x, 1e-3)
	assert.True(t, tl.IsActive())
}

func TestTimeline_Yoyo(t *testing.T) {
	s := NewScheduler()
	var x float32
	tl := s.NewTimeline("yoyo").FromTo(Float(&x), 0, 10, 1, Ease(Linear)).Repeat(1).Yoyo(true)
	tl.Play()

	s.Advance(1.5)
	assert.InDelta(t, 5, x, 1e-3)
	s.Advance(0.5)
	assert.InDelta(t, 0, x, 1e-3)
	assert.True(t, tl.Completed())
}

func TestTimeline_SeekRendersWithoutCallbacks(t *testing.T) {
	s := NewScheduler()
	var x float32
	called := false
	tl := s.NewTimeline("seek").FromTo(Float(&x), 0, 100, 1, Ease(Linear))
	tl.Call(func() { called = true }, At(0.5))

	tl.Seek(0.75)
	assert.InDelta(t, 75, x, 1e-3)
	assert.False(t, called)

	tl.Seek(0)
	assert.InDelta(t, 0, x, 1e-3)
	assert.True(t, tl.Paused())
}

func TestTimeline_RewindDoesNotWrite(t *testing.T) {
	s := NewScheduler()
	var x float32
	tl := s.NewTimeline("park").FromTo(Float(&x), 0, 1, 1, Ease(Linear)).Play()
	s.Advance(0.5)
	require.InDelta(t, 0.5, x, 1e-4)

	tl.Rewind()
	assert.InDelta(t, 0.5, x, 1e-4)
	assert.Zero(t, tl.Time())
	assert.True(t, tl.Paused())

	s.Advance(1)
	assert.InDelta(t, 0.5, x, 1e-4)
}

func TestTimeline_InvalidateRecapturesStart(t *testing.T) {
	s := NewScheduler()
	var x float32
	tl := s.NewTimeline("again").To(Float(&x), 10, 1, Ease(Linear)).Play()
	s.Advance(1)
	require.InDelta(t, 10, x, 1e-4)

	x = 4
	tl.Invalidate().Restart()
	s.Advance(0.5)
	assert.InDelta(t, 7, x, 1e-4)
}

func TestTimeline_PlayOnCompletedIsNoop(t *testing.T) {
	s := NewScheduler()
	var x float32
	starts := 0
	tl := s.NewTimeline("done").To(Float(&x), 1, 0.5)
	tl.OnStart = func() { starts++ }
	tl.Play()
	s.Advance(1)
	tl.Play()
	s.Advance(1)
	assert.Equal(t, 1, starts)
}

func TestTimeline_ReverseTakesBackProperty(t *testing.T) {
	s := NewScheduler()
	var x float32
	move := s.NewTimeline("move").To(Float(&x), 10, 1, Ease(Linear)).Play()
	s.Advance(1)
	require.InDelta(t, 10, x, 1e-4)

	s.Once("reset").To(Float(&x), 0, 0.5, Ease(Linear))
	s.Advance(0.5)
	s.Advance(0.1)
	require.InDelta(t, 0, x, 1e-4)
	require.Empty(t, s.Owner(Float(&x)), "finished one-shot releases the property")

	move.Reverse()
	assert.Equal(t, "move", s.Owner(Float(&x)))
	s.Advance(0.5)
	assert.InDelta(t, 5, x, 1e-4)
	s.Advance(0.5)
	assert.InDelta(t, 0, x, 1e-4)

	move.Play()
	s.Advance(1)
	assert.InDelta(t, 10, x, 1e-4, "replaying forward writes again")
}

func TestTimeline_PlayOnCompletedKeepsOwner(t *testing.T) {
	s := NewScheduler()
	var x float32
	first := s.NewTimeline("first").To(Float(&x), 10, 1, Ease(Linear)).Play()
	s.Advance(1)
	second := s.NewTimeline("second").To(Float(&x), 20, 1, Ease(Linear)).Play()
	s.Advance(1)
	require.InDelta(t, 20, x, 1e-4)

	second.Reverse()
	first.Play()
	assert.Equal(t, "second", s.Owner(Float(&x)))
	s.Advance(1)
	assert.InDelta(t, 10, x, 1e-4, "second reverses back to its captured start")
}
