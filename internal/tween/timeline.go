package tween

import "math"

type itemState uint8

const (
	stateIdle itemState = iota
	stateRunning
	stateDone
)

// item is a single property tween inside a timeline.
type item struct {
	tl   *Timeline
	prop Prop

	from, to     float32
	explicitFrom bool
	captured     bool

	start, dur float64
	ease       EaseFunc
	onUpdate   func()

	state itemState
}

type call struct {
	at float64
	fn func()
}

// Timeline is an ordered group of tweens and callbacks.
// Timelines are created paused by Scheduler.NewTimeline and only move when
// played, reversed or sought.
type Timeline struct {
	name  string
	sched *Scheduler

	items    []*item
	calls    []*call
	labels   map[string]float64
	duration float64

	repeat      int
	repeatDelay float64
	yoyo        bool
	once        bool

	total     float64
	paused    bool
	reversed  bool
	started   bool
	completed bool
	killed    bool

	// Lifecycle callbacks.
	OnStart           func()
	OnComplete        func()
	OnReverseComplete func()
	OnUpdate          func()
	OnRepeat          func()
}

// Name returns the timeline name.
func (tl *Timeline) Name() string { return tl.name }

// To tweens p from its value at start time to the given value.
func (tl *Timeline) To(p Prop, to float32, duration float64, opts ...Option) *Timeline {
	return tl.add(p, 0, to, false, duration, opts)
}

// FromTo tweens p between explicit values.
func (tl *Timeline) FromTo(p Prop, from, to float32, duration float64, opts ...Option) *Timeline {
	return tl.add(p, from, to, true, duration, opts)
}

// Set writes a value instantly when the playhead reaches its position.
func (tl *Timeline) Set(p Prop, v float32, opts ...Option) *Timeline {
	return tl.add(p, 0, v, false, 0, opts)
}

// Call schedules fn when the playhead passes its position moving forward.
func (tl *Timeline) Call(fn func(), opts ...Option) *Timeline {
	pl := applyOptions(opts)
	at := tl.resolve(pl)
	tl.calls = append(tl.calls, &call{at: at, fn: fn})
	tl.extend(at)
	return tl
}

// AddLabel records a named position. Without options it marks the current end.
func (tl *Timeline) AddLabel(name string, opts ...Option) *Timeline {
	pl := applyOptions(opts)
	tl.labels[name] = tl.resolve(pl)
	return tl
}

// Label returns the offset of a label.
func (tl *Timeline) Label(name string) (float64, bool) {
	at, ok := tl.labels[name]
	return at, ok
}

// Repeat sets the number of extra iterations; -1 repeats forever.
func (tl *Timeline) Repeat(n int) *Timeline {
	tl.repeat = n
	return tl
}

// RepeatDelay sets the pause between iterations.
func (tl *Timeline) RepeatDelay(d float64) *Timeline {
	tl.repeatDelay = d
	return tl
}

// Yoyo makes odd iterations play backwards.
func (tl *Timeline) Yoyo(on bool) *Timeline {
	tl.yoyo = on
	return tl
}

func (tl *Timeline) add(p Prop, from, to float32, explicit bool, duration float64, opts []Option) *Timeline {
	pl := applyOptions(opts)
	start := tl.resolve(pl)
	e := pl.ease
	if e == nil {
		e = DefaultEase
	}
	tl.items = append(tl.items, &item{
		tl:           tl,
		prop:         p,
		from:         from,
		to:           to,
		explicitFrom: explicit,
		captured:     explicit,
		start:        start,
		dur:          duration,
		ease:         e,
		onUpdate:     pl.onUpdate,
	})
	tl.extend(start + duration)
	return tl
}

func (tl *Timeline) resolve(pl placement) float64 {
	pos := tl.duration
	switch {
	case pl.label != "":
		at, ok := tl.labels[pl.label]
		if !ok {
			at = tl.duration
			tl.labels[pl.label] = at
		}
		pos = at
	case pl.hasOffset:
		pos = pl.offset
	}
	return pos + pl.delay
}

func (tl *Timeline) extend(end float64) {
	if end > tl.duration {
		tl.duration = end
	}
}

// Duration returns the length of one iteration in seconds.
func (tl *Timeline) Duration() float64 { return tl.duration }

// TotalDuration includes repeats; it is +Inf for endless timelines.
func (tl *Timeline) TotalDuration() float64 {
	if tl.repeat < 0 {
		return math.Inf(1)
	}
	return tl.duration*float64(tl.repeat+1) + tl.repeatDelay*float64(tl.repeat)
}

// Time returns the playhead position including repeats.
func (tl *Timeline) Time() float64 { return tl.total }

// Progress returns the position within the current iteration in [0,1].
func (tl *Timeline) Progress() float64 {
	if tl.duration <= 0 {
		if tl.completed {
			return 1
		}
		return 0
	}
	_, local := tl.localTime(tl.total)
	return local / tl.duration
}

// Iteration returns the zero-based iteration of the playhead.
func (tl *Timeline) Iteration() int {
	iter, _ := tl.localTime(tl.total)
	return iter
}

// Paused reports whether the timeline is paused.
func (tl *Timeline) Paused() bool { return tl.paused }

// Reversed reports whether the timeline plays backwards.
func (tl *Timeline) Reversed() bool { return tl.reversed }

// Completed reports whether the timeline reached its end moving forward.
func (tl *Timeline) Completed() bool { return tl.completed }

// IsActive reports whether the next Advance would move the playhead.
func (tl *Timeline) IsActive() bool {
	if tl.paused || tl.killed {
		return false
	}
	if tl.reversed {
		return tl.total > 0
	}
	return !tl.completed
}

// Play resumes forward playback from the current position. A completed
// timeline stays at its end. Started tweens take their properties back from
// whichever tween drove them in the meantime.
func (tl *Timeline) Play() *Timeline {
	if !tl.completed {
		tl.reclaim()
	}
	tl.paused = false
	tl.reversed = false
	return tl
}

// Reverse plays backwards from the current position toward the start,
// taking back the properties of started tweens like Play.
func (tl *Timeline) Reverse() *Timeline {
	if tl.total > 0 {
		tl.reclaim()
	}
	tl.paused = false
	tl.reversed = true
	tl.completed = false
	return tl
}

// Pause stops the playhead where it is.
func (tl *Timeline) Pause() *Timeline {
	tl.paused = true
	return tl
}

// Restart moves the playhead to the start and plays forward. Captured start
// values are kept; call Invalidate first to re-capture them.
func (tl *Timeline) Restart() *Timeline {
	tl.reset()
	tl.paused = false
	return tl
}

// Rewind parks the timeline at its start without writing any property.
func (tl *Timeline) Rewind() *Timeline {
	tl.reset()
	tl.paused = true
	return tl
}

// Invalidate forgets captured start values so the next run reads them again
// from the live properties.
func (tl *Timeline) Invalidate() *Timeline {
	for _, it := range tl.items {
		it.captured = it.explicitFrom
		it.state = stateIdle
	}
	return tl
}

// Seek moves the playhead to t and renders that frame without firing calls or
// lifecycle callbacks.
func (tl *Timeline) Seek(t float64) *Timeline {
	if t < 0 {
		t = 0
	}
	if total := tl.TotalDuration(); t > total {
		t = total
	}
	prev := tl.total
	tl.total = t
	tl.render(prev, t, false)
	tl.completed = t >= tl.TotalDuration()
	return tl
}

// Kill detaches the timeline from its scheduler.
func (tl *Timeline) Kill() {
	tl.killed = true
	tl.paused = true
}

// reclaim makes every started tween the owner of its property again. Idle
// tweens claim on their first render.
func (tl *Timeline) reclaim() {
	for _, it := range tl.items {
		if it.state != stateIdle {
			tl.sched.claim(it)
		}
	}
}

func (tl *Timeline) reset() {
	tl.total = 0
	tl.started = false
	tl.completed = false
	tl.reversed = false
	for _, it := range tl.items {
		it.state = stateIdle
	}
}

func (tl *Timeline) advance(dt float64) {
	if tl.paused || tl.killed || dt <= 0 {
		return
	}
	prev := tl.total

	if tl.reversed {
		if prev <= 0 {
			return
		}
		next := prev - dt
		if next < 0 {
			next = 0
		}
		tl.total = next
		tl.render(prev, next, true)
		fire(tl.OnUpdate)
		if next == 0 {
			tl.started = false
			fire(tl.OnReverseComplete)
		}
		return
	}

	if tl.completed {
		return
	}
	if !tl.started {
		tl.started = true
		fire(tl.OnStart)
		// OnStart may have paused or redirected this timeline.
		if tl.paused || tl.reversed || tl.killed {
			return
		}
	}
	next := prev + dt
	total := tl.TotalDuration()
	if next >= total {
		next = total
	}
	tl.total = next
	tl.render(prev, next, true)
	fire(tl.OnUpdate)
	if next >= total {
		tl.completed = true
		fire(tl.OnComplete)
	}
}

// localTime maps a total playhead to an iteration and a position inside it.
func (tl *Timeline) localTime(total float64) (int, float64) {
	cycle := tl.duration + tl.repeatDelay
	if cycle <= 0 {
		return 0, 0
	}
	if tl.repeat >= 0 && total >= tl.TotalDuration() {
		return tl.repeat, tl.iterationEnd(tl.repeat)
	}
	iter := int(total / cycle)
	local := total - float64(iter)*cycle
	if local > tl.duration {
		local = tl.duration
	}
	if tl.yoyo && iter%2 == 1 {
		local = tl.duration - local
	}
	return iter, local
}

func (tl *Timeline) iterationStart(iter int) float64 {
	if tl.yoyo && iter%2 == 1 {
		return tl.duration
	}
	return 0
}

func (tl *Timeline) iterationEnd(iter int) float64 {
	if tl.yoyo && iter%2 == 1 {
		return 0
	}
	return tl.duration
}

func (tl *Timeline) render(prevTotal, total float64, fireCalls bool) {
	prevIter, prevLocal := tl.localTime(prevTotal)
	iter, local := tl.localTime(total)

	if iter != prevIter {
		if total > prevTotal {
			tl.renderLocal(prevLocal, tl.iterationEnd(prevIter), fireCalls)
			if !tl.yoyo {
				for _, it := range tl.items {
					it.state = stateIdle
				}
			}
			if fireCalls {
				fire(tl.OnRepeat)
			}
			prevLocal = tl.iterationStart(iter)
		} else {
			if !tl.yoyo {
				for _, it := range tl.items {
					it.state = stateIdle
				}
			}
			prevLocal = tl.iterationEnd(iter)
		}
	}
	tl.renderLocal(prevLocal, local, fireCalls)
}

func (tl *Timeline) renderLocal(from, to float64, fireCalls bool) {
	forward := to >= from
	for _, it := range tl.items {
		it.render(to, forward)
	}
	if !fireCalls || !forward {
		return
	}
	for _, c := range tl.calls {
		if c.at >= from && (c.at < to || (c.at == to && to == tl.duration)) {
			c.fn()
		}
	}
}

func (it *item) render(local float64, forward bool) {
	s := it.tl.sched
	if local < it.start {
		if it.state != stateIdle {
			if !forward && s.owns(it) {
				it.prop.set(it.from)
				if it.onUpdate != nil {
					it.onUpdate()
				}
			}
			it.state = stateIdle
		}
		return
	}

	if it.state == stateIdle {
		s.claim(it)
		if !it.captured {
			it.from = it.prop.get()
			it.captured = true
		}
	}

	p := 1.0
	if it.dur > 0 {
		p = (local - it.start) / it.dur
		if p > 1 {
			p = 1
		}
	}
	if it.state == stateDone && p >= 1 {
		return
	}
	if p >= 1 {
		it.state = stateDone
	} else {
		it.state = stateRunning
	}

	if !s.owns(it) {
		return
	}
	v := it.from + (it.to-it.from)*float32(it.ease(p))
	it.prop.set(v)
	if it.onUpdate != nil {
		it.onUpdate()
	}
}

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}
