package tween

// Scheduler advances timelines and arbitrates which tween currently owns each
// animated property.
type Scheduler struct {
	timelines []*Timeline
	owners    map[any]*item
	time      float64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		owners: make(map[any]*item),
	}
}

// NewTimeline creates a paused timeline attached to the scheduler.
func (s *Scheduler) NewTimeline(name string) *Timeline {
	tl := &Timeline{
		name:   name,
		sched:  s,
		labels: make(map[string]float64),
		paused: true,
	}
	s.timelines = append(s.timelines, tl)
	return tl
}

// Once creates a playing timeline that is dropped after it completes.
func (s *Scheduler) Once(name string) *Timeline {
	tl := s.NewTimeline(name)
	tl.once = true
	tl.paused = false
	return tl
}

// Advance moves every attached timeline forward by dt seconds.
func (s *Scheduler) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	s.time += dt

	// Callbacks may attach new timelines; those start moving next frame.
	active := make([]*Timeline, len(s.timelines))
	copy(active, s.timelines)
	for _, tl := range active {
		tl.advance(dt)
	}

	kept := s.timelines[:0]
	for _, tl := range s.timelines {
		if tl.killed || (tl.once && tl.completed) {
			s.release(tl)
			continue
		}
		kept = append(kept, tl)
	}
	for i := len(kept); i < len(s.timelines); i++ {
		s.timelines[i] = nil
	}
	s.timelines = kept
}

// Time returns the accumulated scheduler time.
func (s *Scheduler) Time() float64 { return s.time }

// Len returns the number of attached timelines.
func (s *Scheduler) Len() int { return len(s.timelines) }

// Timelines returns the attached timelines in insertion order.
func (s *Scheduler) Timelines() []*Timeline {
	out := make([]*Timeline, len(s.timelines))
	copy(out, s.timelines)
	return out
}

// Owner returns the name of the timeline whose tween currently drives the
// property, or "" when nothing does.
func (s *Scheduler) Owner(p Prop) string {
	if it, ok := s.owners[p.key]; ok {
		return it.tl.name
	}
	return ""
}

func (s *Scheduler) claim(it *item) {
	s.owners[it.prop.key] = it
}

func (s *Scheduler) owns(it *item) bool {
	return s.owners[it.prop.key] == it
}

func (s *Scheduler) release(tl *Timeline) {
	for key, it := range s.owners {
		if it.tl == tl {
			delete(s.owners, key)
		}
	}
}
