package showcase

import (
	"fmt"

	"github.com/Faultbox/scrollscene/internal/tween"
)

// Section identifies a scroll page region with its own scene target.
type Section string

// Lifecycle tracks whether a section's timeline can be played.
type Lifecycle uint8

const (
	// Unavailable sections wait for an asset before their timeline exists.
	Unavailable Lifecycle = iota
	// Ready sections have a prebuilt timeline.
	Ready
	// Failed sections depend on an asset that could not be loaded.
	Failed
)

func (l Lifecycle) String() string {
	switch l {
	case Unavailable:
		return "unavailable"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("lifecycle(%d)", uint8(l))
	}
}

// SectionTimelines is everything a section animates.
type SectionTimelines struct {
	// Main moves camera, fog and materials.
	Main *tween.Timeline
	// Helpers moves the planes; it is reversed rather than replayed when the
	// page scrolls back past the section.
	Helpers *tween.Timeline
	// Repeating are the section's continuous effects.
	Repeating []*tween.Timeline
}

type entry struct {
	id        Section
	order     int
	lifecycle Lifecycle
	cause     error
	tls       SectionTimelines
}

// Registry maps sections to their prebuilt timelines. Cross-section
// invalidation goes through its methods only.
type Registry struct {
	entries map[Section]*entry
	order   []Section
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Section]*entry)}
}

// Register declares a section. It starts Unavailable.
func (r *Registry) Register(id Section) error {
	if _, ok := r.entries[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, id)
	}
	r.entries[id] = &entry{id: id, order: len(r.order)}
	r.order = append(r.order, id)
	return nil
}

// MarkReady attaches the section's timelines. A section is built once; later
// calls for a ready section are rejected.
func (r *Registry) MarkReady(id Section, tls SectionTimelines) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	if e.lifecycle == Ready {
		return fmt.Errorf("section %s: timeline already built", id)
	}
	if tls.Main == nil {
		return fmt.Errorf("section %s: missing main timeline", id)
	}
	e.tls = tls
	e.lifecycle = Ready
	e.cause = nil
	return nil
}

// MarkFailed records that the section's asset could not be loaded.
func (r *Registry) MarkFailed(id Section, cause error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	if e.lifecycle == Ready {
		return nil
	}
	e.lifecycle = Failed
	e.cause = cause
	return nil
}

// State returns the lifecycle of a section.
func (r *Registry) State(id Section) (Lifecycle, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Unavailable, err
	}
	return e.lifecycle, nil
}

// Cause returns the asset error of a failed section.
func (r *Registry) Cause(id Section) error {
	if e, ok := r.entries[id]; ok {
		return e.cause
	}
	return nil
}

// Sections returns the registered sections in registration order.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.order))
	copy(out, r.order)
	return out
}

// Order returns the registration index of a section, or -1.
func (r *Registry) Order(id Section) int {
	if e, ok := r.entries[id]; ok {
		return e.order
	}
	return -1
}

// Neighbours returns the sections directly before and after id.
func (r *Registry) Neighbours(id Section) ([]Section, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	var out []Section
	if e.order > 0 {
		out = append(out, r.order[e.order-1])
	}
	if e.order+1 < len(r.order) {
		out = append(out, r.order[e.order+1])
	}
	return out, nil
}

// Timeline returns the main timeline of a ready section.
func (r *Registry) Timeline(id Section) (*tween.Timeline, error) {
	e, err := r.ready(id)
	if err != nil {
		return nil, err
	}
	return e.tls.Main, nil
}

// Helpers returns the helper timeline of a section, which may be nil.
func (r *Registry) Helpers(id Section) *tween.Timeline {
	if e, ok := r.entries[id]; ok {
		return e.tls.Helpers
	}
	return nil
}

// Repeating returns the continuous effects of a section.
func (r *Registry) Repeating(id Section) []*tween.Timeline {
	if e, ok := r.entries[id]; ok {
		return e.tls.Repeating
	}
	return nil
}

// Play replays the main timeline from the start, re-reading start values
// from the live scene.
func (r *Registry) Play(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	e.tls.Main.Invalidate().Restart()
	return nil
}

// Pause stops the main timeline where it is.
func (r *Registry) Pause(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	e.tls.Main.Pause()
	return nil
}

// Reverse plays the main timeline backwards from its current position.
func (r *Registry) Reverse(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	if e.tls.Main.Time() > 0 {
		e.tls.Main.Reverse()
	}
	return nil
}

// Park rewinds the main timeline to its start and pauses it without writing
// any property.
func (r *Registry) Park(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	e.tls.Main.Rewind()
	return nil
}

// SeekToStart resets the section's repeating effects to their first frame
// and pauses them.
func (r *Registry) SeekToStart(id Section) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	for _, tl := range e.tls.Repeating {
		tl.Seek(0).Pause()
	}
	return nil
}

// StartRepeating plays the section's repeating effects from the start.
func (r *Registry) StartRepeating(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	for _, tl := range e.tls.Repeating {
		tl.Restart()
	}
	return nil
}

// PlayHelpers moves the helper timeline forward from where it is.
func (r *Registry) PlayHelpers(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	if e.tls.Helpers != nil {
		e.tls.Helpers.Play()
	}
	return nil
}

// ReverseHelpers moves the helper timeline back toward its start. A helper
// timeline that has not moved yet is paused instead.
func (r *Registry) ReverseHelpers(id Section) error {
	e, err := r.ready(id)
	if err != nil {
		return err
	}
	h := e.tls.Helpers
	if h == nil {
		return nil
	}
	if h.Time() > 0 {
		h.Reverse()
	} else {
		h.Pause()
	}
	return nil
}

func (r *Registry) lookup(id Section) (*entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	return e, nil
}

func (r *Registry) ready(id Section) (*entry, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	switch e.lifecycle {
	case Ready:
		return e, nil
	case Failed:
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetUnavailable, id, e.cause)
	default:
		return nil, fmt.Errorf("%w: %s", ErrSectionNotReady, id)
	}
}
