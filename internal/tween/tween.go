// Package tween provides a small timeline-based animation engine.
//
// A Scheduler owns timelines and advances them by wall-clock deltas. A Timeline
// groups property tweens positioned by absolute offsets or named labels, so
// several properties can be guaranteed to start on the same frame.
package tween

import "github.com/fogleman/ease"

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

// Common easing curves.
var (
	Linear     EaseFunc = ease.Linear
	InQuad     EaseFunc = ease.InQuad
	OutQuad    EaseFunc = ease.OutQuad
	InOutQuad  EaseFunc = ease.InOutQuad
	InOutSine  EaseFunc = ease.InOutSine
	InOutCubic EaseFunc = ease.InOutCubic
)

// DefaultEase is used when a tween does not set one.
var DefaultEase = OutQuad

// Prop binds a float32 value that tweens read and write.
// The key identifies the value across timelines; the latest tween to start on
// a key owns it until another tween on the same key starts.
type Prop struct {
	key any
	get func() float32
	set func(float32)
}

// Float binds a plain float32 variable.
func Float(p *float32) Prop {
	return Prop{
		key: p,
		get: func() float32 { return *p },
		set: func(v float32) { *p = v },
	}
}

// Func binds a value through accessor functions. key must be comparable and
// unique per animated value.
func Func(key any, get func() float32, set func(float32)) Prop {
	return Prop{key: key, get: get, set: set}
}

// Vec3 binds the three components of a vector.
func Vec3(v *[3]float32) [3]Prop {
	return [3]Prop{Float(&v[0]), Float(&v[1]), Float(&v[2])}
}

// Key returns the identity of the bound value.
func (p Prop) Key() any { return p.key }

// Get reads the current value.
func (p Prop) Get() float32 { return p.get() }

// Option configures a tween, call or label placement.
type Option func(*placement)

type placement struct {
	offset    float64
	hasOffset bool
	label     string
	delay     float64
	ease      EaseFunc
	onUpdate  func()
}

// At places the item at an absolute offset in seconds.
func At(offset float64) Option {
	return func(p *placement) {
		p.offset = offset
		p.hasOffset = true
	}
}

// AtLabel places the item at a named label. Unknown labels are created at the
// current end of the timeline.
func AtLabel(name string) Option {
	return func(p *placement) { p.label = name }
}

// Delay shifts the item later by d seconds relative to its position.
func Delay(d float64) Option {
	return func(p *placement) { p.delay = d }
}

// Ease sets the easing curve of a tween.
func Ease(f EaseFunc) Option {
	return func(p *placement) { p.ease = f }
}

// OnUpdate is called after the tween writes a new value.
func OnUpdate(fn func()) Option {
	return func(p *placement) { p.onUpdate = fn }
}

func applyOptions(opts []Option) placement {
	var p placement
	for _, o := range opts {
		o(&p)
	}
	return p
}
