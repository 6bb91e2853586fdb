// Package timeline drives scalar values through queued eased moves,
// decelerating flicks and callbacks, advanced by an external clock.
package timeline

import (
	"math"
	"time"
)

// Value is an animatable scalar. Every write goes through the setter, so a
// Value can proxy a property that has side effects.
type Value struct {
	value  float64
	setter func(float64)
}

// NewValue returns a Value that reports writes to setter. setter may be nil.
func NewValue(setter func(float64)) *Value {
	return &Value{setter: setter}
}

// Value returns the current value.
func (v *Value) Value() float64 {
	return v.value
}

// SetValue writes x and calls the setter.
func (v *Value) SetValue(x float64) {
	v.value = x
	if v.setter != nil {
		v.setter(x)
	}
}

type opKind int

const (
	opMove opKind = iota
	opSet
	opAccel
	opCallback
)

type op struct {
	kind     opKind
	target   float64
	easing   Easing
	duration time.Duration
	velocity float64
	accel    float64
	fn       func()

	started bool
	from    float64
}

// valueAt returns the value elapsed into the op.
func (o *op) valueAt(elapsed time.Duration) float64 {
	switch o.kind {
	case opMove:
		p := float64(elapsed) / float64(o.duration)
		return o.from + (o.target-o.from)*o.easing(p)
	case opAccel:
		s := elapsed.Seconds()
		return o.from + o.velocity*s + o.accel*s*s/2
	}
	return o.target
}

type track struct {
	value   *Value
	ops     []*op
	elapsed time.Duration
}

// Timeline schedules operations per Value. Operations on the same Value run
// one after another; different Values run in parallel. Nothing moves until
// the timeline is advanced with Advance or Tick.
type Timeline struct {
	tracks []*track

	elapsed    time.Duration
	last       time.Time
	anchored   bool
	advancing  bool
	planning   bool
	generation uint64

	updated   func()
	completed func()
}

// New returns an idle timeline.
func New() *Timeline {
	return &Timeline{}
}

// SetUpdatedFunc sets a handler which is called after every advance that
// changed at least one value.
func (t *Timeline) SetUpdatedFunc(handler func()) *Timeline {
	t.updated = handler
	return t
}

// SetCompletedFunc sets a handler which is called when the last queued
// operation finishes.
func (t *Timeline) SetCompletedFunc(handler func()) *Timeline {
	t.completed = handler
	return t
}

// IsActive reports whether any operation is queued.
func (t *Timeline) IsActive() bool {
	return len(t.tracks) > 0
}

// Time returns how long the timeline has been running since it last became
// active.
func (t *Timeline) Time() time.Duration {
	return t.elapsed
}

// Move queues an eased move of v to target. A move with no duration on an
// idle Value is applied immediately, like Set.
func (t *Timeline) Move(v *Value, target float64, easing Easing, duration time.Duration) {
	if duration <= 0 {
		t.Set(v, target)
		return
	}
	if easing == nil {
		easing = Linear
	}
	t.add(v, &op{kind: opMove, target: target, easing: easing, duration: duration})
}

// Set queues an instant write of target to v. When v has nothing queued the
// write happens immediately.
func (t *Timeline) Set(v *Value, target float64) {
	if t.find(v) != nil {
		t.add(v, &op{kind: opSet, target: target})
		return
	}

	v.SetValue(target)
	if t.advancing || t.planning {
		return
	}
	t.notify()
}

// notify runs the handlers after a write made outside of an advance.
func (t *Timeline) notify() {
	if t.updated != nil {
		t.updated()
	}
	if !t.IsActive() && t.completed != nil {
		t.completed()
	}
}

// Segment is one leg of a planned motion: either an eased move to Target
// over Duration, or, with Jump set, an instant write of Target.
type Segment struct {
	Target   float64
	Easing   Easing
	Duration time.Duration
	Jump     bool
}

// Plan queues segments on v in order. Leading segments that apply at once
// notify the handlers only after the whole plan is queued, so the completed
// handler never sees a half-queued plan.
func (t *Timeline) Plan(v *Value, segments ...Segment) {
	nested := t.planning
	t.planning = true
	wrote := false
	for _, s := range segments {
		if t.find(v) == nil && (s.Jump || s.Duration <= 0) {
			wrote = true
		}
		if s.Jump {
			t.Set(v, s.Target)
			continue
		}
		t.Move(v, s.Target, s.Easing, s.Duration)
	}
	t.planning = nested
	if wrote && !nested && !t.advancing {
		t.notify()
	}
}

// Accel queues a decelerating move of v that starts at velocity (units per
// second) and slows down by accel (units per second squared) until it stops.
// The deceleration is raised when needed so the move covers at most
// maxDistance. It returns the duration of the move, and false when the move
// is degenerate and nothing was queued.
func (t *Timeline) Accel(v *Value, velocity, accel, maxDistance float64) (time.Duration, bool) {
	const epsilon = 1e-12
	maxDistance = math.Abs(maxDistance)
	accel = math.Abs(accel)
	if maxDistance < epsilon || accel < epsilon || math.Abs(velocity) < epsilon {
		return 0, false
	}

	if limit := velocity * velocity / (2 * maxDistance); limit > accel {
		accel = limit
	}
	seconds := math.Abs(velocity) / accel
	if velocity > 0 {
		accel = -accel
	}

	duration := time.Duration(seconds * float64(time.Second))
	t.add(v, &op{kind: opAccel, velocity: velocity, accel: accel, duration: duration})
	return duration, true
}

// Callback queues fn to run once everything queued on v so far has finished.
func (t *Timeline) Callback(v *Value, fn func()) {
	t.add(v, &op{kind: opCallback, fn: fn})
}

// Reset drops everything queued on v. The value keeps whatever it was last
// set to.
func (t *Timeline) Reset(v *Value) {
	kept := make([]*track, 0, len(t.tracks))
	for _, tr := range t.tracks {
		if tr.value != v {
			kept = append(kept, tr)
		}
	}
	t.tracks = kept
	if !t.IsActive() {
		t.elapsed = 0
		t.anchored = false
	}
}

// Clear drops everything queued on every Value. Callbacks that are due in
// the advance currently running are skipped as well.
func (t *Timeline) Clear() {
	t.tracks = nil
	t.elapsed = 0
	t.anchored = false
	t.generation++
}

// Tick advances the timeline to now. The first tick after the timeline
// becomes active only records the time.
func (t *Timeline) Tick(now time.Time) {
	if !t.IsActive() {
		t.anchored = false
		return
	}
	if !t.anchored {
		t.last = now
		t.anchored = true
		return
	}

	dt := now.Sub(t.last)
	t.last = now
	if dt > 0 {
		t.Advance(dt)
	}
}

// Advance moves every queued operation forward by dt.
func (t *Timeline) Advance(dt time.Duration) {
	if !t.IsActive() {
		return
	}

	t.advancing = true
	t.elapsed += dt
	generation := t.generation

	var callbacks []func()
	tracks := t.tracks
	for _, tr := range tracks {
		remaining := dt
		for len(tr.ops) > 0 {
			o := tr.ops[0]
			if o.kind == opCallback {
				callbacks = append(callbacks, o.fn)
				tr.ops = tr.ops[1:]
				continue
			}
			if o.kind == opSet {
				tr.value.SetValue(o.target)
				tr.ops = tr.ops[1:]
				continue
			}

			if !o.started {
				o.started = true
				o.from = tr.value.Value()
				if o.kind == opAccel {
					dist := o.velocity * o.velocity / (2 * math.Abs(o.accel))
					o.target = o.from + math.Copysign(dist, o.velocity)
				}
			}

			need := o.duration - tr.elapsed
			if remaining < need {
				tr.elapsed += remaining
				tr.value.SetValue(o.valueAt(tr.elapsed))
				break
			}

			remaining -= need
			tr.elapsed = 0
			tr.value.SetValue(o.target)
			tr.ops = tr.ops[1:]
		}
	}

	// Setters may have reset or cleared tracks while we were iterating.
	if t.generation == generation {
		live := t.tracks[:0]
		for _, tr := range t.tracks {
			if len(tr.ops) > 0 {
				live = append(live, tr)
			}
		}
		t.tracks = live
	}

	for _, fn := range callbacks {
		if t.generation != generation {
			break
		}
		fn()
	}
	t.advancing = false

	if t.updated != nil {
		t.updated()
	}
	if !t.IsActive() {
		t.elapsed = 0
		t.anchored = false
		if t.completed != nil {
			t.completed()
		}
	}
}

func (t *Timeline) find(v *Value) *track {
	for _, tr := range t.tracks {
		if tr.value == v {
			return tr
		}
	}
	return nil
}

func (t *Timeline) add(v *Value, o *op) {
	if !t.IsActive() {
		t.elapsed = 0
		t.anchored = false
	}
	tr := t.find(v)
	if tr == nil {
		tr = &track{value: v}
		t.tracks = append(t.tracks, tr)
	}
	tr.ops = append(tr.ops, o)
}
