package pathview

import (
	"math"
	"time"

	"github.com/ayn2op/pathview/curve"
	"github.com/gdamore/tcell/v3"
)

const (
	flickSampleBuffer   = 3
	flickDiscardSamples = 1
)

// gesture tracks one press-drag-release sequence.
type gesture struct {
	// tracking is set between an accepted press and its release.
	tracking bool
	// steal is set once the view has claimed the gesture from its items.
	steal bool

	startPoint curve.Point
	startPos   curve.Point
	startPc    float64
	lastTime   time.Time
	velocity   []float64

	flickDuration time.Duration

	// child is the item under the press while it still receives the
	// gesture.
	child Primitive
}

func (p *PathView) addVelocitySample(v float64) {
	p.gesture.velocity = append(p.gesture.velocity, v)
	if len(p.gesture.velocity) > flickSampleBuffer {
		p.gesture.velocity = p.gesture.velocity[1:]
	}
}

// calcVelocity averages the samples, leaving out the most recent ones.
func (p *PathView) calcVelocity() float64 {
	samples := p.gesture.velocity
	if len(samples) <= flickDiscardSamples {
		return 0
	}
	count := len(samples) - flickDiscardSamples
	velocity := 0.0
	for _, v := range samples[:count] {
		velocity += v
	}
	return velocity / float64(count)
}

// handlePress starts tracking a gesture at pos, in path coordinates. onItem
// says whether the press hit an item.
func (p *PathView) handlePress(pos curve.Point, onItem bool, when time.Time) {
	g := &p.gesture
	if !p.interactive || len(p.items) == 0 || p.model == nil || p.modelCount == 0 || p.path == nil {
		return
	}
	g.velocity = g.velocity[:0]
	if !onItem && p.dragMargin == 0 {
		return
	}

	g.startPoint, g.startPc = curve.PointNear(p.path, pos)
	g.startPos = pos
	if !onItem {
		distance := math.Abs(pos.X-g.startPoint.X) + math.Abs(pos.Y-g.startPoint.Y)
		if distance > p.dragMargin {
			return
		}
	}

	// A press during the early part of a flick catches the view.
	g.steal = p.tl.IsActive() && p.flicking && g.flickDuration > 0 &&
		float64(p.tl.Time())/float64(g.flickDuration) < 0.8
	g.tracking = true
	g.lastTime = when
	p.tl.Clear()
}

// handleMove follows the pointer. Until the gesture is claimed it only
// checks whether the pointer went far enough along the path.
func (p *PathView) handleMove(pos curve.Point, when time.Time) {
	g := &p.gesture
	if !p.interactive || !g.tracking || p.model == nil || p.modelCount == 0 {
		return
	}

	point, pc := curve.PointNear(p.path, pos)
	if !g.steal {
		delta := pos.Sub(g.startPos)
		if math.Abs(delta.X) > DragThreshold || math.Abs(delta.Y) > DragThreshold {
			along := point.Sub(g.startPoint)
			if math.Abs(along.X) > DragThreshold*0.8 || math.Abs(along.Y) > DragThreshold*0.8 {
				g.steal = true
			}
		}
	} else {
		p.moveReason = moveMouse
		diff := (pc - g.startPc) * float64(p.visibleCount())
		if diff != 0 {
			p.SetOffset(p.offset + diff)

			half := float64(p.modelCount / 2)
			if diff > half {
				diff -= float64(p.modelCount)
			} else if diff < -half {
				diff += float64(p.modelCount)
			}
			if elapsed := when.Sub(g.lastTime); elapsed > 0 {
				p.addVelocitySample(diff / elapsed.Seconds())
			}
		}
		if !p.moving {
			p.moving = true
			p.emit(MovingChanged)
			p.emit(MovementStarted)
		}
		p.setDragging(true)
	}
	g.startPc = pc
	g.lastTime = when
}

// handleRelease ends the gesture with a flick when the pointer was moving
// fast enough and settles the view otherwise.
func (p *PathView) handleRelease(when time.Time) {
	g := &p.gesture
	g.steal = false
	p.setDragging(false)
	if !p.interactive || !g.tracking || p.model == nil || p.modelCount == 0 {
		g.tracking = false
		if !p.tl.IsActive() {
			p.movementEnding()
		}
		return
	}

	velocity := p.calcVelocity()
	itemLength := p.path.Length() / float64(p.visibleCount())
	speed := itemLength * velocity
	if math.Abs(speed) > MinimumFlickVelocity {
		if math.Abs(speed) > p.maxFlickVelocity || p.snapMode == SnapOneItem {
			limit := p.maxFlickVelocity
			if velocity < 0 {
				limit = -limit
			}
			velocity = limit / itemLength
		}

		v2 := velocity * velocity
		accel := p.deceleration / 10
		var dist float64
		if p.haveHighlightRange && (p.rangeMode == StrictlyEnforceRange || p.snapMode != NoSnap) {
			if p.snapMode == SnapOneItem {
				if velocity > 0 {
					dist = float64(round(0.5+p.offset)) - p.offset
				} else {
					dist = float64(round(0.5-p.offset)) + p.offset
				}
			} else {
				// The bias makes every flick travel at least one item.
				dist = math.Min(float64(p.modelCount-1), v2/(accel*2)+0.25)
				if velocity > 0 {
					dist = float64(round(dist+p.offset)) - p.offset
				} else {
					dist = float64(round(dist-p.offset)) + p.offset
				}
			}
			// Stop exactly on the item boundary.
			if dist <= 0 {
				dist, accel = 0, 0
			} else {
				accel = v2 / (2 * math.Abs(dist))
			}
		} else {
			dist = math.Min(float64(p.modelCount-1), v2/(accel*2))
		}

		g.flickDuration = 0
		if accel > 0 {
			g.flickDuration = time.Duration(math.Abs(velocity) / accel * float64(time.Second))
		}
		p.offsetAdj = 0
		p.moveOffset.SetValue(p.offset)
		p.tl.Accel(p.moveOffset, velocity, accel, dist)
		p.tl.Callback(p.moveOffset, p.fixOffset)
		if !p.flicking {
			p.flicking = true
			p.emit(FlickingChanged)
			p.emit(FlickStarted)
		}
	} else {
		p.fixOffset()
	}

	g.tracking = false
	if !p.tl.IsActive() {
		p.movementEnding()
	}
}

// MouseUngrab implements MouseUngrabber. When the view had claimed the
// gesture it settles as if the pointer had been released without speed.
func (p *PathView) MouseUngrab() {
	g := &p.gesture
	g.child = nil
	if !g.steal {
		g.tracking = false
		return
	}
	g.steal = false
	g.tracking = false
	p.fixOffset()
	p.setDragging(false)
	if !p.tl.IsActive() {
		p.movementEnding()
	}
}

// local converts screen coordinates to path coordinates.
func (p *PathView) local(x, y int) curve.Point {
	ix, iy, _, _ := p.GetInnerRect()
	return curve.Point{X: float64(x - ix), Y: float64(y - iy)}
}

func eventTime(event *tcell.EventMouse) time.Time {
	if when := event.When(); !when.IsZero() {
		return when
	}
	return time.Now()
}

// keepsGrab reports whether item refuses to give up the gesture.
func keepsGrab(item Primitive) bool {
	k, ok := item.(MouseGrabKeeper)
	return ok && k.KeepsMouseGrab()
}

// MouseHandler handles presses, drags and the wheel. A press captures the
// mouse for the whole gesture; the item under the press receives the events
// too until the view claims the gesture for itself.
func (p *PathView) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	g := &p.gesture
	captured := g.tracking || g.child != nil
	if !captured && !p.InRect(x, y) {
		return nil, nil
	}
	when := eventTime(event)

	switch action {
	case MouseLeftDown:
		child := p.ItemAt(x, y)
		g.child = child
		p.handlePress(p.local(x, y), child != nil, when)
		var cmd Command
		if child != nil && !g.steal {
			_, cmd = child.MouseHandler(action, event)
		}
		// Keys keep going to the view.
		cmd = AppendCommand(cmd, SetFocusCommand{Target: p})
		return p, p.animate(cmd)

	case MouseMove:
		if !captured {
			return nil, nil
		}
		var cmd Command
		if g.child != nil && keepsGrab(g.child) {
			g.steal = false
			_, cmd = g.child.MouseHandler(action, event)
			return p, cmd
		}
		claimed := g.steal
		p.handleMove(p.local(x, y), when)
		if g.child != nil {
			if !claimed && g.steal {
				if u, ok := g.child.(MouseUngrabber); ok {
					u.MouseUngrab()
				}
				g.child = nil
			} else if !g.steal {
				_, cmd = g.child.MouseHandler(action, event)
			}
		}
		return p, AppendCommand(cmd, RedrawCommand{})

	case MouseLeftUp:
		var cmd Command
		child := g.child
		g.child = nil
		if child != nil {
			_, cmd = child.MouseHandler(action, event)
			if keepsGrab(child) {
				g.tracking, g.steal = false, false
				p.fixOffset()
				return nil, p.animate(AppendCommand(cmd, RedrawCommand{}))
			}
		}
		p.handleRelease(when)
		return nil, p.animate(AppendCommand(cmd, RedrawCommand{}))

	case MouseLeftClick:
		child := p.ItemAt(x, y)
		if child == nil {
			return nil, nil
		}
		_, cmd := child.MouseHandler(action, event)
		if cmd == nil && !p.moving {
			if index := p.model.IndexOf(child); index >= 0 {
				p.SetCurrentIndex(index)
				cmd = RedrawCommand{}
			}
		}
		return nil, p.animate(cmd)

	case MouseScrollUp, MouseScrollLeft:
		if !p.interactive || p.modelCount == 0 {
			return nil, nil
		}
		p.DecrementCurrentIndex()
		return nil, p.animate(RedrawCommand{})

	case MouseScrollDown, MouseScrollRight:
		if !p.interactive || p.modelCount == 0 {
			return nil, nil
		}
		p.IncrementCurrentIndex()
		return nil, p.animate(RedrawCommand{})
	}

	if captured {
		return p, nil
	}
	return nil, nil
}

// animate adds a request for frames to cmd while motion is running.
func (p *PathView) animate(cmd Command) Command {
	if !p.tl.IsActive() {
		return cmd
	}
	return AppendCommand(cmd, AnimateCommand{Target: p})
}
