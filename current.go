package pathview

import (
	"math"

	"github.com/ayn2op/pathview/timeline"
)

// GetCurrentIndex returns the current index, or -1 when the model is empty.
func (p *PathView) GetCurrentIndex() int {
	return p.currentIndex
}

// GetCurrentItem returns the item of the current index. It is nil while the
// item is being created.
func (p *PathView) GetCurrentItem() Primitive {
	return p.currentItem
}

// SetCurrentIndex makes index current, wrapping it into the model. In
// StrictlyEnforceRange mode the view turns until the item sits at the start
// of the highlight range. An index set before a model is attached is applied
// when the model arrives.
func (p *PathView) SetCurrentIndex(index int) *PathView {
	if p.model == nil {
		if index != p.currentIndex {
			p.currentIndex = index
			p.emit(CurrentIndexChanged)
		}
		return p
	}
	if p.modelCount == 0 {
		return p
	}

	index = remainder(index, p.modelCount)
	if index == p.currentIndex && p.currentItem != nil {
		return p
	}

	oldIndex, oldItem := p.currentIndex, p.currentItem
	if p.currentItem != nil {
		if a := p.attached[p.currentItem]; a != nil {
			a.setIsCurrentItem(false)
		}
		p.releaseItem(p.currentItem)
	}
	p.currentItem = nil
	p.moveReason = moveSetIndex
	p.currentIndex = index
	p.createCurrentItem()
	if p.strict() {
		p.snapToIndex(index, moveSetIndex)
	}
	p.currentItemOffset = p.positionOfIndex(float64(index))
	p.updateHighlight()

	if oldIndex != p.currentIndex {
		p.emit(CurrentIndexChanged)
	}
	if oldItem != p.currentItem {
		p.emit(CurrentItemChanged)
	}
	return p
}

// IncrementCurrentIndex moves to the next index, turning the view forward.
func (p *PathView) IncrementCurrentIndex() *PathView {
	p.moveDirection = Positive
	return p.SetCurrentIndex(p.currentIndex + 1)
}

// DecrementCurrentIndex moves to the previous index, turning the view
// backward.
func (p *PathView) DecrementCurrentIndex() *PathView {
	p.moveDirection = Negative
	return p.SetCurrentIndex(p.currentIndex - 1)
}

// GetOffset returns how far the items have turned from their home positions,
// in items.
func (p *PathView) GetOffset() float64 {
	return p.offset
}

// SetOffset turns the view to offset. The value is wrapped into the model.
func (p *PathView) SetOffset(offset float64) *PathView {
	p.moveReason = moveOther
	p.setOffset(offset)
	p.updateCurrent()
	return p
}

func (p *PathView) setOffset(offset float64) {
	if p.offset == offset {
		return
	}
	old := p.offset
	switch {
	case p.isValid():
		p.offset = mod(offset, float64(p.modelCount))
		p.refill()
	case p.modelCount > 0:
		p.offset = mod(offset, float64(p.modelCount))
	default:
		p.offset = 0
	}
	if p.offset != old {
		p.emit(OffsetChanged)
	}
}

// createCurrentItem acquires the item of the current index. The item is
// parked off the path when the index is not among the live items.
func (p *PathView) createCurrentItem() {
	if p.requestedIndex != -1 {
		return
	}

	visible := p.holds(p.currentIndex)
	if !visible && (p.currentIndex < 0 || p.currentIndex >= p.modelCount) {
		return
	}
	item, _ := p.getItem(p.currentIndex, p.currentIndex, false)
	if item == nil {
		return
	}
	p.currentItem = item
	if !visible {
		p.updateItem(item, 1)
	}
	p.attached[item].setIsCurrentItem(true)
}

// updateCurrent derives the current index from the offset while the view is
// turned by anything but SetCurrentIndex.
func (p *PathView) updateCurrent() {
	if p.moveReason == moveSetIndex {
		return
	}
	if p.modelCount == 0 || !p.strict() || p.model == nil {
		return
	}

	index := p.calcCurrentIndex()
	if index == p.currentIndex && p.currentItem != nil {
		return
	}
	if p.currentItem != nil {
		if a := p.attached[p.currentItem]; a != nil {
			a.setIsCurrentItem(false)
		}
		p.releaseItem(p.currentItem)
	}
	old := p.currentIndex
	p.currentIndex = index
	p.currentItem = nil
	p.createCurrentItem()
	if old != p.currentIndex {
		p.emit(CurrentIndexChanged)
	}
	p.emit(CurrentItemChanged)
}

// fixOffset settles the view on the nearest item boundary.
func (p *PathView) fixOffset() {
	if p.model == nil || len(p.items) == 0 || !p.haveHighlightRange {
		return
	}
	if p.rangeMode != StrictlyEnforceRange && p.snapMode == NoSnap {
		return
	}
	current := p.calcCurrentIndex()
	if current != p.currentIndex && p.rangeMode == StrictlyEnforceRange {
		p.SetCurrentIndex(current)
	} else {
		p.snapToIndex(current, moveOther)
	}
}

func scaled(d float64, f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return d * f
}

// snapToIndex turns the view until index sits at the highlight range
// origin, following the movement direction and wrapping through the end of
// the model when that is the way to go.
func (p *PathView) snapToIndex(index int, reason moveReason) {
	if p.model == nil || p.modelCount <= 0 {
		return
	}

	count := float64(p.modelCount)
	target := mod(count-float64(index), count)
	if p.offset == target {
		return
	}

	p.moveReason = reason
	p.offsetAdj = 0
	p.tl.Reset(p.moveOffset)
	p.moveOffset.SetValue(p.offset)

	duration := p.highlightMoveDuration
	d := float64(duration)
	offset := p.offset
	switch {
	case duration <= 0:
		p.tl.Set(p.moveOffset, target)
	case p.moveDirection == Positive || (p.moveDirection == Shortest && target-offset > count/2):
		distance := count - target + offset
		if target > p.moveOffset.Value() {
			last := timeline.OutQuad
			if offset == 0 {
				last = timeline.InOutQuad
			}
			p.tl.Plan(p.moveOffset,
				timeline.Segment{Target: 0, Easing: timeline.InQuad, Duration: durationOf(scaled(d, offset/distance))},
				timeline.Segment{Target: count, Jump: true},
				timeline.Segment{Target: target, Easing: last, Duration: durationOf(scaled(d, (count-target)/distance))},
			)
		} else {
			p.tl.Move(p.moveOffset, target, timeline.InOutQuad, duration)
		}
	case p.moveDirection == Negative || target-offset <= -count/2:
		distance := count - offset + target
		if target < p.moveOffset.Value() {
			first := timeline.InQuad
			if target == 0 {
				first = timeline.InOutQuad
			}
			p.tl.Plan(p.moveOffset,
				timeline.Segment{Target: count, Easing: first, Duration: durationOf(scaled(d, (count-offset)/distance))},
				timeline.Segment{Target: 0, Jump: true},
				timeline.Segment{Target: target, Easing: timeline.OutQuad, Duration: durationOf(scaled(d, target/distance))},
			)
		} else {
			p.tl.Move(p.moveOffset, target, timeline.InOutQuad, duration)
		}
	default:
		p.tl.Move(p.moveOffset, target, timeline.InOutQuad, duration)
	}
}

// movementEnding runs when the timeline has nothing left to do.
func (p *PathView) movementEnding() {
	if p.flicking {
		p.flicking = false
		p.emit(FlickingChanged)
		p.emit(FlickEnded)
	}
	if p.moving && !p.gesture.steal {
		p.moving = false
		p.emit(MovingChanged)
		p.emit(MovementEnded)
	}
	p.moveDirection = p.movementDirection
}

// PositionViewAtIndex turns the view so that index is placed as mode says.
// Running motion is stopped.
func (p *PathView) PositionViewAtIndex(index int, mode PositionMode) *PathView {
	if !p.isValid() || mode < PositionBeginning || mode > PositionSnap {
		return p
	}
	if mode == PositionContain && (p.pathItems < 0 || p.modelCount <= p.pathItems) {
		return p
	}

	count := float64(p.visibleCount())
	total := float64(p.modelCount)
	idx := float64(remainder(index, p.modelCount))
	snap := p.snapping()

	var begin, end float64
	if snap {
		begin = total - idx - math.Floor(count*p.rangeStart)
		end = begin + count - 1
	} else {
		begin = total - idx
		// The last point coincides with the first one.
		end = mod(begin+count, total) - 1e-12
	}

	offset := p.offset
	switch mode {
	case PositionBeginning:
		offset = begin
	case PositionEnd:
		offset = end
	case PositionCenter:
		if begin < end {
			offset = (begin + end) / 2
		} else {
			offset = (begin + end + total) / 2
		}
		if snap {
			offset = float64(round(offset))
		}
	case PositionContain:
		if (begin < end && (p.offset < begin || p.offset > end)) || (p.offset < begin && p.offset > end) {
			before := mod(begin-p.offset+total, total)
			after := mod(p.offset-end+total, total)
			if before < after {
				offset = begin
			} else {
				offset = end
			}
		}
	case PositionSnap:
		offset = total - idx
	}

	p.tl.Clear()
	p.SetOffset(offset)
	if !p.tl.IsActive() {
		p.movementEnding()
	}
	return p
}

// ItemAt returns the on-path item covering the screen cell x, y, or nil.
func (p *PathView) ItemAt(x, y int) Primitive {
	if !p.isValid() {
		return nil
	}
	var hit Primitive
	z := math.MinInt
	for _, item := range p.items {
		a := p.attached[item]
		if a == nil || a.percent < 0 || a.percent >= 1 || a.z < z {
			continue
		}
		ix, iy, w, h := item.GetRect()
		if x >= ix && x < ix+w && y >= iy && y < iy+h {
			hit, z = item, a.z
		}
	}
	return hit
}

// IndexAt returns the model index of the item covering the screen cell x, y,
// or -1.
func (p *PathView) IndexAt(x, y int) int {
	item := p.ItemAt(x, y)
	if item == nil {
		return -1
	}
	return p.model.IndexOf(item)
}
