package pathview

import (
	"time"

	"github.com/ayn2op/pathview/timeline"
	"github.com/gdamore/tcell/v3"
)

// marker is the highlight used when none is set. It occupies a cell but
// draws nothing.
type marker struct {
	*Box
}

func (m *marker) Draw(screen tcell.Screen) {}

func durationOf(nanoseconds float64) time.Duration {
	return time.Duration(nanoseconds)
}

// SetHighlight sets a function which builds the highlight item. The view
// keeps a single instance and moves it along with the current item. A nil
// builder restores the invisible default.
func (p *PathView) SetHighlight(build func() Primitive) *PathView {
	p.highlight = build
	p.createHighlight()
	p.updateHighlight()
	p.emit(HighlightChanged)
	return p
}

// GetHighlightItem returns the highlight item.
func (p *PathView) GetHighlightItem() Primitive {
	return p.highlightItem
}

func (p *PathView) createHighlight() {
	changed := false
	if p.highlightItem != nil {
		p.detach(p.highlightItem)
		p.highlightItem = nil
		changed = true
	}

	var item Primitive
	if p.highlight != nil {
		item = p.highlight()
	} else {
		item = &marker{Box: NewBox()}
	}
	if item != nil {
		p.highlightItem = item
		p.attach(item)
		changed = true
	}
	if changed {
		p.emit(HighlightItemChanged)
	}
}

// updateHighlight sends the highlight towards the current index. Outside
// StrictlyEnforceRange the highlight travels the short way around the model.
func (p *PathView) updateHighlight() {
	if !p.isValid() || p.highlightItem == nil {
		return
	}
	if p.strict() {
		p.updateItem(p.highlightItem, p.rangeStart)
		return
	}

	target := float64(p.currentIndex)
	count := float64(p.modelCount)
	half := float64(p.modelCount / 2)
	p.offsetAdj = 0
	p.tl.Reset(p.moveHighlight)
	p.moveHighlight.SetValue(p.highlightPosition)

	duration := p.highlightMoveDuration
	d := float64(duration)
	from := p.highlightPosition
	switch {
	case target-from > half:
		p.highlightUp = false
		distance := count - target + from
		p.tl.Plan(p.moveHighlight,
			timeline.Segment{Target: 0, Easing: timeline.InQuad, Duration: durationOf(scaled(d, from/distance))},
			timeline.Segment{Target: count - 0.01, Jump: true},
			timeline.Segment{Target: target, Easing: timeline.OutQuad, Duration: durationOf(scaled(d, (count-target)/distance))},
		)
	case target-from <= -half:
		p.highlightUp = true
		distance := count - from + target
		p.tl.Plan(p.moveHighlight,
			timeline.Segment{Target: count - 0.01, Easing: timeline.InQuad, Duration: durationOf(scaled(d, (count-from)/distance))},
			timeline.Segment{Target: 0, Jump: true},
			timeline.Segment{Target: target, Easing: timeline.OutQuad, Duration: durationOf(scaled(d, target/distance))},
		)
	default:
		p.highlightUp = from-target < 0
		p.tl.Move(p.moveHighlight, target, timeline.InOutQuad, duration)
	}
}

// setHighlightPosition places the highlight at a fractional index and, with
// a highlight range, turns the view so the highlight stays inside it.
func (p *PathView) setHighlightPosition(pos float64) {
	if pos == p.highlightPosition {
		return
	}
	if p.modelCount == 0 || p.highlightItem == nil {
		p.highlightPosition = pos
		return
	}

	start, end := 0.0, 1.0
	if p.haveHighlightRange && p.rangeMode != NoHighlightRange {
		start, end = p.rangeStart, p.rangeEnd
	}
	count := float64(p.modelCount)
	relative := mod(pos+p.offset, count) / count
	if !p.highlightUp && relative > end/p.mappedRange {
		p.setOffset(p.offset + (1-relative)*count)
	} else if p.highlightUp && relative >= (end-start)/p.mappedRange {
		diff := relative - (end-start)/p.mappedRange
		p.setOffset(p.offset - diff*count - 0.00001)
	}

	p.highlightPosition = pos
	percent := p.positionOfIndex(pos)
	p.updateItem(p.highlightItem, percent)
	p.attached[p.highlightItem].setOnPath(percent >= 0 && percent < 1)
}
