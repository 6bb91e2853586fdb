package pathview

import (
	"math"
	"slices"

	"github.com/ayn2op/pathview/delegate"
)

type refillState int

const (
	refillIdle refillState = iota
	refillRunning
	refillRequeued
)

// maxRefillPasses bounds how often a refill re-runs itself in one call when
// its side effects keep asking for another pass. Anything beyond that waits
// for the next draw.
const maxRefillPasses = 4

// SizeHinter is implemented by items that know how large they want to be.
// Items without it keep the size of their current rect, at least one cell.
type SizeHinter interface {
	SizeHint() (width, height int)
}

// modelObserver forwards model notifications to the view without exposing
// the callbacks on PathView itself.
type modelObserver struct {
	view *PathView
}

func (o modelObserver) InitItem(index int, item any) {
	o.view.initItem(index, item)
}

func (o modelObserver) CreatedItem(index int, item any) {
	o.view.createdItem(index, item)
}

func (o modelObserver) ModelUpdated(changes delegate.ChangeSet, reset bool) {
	o.view.modelUpdated(changes, reset)
}

// getItem requests the item for index from the model. pending is set while
// an asynchronous request is outstanding. A nil item that is not pending marks
// index as unusable until the model changes.
func (p *PathView) getItem(index, z int, async bool) (item Primitive, pending bool) {
	if p.rejected.Contains(uint32(index)) {
		return nil, false
	}
	p.requestedIndex = index
	p.requestedZ = z
	p.inRequest = true
	defer func() { p.inRequest = false }()

	object := p.model.Object(index, async)
	if object == nil {
		if async && p.model.Incubating(index) {
			return nil, true
		}
		p.reject(index)
		return nil, false
	}
	item, ok := object.(Primitive)
	if !ok {
		p.model.Release(object)
		if !p.warned {
			p.warned = true
			p.logger.Printf("pathview: delegate must produce a Primitive item (got %T)", object)
		}
		p.reject(index)
		return nil, false
	}

	p.requestedIndex = -1
	p.attach(item)
	return item, false
}

func (p *PathView) reject(index int) {
	if p.requestedIndex == index {
		p.requestedIndex = -1
	}
	p.rejected.Add(uint32(index))
}

func (p *PathView) initItem(index int, object any) {
	item, ok := object.(Primitive)
	if !ok || p.requestedIndex != index {
		return
	}

	a := p.attach(item)
	a.percent = -1
	percent := p.positionOfIndex(float64(index))
	if percent < 1 && p.path != nil {
		a.sample(p.path, percent)
		a.z = p.requestedZ
	}
	a.setOnPath(percent >= 0 && percent < 1)
}

// createdItem finishes an asynchronous request. Items nobody is waiting for
// stay with the model until they are asked for again.
func (p *PathView) createdItem(index int, item any) {
	if p.requestedIndex != index {
		return
	}
	if item == nil {
		p.reject(index)
	}
	p.requestedIndex = -1
	if !p.inRequest {
		p.refill()
	}
}

// releaseItem hands item back to the model and forgets it once the model has
// destroyed it.
func (p *PathView) releaseItem(item Primitive) {
	if item == nil || p.model == nil {
		return
	}
	if p.model.Release(item) == delegate.FullyReleased {
		p.detach(item)
	}
}

// clear releases every item the view holds and stops all motion.
func (p *PathView) clear() {
	if p.currentItem != nil {
		p.releaseItem(p.currentItem)
		p.currentItem = nil
	}
	for _, item := range p.items {
		p.releaseItem(item)
	}
	for _, item := range p.itemCache {
		p.releaseItem(item)
	}
	if p.requestedIndex >= 0 {
		if p.model != nil {
			p.model.Cancel(p.requestedIndex)
		}
		p.requestedIndex = -1
	}
	p.items = nil
	p.itemCache = nil
	p.live.Clear()
	p.tl.Clear()
}

// regenerate drops every item and lays the view out from scratch.
func (p *PathView) regenerate() {
	p.clear()
	if !p.isValid() {
		return
	}
	p.updateMappedRange()
	p.refill()
}

// setEmpty enforces the state of a view without entries.
func (p *PathView) setEmpty() {
	if p.offset != 0 {
		p.offset = 0
		p.emit(OffsetChanged)
	}
	if p.currentIndex != -1 {
		p.currentIndex = -1
		p.emit(CurrentIndexChanged)
	}
}

// refill brings the live items in line with the offset. Calls made while a
// refill is running are folded into one more pass after it.
func (p *PathView) refill() {
	switch p.refilling {
	case refillRunning:
		p.refilling = refillRequeued
		return
	case refillRequeued:
		return
	}

	for pass := 1; ; pass++ {
		p.refilling = refillRunning
		p.layoutPending = false
		currentChanged := p.fill()
		again := p.refilling == refillRequeued
		p.refilling = refillIdle
		if currentChanged {
			p.emit(CurrentItemChanged)
		}
		if !again {
			return
		}
		if pass >= maxRefillPasses {
			p.layoutPending = true
			p.MarkDirty()
			return
		}
	}
}

// indexOf returns the model index of a live item, or -1.
func (p *PathView) indexOf(item Primitive) int {
	return p.model.IndexOf(item)
}

// itemIndex returns the position in p.items of the live item for index, or
// -1.
func (p *PathView) itemIndex(index int) int {
	return slices.IndexFunc(p.items, func(item Primitive) bool {
		return p.indexOf(item) == index
	})
}

func (p *PathView) wrapIndex(index int) int {
	switch {
	case index >= p.modelCount:
		return 0
	case index < 0:
		return p.modelCount - 1
	}
	return index
}

// holds reports whether index already has a live item.
func (p *PathView) holds(index int) bool {
	return index >= 0 && p.live.Contains(uint32(index))
}

func (p *PathView) track(index int) {
	if index >= 0 {
		p.live.Add(uint32(index))
	}
}

// fill runs one refill pass and reports whether the current item changed.
func (p *PathView) fill() bool {
	if !p.isValid() {
		return false
	}
	p.cancelStaleRequest()

	currentVisible := false
	count := p.visibleCount()
	lower, upper := p.mappedRange-p.mappedCache, 1+p.mappedCache

	// Move what is live and drop what left the retention band.
	p.live.Clear()
	kept := p.items[:0]
	for _, item := range p.items {
		index := p.indexOf(item)
		if index < 0 || p.holds(index) {
			p.releaseItem(item)
			continue
		}
		pos := p.positionOfIndex(float64(index))
		p.updateItem(item, pos)
		if pos < 1 {
			if index == p.currentIndex {
				currentVisible = true
				p.currentItemOffset = pos
			}
		} else if !p.isInBound(pos, lower, upper) {
			p.releaseItem(item)
			continue
		}
		kept = append(kept, item)
		p.track(index)
	}
	clear(p.items[len(kept):])
	p.items = kept

	waiting := false
	target := min(count+p.cacheItems, p.modelCount)
	if p.modelCount > 0 && len(p.items) < target {
		var (
			endIdx, startIdx int
			endPos           float64
			startPos         float64
		)
		wasEmpty := len(p.items) == 0
		if !wasEmpty {
			endPos, startPos = -1, 2
			for _, item := range p.items {
				index := p.indexOf(item)
				pos := p.positionOfIndex(float64(index))
				if pos > endPos {
					endPos, endIdx = pos, index
				}
				if pos < startPos {
					startPos, startIdx = pos, index
				}
			}
		} else {
			if p.snapping() {
				startPos = p.rangeStart
			}
			// Start just before the top so the append pass fills the path.
			endIdx = (round(float64(p.modelCount)-p.offset) - 1) % p.modelCount
			endPos = p.positionOfIndex(float64(endIdx))
		}

		// Unusable slots are stepped over as if they held an item.
		index := p.wrapIndex(endIdx + 1)
		next := p.positionOfIndex(float64(index))
		for seen := 0; seen < p.modelCount && (p.isInBound(next, endPos, upper) || len(p.items) == 0) && len(p.items) < target; seen++ {
			if p.holds(index) {
				break
			}
			item, pending := p.getItem(index, index+1, next >= 1)
			if pending {
				waiting = true
				break
			}
			if item != nil {
				if index == p.currentIndex {
					currentVisible = true
					p.currentItemOffset = next
				}
				p.items = append(p.items, item)
				p.track(index)
				p.updateItem(item, next)
			}
			endIdx, endPos = index, next
			index = p.wrapIndex(index + 1)
			next = p.positionOfIndex(float64(index))
		}

		if wasEmpty {
			index = p.calcCurrentIndex() - 1
		} else {
			index = startIdx - 1
		}
		index = p.wrapIndex(index)
		next = p.positionOfIndex(float64(index))
		for seen := 0; !waiting && seen < p.modelCount && p.isInBound(next, lower, startPos) && len(p.items) < target; seen++ {
			if p.holds(index) {
				break
			}
			item, pending := p.getItem(index, index+1, next >= 1)
			if pending {
				waiting = true
				break
			}
			if item != nil {
				if index == p.currentIndex {
					currentVisible = true
					p.currentItemOffset = next
				}
				p.items = slices.Insert(p.items, 0, item)
				p.track(index)
				p.updateItem(item, next)
			}
			startIdx, startPos = index, next
			index = p.wrapIndex(index - 1)
			next = p.positionOfIndex(float64(index))
		}

		// Jumps with most of the model on the path can leave holes between
		// the two ends.
		if !waiting && len(p.items) > 0 && len(p.items) < target {
			at := -1
			for index = startIdx; index != endIdx; index = p.wrapIndex(index + 1) {
				if p.holds(index) {
					at = p.itemIndex(index)
					continue
				}
				next = p.positionOfIndex(float64(index))
				if !p.isInBound(next, lower, upper) {
					continue
				}
				item, pending := p.getItem(index, index+1, next >= 1)
				if pending {
					waiting = true
					break
				}
				if item == nil {
					continue
				}
				if index == p.currentIndex {
					currentVisible = true
					p.currentItemOffset = next
				}
				at++
				p.items = slices.Insert(p.items, at, item)
				p.track(index)
				p.updateItem(item, next)
			}
		}
	}

	currentChanged := false
	if !currentVisible {
		p.currentItemOffset = 1
		if p.currentItem != nil {
			p.updateItem(p.currentItem, 1)
		} else if !waiting && p.currentIndex >= 0 && p.currentIndex < p.modelCount {
			if p.currentItem, _ = p.getItem(p.currentIndex, p.currentIndex, false); p.currentItem != nil {
				currentChanged = true
				p.updateItem(p.currentItem, 1)
				p.attached[p.currentItem].setIsCurrentItem(true)
			}
		}
	} else if !waiting && p.currentItem == nil {
		if p.currentItem, _ = p.getItem(p.currentIndex, p.currentIndex, false); p.currentItem != nil {
			currentChanged = true
			p.attached[p.currentItem].setIsCurrentItem(true)
		}
	}

	if p.highlightItem != nil {
		if p.strict() {
			p.updateItem(p.highlightItem, p.rangeStart)
			p.attached[p.highlightItem].setOnPath(true)
		} else if p.moveReason != moveSetIndex {
			p.updateItem(p.highlightItem, p.currentItemOffset)
			p.attached[p.highlightItem].setOnPath(currentVisible)
		}
	}

	for _, item := range p.itemCache {
		p.releaseItem(item)
	}
	p.itemCache = nil
	p.MarkDirty()
	return currentChanged
}

// cancelStaleRequest abandons a pending request whose index is no longer
// wanted.
func (p *PathView) cancelStaleRequest() {
	if p.requestedIndex < 0 || p.inRequest {
		return
	}
	pos := p.positionOfIndex(float64(p.requestedIndex))
	if pos >= 0 && pos < 1 {
		return
	}
	if pos >= 1 && p.isInBound(pos, p.mappedRange-p.mappedCache, 1+p.mappedCache) {
		return
	}
	p.model.Cancel(p.requestedIndex)
	p.requestedIndex = -1
}

func fuzzyEqual(a, b float64) bool {
	return math.Abs(a-b)*1e12 <= math.Min(math.Abs(a), math.Abs(b))
}

// updateItem moves item to percent along the path.
func (p *PathView) updateItem(item Primitive, percent float64) {
	if p.path == nil || item == nil {
		return
	}
	a := p.attach(item)
	if !fuzzyEqual(a.percent, percent) {
		a.percent = percent
		a.sample(p.path, percent)
		a.setOnPath(percent < 1)
	}
	p.place(item, a)
}

// place sets the rect of item so that it is centred on its path point.
func (p *PathView) place(item Primitive, a *Attached) {
	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 || p.path == nil {
		return
	}
	pt := p.path.PointAt(math.Min(math.Max(a.percent, 0), 1))
	w, h := itemSize(item)
	left := x + int(math.Floor(pt.X-float64(w-1)/2+0.5))
	top := y + int(math.Floor(pt.Y-float64(h-1)/2+0.5))
	item.SetRect(left, top, w, h)
}

func itemSize(item Primitive) (int, int) {
	var w, h int
	if s, ok := item.(SizeHinter); ok {
		w, h = s.SizeHint()
	} else {
		_, _, w, h = item.GetRect()
	}
	return max(w, 1), max(h, 1)
}
