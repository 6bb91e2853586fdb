package pathview

import "github.com/ayn2op/pathview/delegate"

// modelUpdated applies a structural change of the model. Removals are
// applied before insertions; a removal and an insertion sharing a move id
// carry the current index along with the moved entries.
func (p *PathView) modelUpdated(changes delegate.ChangeSet, reset bool) {
	if p.model == nil {
		return
	}
	p.rejected.Clear()
	if reset {
		p.resetModel()
		return
	}
	if changes.Empty() {
		return
	}

	oldCount, oldOffset := p.modelCount, p.offset
	// Indices have shifted under any outstanding request.
	p.requestedIndex = -1

	moving := false
	moveID, moveOffset := 0, 0
	currentChanged := false
	for _, r := range changes.Removes {
		switch {
		case !moving && p.currentIndex >= r.End():
			p.currentIndex -= r.Count
			currentChanged = true
		case !moving && p.currentIndex >= r.Index && p.currentIndex < r.End():
			if r.IsMove() {
				moving = true
				moveID = r.MoveID
				moveOffset = p.currentIndex - r.Index
			} else {
				p.dropCurrentItem()
			}
			p.currentIndex = min(r.Index, p.modelCount-r.Count-1)
			currentChanged = true
		}
		if r.Index > p.currentIndex {
			p.offset -= float64(r.Count)
			p.offsetAdj -= float64(r.Count)
		}
		p.modelCount -= r.Count
	}

	for _, i := range changes.Inserts {
		if p.modelCount > 0 {
			if !moving && i.Index <= p.currentIndex {
				p.currentIndex += i.Count
				currentChanged = true
			} else {
				if moving && moveID == i.MoveID {
					p.currentIndex = i.Index + moveOffset
					currentChanged = true
				}
				if i.Index > p.currentIndex {
					p.offset += float64(i.Count)
					p.offsetAdj += float64(i.Count)
				}
			}
		}
		p.modelCount += i.Count
	}

	p.offset = mod(p.offset, float64(p.modelCount))
	if p.currentIndex == -1 {
		p.currentIndex = p.calcCurrentIndex()
		currentChanged = true
	}

	p.itemCache = append(p.itemCache, p.items...)
	p.items = nil
	p.live.Clear()

	if p.modelCount == 0 {
		for _, item := range p.itemCache {
			p.releaseItem(item)
		}
		p.itemCache = nil
		p.dropCurrentItem()
		p.offset = 0
		p.tl.Reset(p.moveOffset)
		if p.currentIndex != -1 {
			p.currentIndex = -1
			currentChanged = true
		}
	} else {
		if !p.flicking && !p.moving && p.strict() {
			p.offset = mod(float64(p.modelCount-p.currentIndex), float64(p.modelCount))
		}
		p.updateMappedRange()
	}

	if p.offset != oldOffset {
		p.emit(OffsetChanged)
	}
	if currentChanged {
		p.emit(CurrentIndexChanged)
	}
	if p.modelCount != oldCount {
		p.emit(CountChanged)
	}
	if p.modelCount > 0 {
		p.refill()
	}
}

// resetModel starts over after the model replaced its content.
func (p *PathView) resetModel() {
	oldOffset, oldIndex := p.offset, p.currentIndex
	p.clear()
	p.modelCount = p.model.Count()
	p.offset = 0
	p.currentIndex = 0
	if p.modelCount == 0 {
		p.currentIndex = -1
	}
	p.moveReason = moveOther
	p.regenerate()
	p.updateHighlight()
	if p.offset != oldOffset {
		p.emit(OffsetChanged)
	}
	if p.currentIndex != oldIndex {
		p.emit(CurrentIndexChanged)
	}
	p.emit(CountChanged)
}

func (p *PathView) dropCurrentItem() {
	if p.currentItem == nil {
		return
	}
	if a := p.attached[p.currentItem]; a != nil {
		a.setIsCurrentItem(false)
	}
	p.releaseItem(p.currentItem)
	p.currentItem = nil
}
