package pathview

import "math"

// mod returns x modulo m in [0, m).
func mod(x, m float64) float64 {
	if m == 0 {
		return 0
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// math.Mod can return m for tiny negative x once the addition rounds.
	if r >= m {
		r = 0
	}
	return r
}

// remainder returns i modulo n in [0, n).
func remainder(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// round rounds half up, the way item boundaries are resolved throughout.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func (p *PathView) windowed() bool {
	return p.model != nil && p.pathItems != -1 && p.pathItems < p.modelCount
}

// visibleCount returns how many items share the path at once.
func (p *PathView) visibleCount() int {
	if p.pathItems == -1 {
		return p.modelCount
	}
	return min(p.pathItems, p.modelCount)
}

func (p *PathView) updateMappedRange() {
	if p.windowed() {
		p.mappedRange = float64(p.modelCount) / float64(p.pathItems)
		p.mappedCache = float64(p.cacheItems) / float64(p.pathItems) / 2
	} else {
		p.mappedRange = 1
		p.mappedCache = 0
	}
}

// snapping reports whether the highlight range origin anchors the mapping.
func (p *PathView) snapping() bool {
	return p.haveHighlightRange && (p.rangeMode != NoHighlightRange || p.snapMode != NoSnap)
}

func (p *PathView) strict() bool {
	return p.haveHighlightRange && p.rangeMode == StrictlyEnforceRange
}

// positionOfIndex maps a possibly fractional model index to a path
// parameter. Results of 1 and above are off the path; -1 means the index
// cannot be mapped.
func (p *PathView) positionOfIndex(index float64) float64 {
	if p.model == nil || index < 0 || index >= float64(p.modelCount) {
		return -1
	}

	start := 0.0
	if p.snapping() {
		start = p.rangeStart
	}
	pos := mod(index+p.offset, float64(p.modelCount)) / float64(p.modelCount)
	if p.pathItems != -1 && p.pathItems < p.modelCount {
		pos = mod(pos+start/p.mappedRange, 1)
		return pos * p.mappedRange
	}
	return mod(pos+start, 1)
}

// isInBound reports whether position lies in [lower, upper), treating the
// interval as wrapping through zero when lower is above upper.
func (p *PathView) isInBound(position, lower, upper float64) bool {
	if lower == upper {
		return true
	}
	if lower > upper {
		if position > upper && position > lower {
			position -= p.mappedRange
		}
		lower -= p.mappedRange
	}
	return position >= lower && position < upper
}

// calcCurrentIndex returns the index whose home position is the highlight
// range origin for the current offset.
func (p *PathView) calcCurrentIndex() int {
	if p.modelCount == 0 || p.model == nil || len(p.items) == 0 {
		return 0
	}
	p.offset = mod(p.offset, float64(p.modelCount))
	current := round(math.Abs(mod(float64(p.modelCount)-p.offset, float64(p.modelCount))))
	return current % p.modelCount
}

// PositionOfIndex returns the path parameter of index for the current
// offset, or -1 when the index is not in the model.
func (p *PathView) PositionOfIndex(index int) float64 {
	return p.positionOfIndex(float64(index))
}
