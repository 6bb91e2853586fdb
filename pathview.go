package pathview

import (
	"log"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/ayn2op/pathview/curve"
	"github.com/ayn2op/pathview/delegate"
	"github.com/ayn2op/pathview/timeline"
	"github.com/gdamore/tcell/v3"
)

// HighlightRangeMode controls how the current item relates to the preferred
// highlight range.
type HighlightRangeMode int

// Highlight range modes.
const (
	// NoHighlightRange leaves the highlight free to move anywhere.
	NoHighlightRange HighlightRangeMode = iota
	// ApplyRange tries to keep the highlight inside the range while it
	// follows the current item.
	ApplyRange
	// StrictlyEnforceRange keeps the current item at the start of the range
	// and derives the current index from the offset.
	StrictlyEnforceRange
)

// SnapMode controls where a drag or flick comes to rest.
type SnapMode int

// Snap modes.
const (
	NoSnap SnapMode = iota
	SnapToItem
	SnapOneItem
)

// MovementDirection controls which way the view turns when the current index
// is set.
type MovementDirection int

// Movement directions.
const (
	Shortest MovementDirection = iota
	Negative
	Positive
)

// PositionMode selects how PositionViewAtIndex places an index.
type PositionMode int

// Position modes.
const (
	PositionBeginning PositionMode = iota
	PositionCenter
	PositionEnd
	PositionContain
	PositionSnap
)

type moveReason int

const (
	moveOther moveReason = iota
	moveSetIndex
	moveMouse
)

const (
	defaultDeceleration     = 100
	defaultMaxFlickVelocity = 500
	defaultHighlightMove    = 300 * time.Millisecond
)

var (
	// DragThreshold is the distance in cells the pointer must travel before
	// a press may turn into a drag.
	DragThreshold = 1.0
	// MinimumFlickVelocity is the release speed, in cells per second along
	// the path, below which a drag settles instead of flicking.
	MinimumFlickVelocity = 15.0
)

// PathView lays out the items of a delegate model along a curve and lets the
// user turn them around it with the mouse or the keyboard. Items are created
// on demand for the part of the model that is on the path, plus an optional
// cache on either side.
type PathView struct {
	*Box

	model     delegate.ItemModel
	unobserve func()
	path      curve.Curve
	version   uint64

	offset            float64
	offsetAdj         float64
	currentIndex      int
	currentItem       Primitive
	currentItemOffset float64
	modelCount        int

	pathItems   int
	cacheItems  int
	mappedRange float64
	mappedCache float64

	rangeStart         float64
	rangeEnd           float64
	haveHighlightRange bool
	rangeMode          HighlightRangeMode
	snapMode           SnapMode
	movementDirection  MovementDirection
	moveDirection      MovementDirection
	moveReason         moveReason

	dragMargin            float64
	deceleration          float64
	maxFlickVelocity      float64
	highlightMoveDuration time.Duration
	interactive           bool

	// Live items in path order, the indices they occupy, the indices whose
	// delegate produced nothing usable, and the items kept alive across a
	// model update until the next refill.
	items     []Primitive
	live      *roaring.Bitmap
	rejected  *roaring.Bitmap
	itemCache []Primitive
	attached  map[Primitive]*Attached
	schema    *attributeSchema

	requestedIndex int
	requestedZ     int
	inRequest      bool
	refilling      refillState
	layoutPending  bool
	warned         bool

	highlight         func() Primitive
	highlightItem     Primitive
	highlightPosition float64
	highlightUp       bool

	tl            *timeline.Timeline
	moveOffset    *timeline.Value
	moveHighlight *timeline.Value

	gesture gesture

	moving   bool
	flicking bool
	dragging bool

	keys      KeyMap
	showPath  bool
	pathStyle tcell.Style
	logger    *log.Logger
	notify    func(Notification)
	changed   func(index int)
}

// NewPathView returns an empty view with no model and no path.
func NewPathView() *PathView {
	p := &PathView{
		Box:                   NewBox(),
		currentIndex:          0,
		pathItems:             -1,
		mappedRange:           1,
		haveHighlightRange:    true,
		rangeMode:             StrictlyEnforceRange,
		deceleration:          defaultDeceleration,
		maxFlickVelocity:      defaultMaxFlickVelocity,
		highlightMoveDuration: defaultHighlightMove,
		interactive:           true,
		live:                  roaring.New(),
		rejected:              roaring.New(),
		attached:              make(map[Primitive]*Attached),
		requestedIndex:        -1,
		keys:                  DefaultKeyMap(),
		pathStyle:             tcell.StyleDefault.Foreground(Styles.GraphicsColor),
		logger:                log.Default(),
	}
	p.tl = timeline.New().
		SetUpdatedFunc(p.updateCurrent).
		SetCompletedFunc(p.movementEnding)
	p.moveOffset = timeline.NewValue(func(v float64) { p.setOffset(v + p.offsetAdj) })
	p.moveHighlight = timeline.NewValue(p.setHighlightPosition)
	p.createHighlight()
	return p
}

// SetNotifyFunc sets a handler which receives every property change and
// motion notification.
func (p *PathView) SetNotifyFunc(handler func(Notification)) *PathView {
	p.notify = handler
	return p
}

// SetChangedFunc sets a handler which is called with the new current index
// whenever it changes.
func (p *PathView) SetChangedFunc(handler func(index int)) *PathView {
	p.changed = handler
	return p
}

// SetLogger replaces the logger used to report misconfigured delegates.
func (p *PathView) SetLogger(logger *log.Logger) *PathView {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// SetKeyMap replaces the key bindings.
func (p *PathView) SetKeyMap(keys KeyMap) *PathView {
	p.keys = keys
	return p
}

// GetKeyMap returns the key bindings.
func (p *PathView) GetKeyMap() KeyMap {
	return p.keys
}

// SetShowPath sets whether the path itself is traced behind the items.
func (p *PathView) SetShowPath(show bool) *PathView {
	if p.showPath != show {
		p.showPath = show
		p.MarkDirty()
	}
	return p
}

// SetPathStyle sets the style of the traced path.
func (p *PathView) SetPathStyle(style tcell.Style) *PathView {
	p.pathStyle = style
	return p
}

func (p *PathView) emit(n Notification) {
	p.MarkDirty()
	if p.notify != nil {
		p.notify(n)
	}
	if n == CurrentIndexChanged && p.changed != nil {
		p.changed(p.currentIndex)
	}
}

func (p *PathView) isValid() bool {
	return p.model != nil && p.model.Count() > 0 && p.path != nil
}

// SetModel replaces the item model. Items of the previous model are released
// and the view starts over at index 0. An index set before the first model
// was attached is kept.
func (p *PathView) SetModel(model delegate.ItemModel) *PathView {
	if p.model == model {
		return p
	}

	hadModel := p.model != nil
	if hadModel {
		p.unobserve()
		p.unobserve = nil
		p.clear()
	}

	p.model = model
	p.warned = false
	p.rejected.Clear()
	oldCount := p.modelCount
	p.modelCount = 0
	if model != nil {
		p.unobserve = model.Observe(modelObserver{p})
		p.modelCount = model.Count()
	}

	switch {
	case !hadModel && p.modelCount > 0 && p.currentIndex != 0:
		index := remainder(p.currentIndex, p.modelCount)
		offset := mod(float64(p.modelCount-index), float64(p.modelCount))
		if index != p.currentIndex {
			p.currentIndex = index
			p.emit(CurrentIndexChanged)
		}
		if offset != p.offset {
			p.offset = offset
			p.emit(OffsetChanged)
		}
	default:
		if p.currentIndex != 0 {
			p.currentIndex = 0
			p.emit(CurrentIndexChanged)
		}
		if p.offset != 0 {
			p.offset = 0
			p.emit(OffsetChanged)
		}
	}
	if p.modelCount == 0 {
		p.setEmpty()
	}

	p.regenerate()
	p.updateHighlight()
	p.updateCurrent()
	if p.modelCount != oldCount {
		p.emit(CountChanged)
	}
	p.emit(ModelChanged)
	return p
}

// GetModel returns the item model.
func (p *PathView) GetModel() delegate.ItemModel {
	return p.model
}

// GetCount returns the number of entries in the model.
func (p *PathView) GetCount() int {
	if p.model == nil {
		return 0
	}
	return p.modelCount
}

// SetPath replaces the curve the items are laid out on.
func (p *PathView) SetPath(path curve.Curve) *PathView {
	if p.path == path {
		return p
	}
	p.path = path
	p.schema = nil
	if path != nil {
		p.version = path.Version()
	}
	if p.isValid() {
		p.clear()
		p.regenerate()
		p.updateHighlight()
		p.updateCurrent()
	}
	p.emit(PathChanged)
	return p
}

// GetPath returns the curve.
func (p *PathView) GetPath() curve.Curve {
	return p.path
}

// pathUpdated invalidates every cached position after the curve changed in
// place.
func (p *PathView) pathUpdated() {
	p.version = p.path.Version()
	p.schema = nil
	for _, item := range p.items {
		if a := p.attached[item]; a != nil {
			a.percent = -1
		}
	}
	p.refill()
}

// checkPath notices in-place edits of the curve.
func (p *PathView) checkPath() {
	if p.path != nil && p.path.Version() != p.version {
		p.pathUpdated()
	}
}

// SetPathItemCount sets how many items are shown on the path at once. Values
// below 1 are raised to 1.
func (p *PathView) SetPathItemCount(n int) *PathView {
	if n == p.pathItems {
		return p
	}
	if n < 1 {
		n = 1
	}
	p.pathItems = n
	p.updateMappedRange()
	if p.isValid() {
		p.regenerate()
	}
	p.emit(PathItemCountChanged)
	return p
}

// ResetPathItemCount shows every item of the model on the path.
func (p *PathView) ResetPathItemCount() *PathView {
	if p.pathItems == -1 {
		return p
	}
	p.pathItems = -1
	p.updateMappedRange()
	if p.isValid() {
		p.regenerate()
	}
	p.emit(PathItemCountChanged)
	return p
}

// GetPathItemCount returns the number of items on the path, or -1 for all.
func (p *PathView) GetPathItemCount() int {
	return p.pathItems
}

// SetCacheItemCount sets how many items beyond the visible ones are kept
// alive. Negative values are ignored.
func (p *PathView) SetCacheItemCount(n int) *PathView {
	if n == p.cacheItems || n < 0 {
		return p
	}
	p.cacheItems = n
	p.updateMappedRange()
	p.refill()
	p.emit(CacheItemCountChanged)
	return p
}

// GetCacheItemCount returns the number of cached items.
func (p *PathView) GetCacheItemCount() int {
	return p.cacheItems
}

// SetPreferredHighlightBegin sets the start of the highlight range. Values
// outside [0, 1] are ignored.
func (p *PathView) SetPreferredHighlightBegin(start float64) *PathView {
	if p.rangeStart == start || start < 0 || start > 1 {
		return p
	}
	p.rangeStart = start
	p.haveHighlightRange = p.rangeStart <= p.rangeEnd
	p.refill()
	p.emit(PreferredHighlightBeginChanged)
	return p
}

// GetPreferredHighlightBegin returns the start of the highlight range.
func (p *PathView) GetPreferredHighlightBegin() float64 {
	return p.rangeStart
}

// SetPreferredHighlightEnd sets the end of the highlight range. Values
// outside [0, 1] are ignored.
func (p *PathView) SetPreferredHighlightEnd(end float64) *PathView {
	if p.rangeEnd == end || end < 0 || end > 1 {
		return p
	}
	p.rangeEnd = end
	p.haveHighlightRange = p.rangeStart <= p.rangeEnd
	p.refill()
	p.emit(PreferredHighlightEndChanged)
	return p
}

// GetPreferredHighlightEnd returns the end of the highlight range.
func (p *PathView) GetPreferredHighlightEnd() float64 {
	return p.rangeEnd
}

// SetHighlightRangeMode sets the highlight range mode and re-snaps the view.
func (p *PathView) SetHighlightRangeMode(mode HighlightRangeMode) *PathView {
	if p.rangeMode == mode {
		return p
	}
	p.rangeMode = mode
	p.haveHighlightRange = p.rangeStart <= p.rangeEnd
	if p.haveHighlightRange {
		p.regenerate()
		index := p.currentIndex
		if p.rangeMode == NoHighlightRange {
			index = p.calcCurrentIndex()
		}
		if index >= 0 {
			p.snapToIndex(index, moveOther)
		}
	}
	p.emit(HighlightRangeModeChanged)
	return p
}

// GetHighlightRangeMode returns the highlight range mode.
func (p *PathView) GetHighlightRangeMode() HighlightRangeMode {
	return p.rangeMode
}

// SetSnapMode sets where motion comes to rest.
func (p *PathView) SetSnapMode(mode SnapMode) *PathView {
	if p.snapMode != mode {
		p.snapMode = mode
		p.emit(SnapModeChanged)
	}
	return p
}

// GetSnapMode returns the snap mode.
func (p *PathView) GetSnapMode() SnapMode {
	return p.snapMode
}

// SetMovementDirection sets which way the view turns when the current index
// changes. It takes effect once running motion has ended.
func (p *PathView) SetMovementDirection(direction MovementDirection) *PathView {
	if p.movementDirection == direction {
		return p
	}
	p.movementDirection = direction
	if !p.tl.IsActive() {
		p.moveDirection = direction
	}
	p.emit(MovementDirectionChanged)
	return p
}

// GetMovementDirection returns the movement direction.
func (p *PathView) GetMovementDirection() MovementDirection {
	return p.movementDirection
}

// SetDragMargin sets how far from the path, in cells, a press may start a
// drag when it does not hit an item.
func (p *PathView) SetDragMargin(margin float64) *PathView {
	if p.dragMargin != margin {
		p.dragMargin = margin
		p.emit(DragMarginChanged)
	}
	return p
}

// GetDragMargin returns the drag margin.
func (p *PathView) GetDragMargin() float64 {
	return p.dragMargin
}

// SetFlickDeceleration sets how quickly a flick slows down.
func (p *PathView) SetFlickDeceleration(deceleration float64) *PathView {
	if p.deceleration != deceleration {
		p.deceleration = deceleration
		p.emit(FlickDecelerationChanged)
	}
	return p
}

// GetFlickDeceleration returns the flick deceleration.
func (p *PathView) GetFlickDeceleration() float64 {
	return p.deceleration
}

// SetMaximumFlickVelocity sets the speed limit of a flick in cells per
// second along the path.
func (p *PathView) SetMaximumFlickVelocity(velocity float64) *PathView {
	if p.maxFlickVelocity != velocity {
		p.maxFlickVelocity = velocity
		p.emit(MaximumFlickVelocityChanged)
	}
	return p
}

// GetMaximumFlickVelocity returns the maximum flick velocity.
func (p *PathView) GetMaximumFlickVelocity() float64 {
	return p.maxFlickVelocity
}

// SetHighlightMoveDuration sets how long the view takes to turn to a new
// current index. Zero jumps.
func (p *PathView) SetHighlightMoveDuration(duration time.Duration) *PathView {
	if p.highlightMoveDuration != duration {
		p.highlightMoveDuration = duration
		p.emit(HighlightMoveDurationChanged)
	}
	return p
}

// GetHighlightMoveDuration returns the highlight move duration.
func (p *PathView) GetHighlightMoveDuration() time.Duration {
	return p.highlightMoveDuration
}

// SetInteractive enables or disables mouse gestures. Disabling stops any
// running drag or flick and settles the view on the nearest item.
func (p *PathView) SetInteractive(interactive bool) *PathView {
	if p.interactive == interactive {
		return p
	}
	p.interactive = interactive
	if !interactive {
		p.tl.Clear()
		p.MouseUngrab()
		p.fixOffset()
		if !p.tl.IsActive() {
			p.movementEnding()
		}
	}
	p.emit(InteractiveChanged)
	return p
}

// IsInteractive returns whether mouse gestures are handled.
func (p *PathView) IsInteractive() bool {
	return p.interactive
}

// IsMoving reports whether the view is being dragged or is still moving from
// a drag or flick.
func (p *PathView) IsMoving() bool {
	return p.moving
}

// IsFlicking reports whether a flick is running.
func (p *PathView) IsFlicking() bool {
	return p.flicking
}

// IsDragging reports whether the user is dragging the view.
func (p *PathView) IsDragging() bool {
	return p.dragging
}

// Items returns the live items in path order.
func (p *PathView) Items() []Primitive {
	items := make([]Primitive, len(p.items))
	copy(items, p.items)
	return items
}

// Animate implements Animator. It advances running motion to now.
func (p *PathView) Animate(now time.Time) bool {
	p.tl.Tick(now)
	return p.tl.IsActive()
}

func (p *PathView) setDragging(dragging bool) {
	if p.dragging == dragging {
		return
	}
	p.dragging = dragging
	if dragging {
		p.emit(DragStarted)
	} else {
		p.emit(DragEnded)
	}
	p.emit(DraggingChanged)
}
