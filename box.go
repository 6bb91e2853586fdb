package pathview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

// Box is the frame shared by every primitive in this package: a rectangle
// with a background, an optional border and a title in the top border row.
// PathView, the stock item primitives and custom items all embed it.
type Box struct {
	x, y, width, height int

	background tcell.Color

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title      string
	titleStyle tcell.Style

	focused bool

	// dirty is set whenever the box needs a redraw. A set dirty flag is
	// forwarded once to dirtyParent, the PathView the box is attached to.
	dirty       atomic.Bool
	dirtyParent atomic.Pointer[Box]
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:       15,
		height:      10,
		background:  Styles.PrimitiveBackgroundColor,
		borderSet:   BorderSetPlain(),
		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		titleStyle:  tcell.StyleDefault.Foreground(Styles.TitleColor),
	}
	b.dirty.Store(true)
	return b
}

// GetRect returns the outer rectangle of the box.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the rectangle left for content once the border and the
// title row are taken away. Width and height never go below zero.
func (b *Box) GetInnerRect() (x, y, width, height int) {
	x, y, width, height = b.x, b.y, b.width, b.height
	if b.borders.Has(BordersTop) || b.title != "" {
		y, height = y+1, height-1
	}
	if b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x, width = x+1, width-1
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// SetRect moves the box. Items are moved by their PathView on every layout
// pass, so an unchanged rectangle does not dirty the box.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x == x && b.y == y && b.width == width && b.height == height {
		return
	}
	b.x, b.y, b.width, b.height = x, y, width, height
	b.MarkDirty()
}

// InRect reports whether the cell (x, y) lies inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// IsDirty returns whether this primitive needs redrawing.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty flags the box for a redraw and tells the owning view once.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.dirtyParent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

// MarkClean marks this primitive as clean.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// dirtyForwarder is implemented by primitives embedding a Box.
type dirtyForwarder interface {
	forwardDirtyTo(parent *Box)
	stopForwardingTo(parent *Box)
}

func (b *Box) forwardDirtyTo(parent *Box) {
	if parent != nil && parent != b {
		b.dirtyParent.Store(parent)
	}
}

func (b *Box) stopForwardingTo(parent *Box) {
	if parent != nil {
		b.dirtyParent.CompareAndSwap(parent, nil)
	}
}

func bindDirtyParent(child Primitive, parent *Box) {
	if f, ok := child.(dirtyForwarder); ok && parent != nil {
		f.forwardDirtyTo(parent)
	}
}

func unbindDirtyParent(child Primitive, parent *Box) {
	if f, ok := child.(dirtyForwarder); ok && parent != nil {
		f.stopForwardingTo(parent)
	}
}

// InputHandler ignores key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler takes the focus on a left press inside the box.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// SetBorders selects the sides that get a frame.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.MarkDirty()
	}
	return b
}

// SetBorderSet sets the strings the frame is drawn with.
func (b *Box) SetBorderSet(set BorderSet) *Box {
	if b.borderSet != set {
		b.borderSet = set
		b.MarkDirty()
	}
	return b
}

// SetTitle sets the text centered in the top row. A title reserves that row
// even without a top border.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.MarkDirty()
	}
	return b
}

// SetTitleStyle sets the style of the title.
func (b *Box) SetTitleStyle(style tcell.Style) *Box {
	if b.titleStyle != style {
		b.titleStyle = style
		b.MarkDirty()
	}
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the frame of primitive p, which embeds b. Custom item
// primitives call it before drawing their content.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	fill := tcell.StyleDefault.Background(b.background)
	right, bottom := b.x+b.width-1, b.y+b.height-1
	for y := b.y; y <= bottom; y++ {
		for x := b.x; x <= right; x++ {
			screen.Put(x, y, " ", fill)
		}
	}
	if b.width >= 2 && b.height >= 2 {
		b.drawFrame(screen, right, bottom)
	}
	if b.width >= 4 {
		b.drawTitle(screen)
	}
}

func (b *Box) drawFrame(screen tcell.Screen, right, bottom int) {
	set, style := b.borderSet, b.borderStyle
	edge := func(side Borders, cell string, x0, y0, dx, dy, n int) {
		if !b.borders.Has(side) {
			return
		}
		for i := range n {
			screen.Put(x0+i*dx, y0+i*dy, cell, style)
		}
	}
	edge(BordersTop, set.Top, b.x+1, b.y, 1, 0, b.width-2)
	edge(BordersBottom, set.Bottom, b.x+1, bottom, 1, 0, b.width-2)
	edge(BordersLeft, set.Left, b.x, b.y+1, 0, 1, b.height-2)
	edge(BordersRight, set.Right, right, b.y+1, 0, 1, b.height-2)

	corners := []struct {
		sides Borders
		cell  string
		x, y  int
	}{
		{BordersTop | BordersLeft, set.TopLeft, b.x, b.y},
		{BordersTop | BordersRight, set.TopRight, right, b.y},
		{BordersBottom | BordersLeft, set.BottomLeft, b.x, bottom},
		{BordersBottom | BordersRight, set.BottomRight, right, bottom},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			screen.Put(c.x, c.y, c.cell, style)
		}
	}
}

// drawTitle centers the title between the corners, ending it with an
// ellipsis when it is cut.
func (b *Box) drawTitle(screen tcell.Screen) {
	if b.title == "" {
		return
	}
	style := b.titleStyle.Background(tcell.ColorDefault)
	printed, _ := PrintWithStyle(screen, b.title, b.x+1, b.y, b.width-2, AlignmentCenter, style)
	if printed == 0 || printed >= len(b.title) {
		return
	}
	x := b.x + b.width - 2
	_, existing, _ := screen.Get(x, b.y)
	PrintWithStyle(screen, SemigraphicsHorizontalEllipsis, x, b.y, 1, AlignmentLeft, style.Foreground(existing.GetForeground()))
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.focused {
		b.focused = true
		b.MarkDirty()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	if b.focused {
		b.focused = false
		b.MarkDirty()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.focused
}
