package pathview

import (
	"cmp"
	"math"
	"slices"

	"github.com/gdamore/tcell/v3"
)

// Draw draws the view: the traced path when enabled, then the highlight,
// then every item on the path in stacking order.
func (p *PathView) Draw(screen tcell.Screen) {
	p.DrawForSubclass(screen, p)
	defer p.MarkClean()

	p.checkPath()
	if p.layoutPending {
		p.refill()
	}
	if !p.isValid() {
		return
	}

	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	if p.showPath {
		p.tracePath(screen, x, y, width, height)
	}

	type layer struct {
		item Primitive
		z    int
	}
	layers := make([]layer, 0, len(p.items)+1)
	if h := p.highlightItem; h != nil {
		if a := p.attached[h]; a != nil && a.onPath {
			p.place(h, a)
			layers = append(layers, layer{item: h, z: math.MinInt})
		}
	}
	for _, item := range p.items {
		a := p.attached[item]
		if a == nil || a.percent < 0 || a.percent >= 1 {
			continue
		}
		p.place(item, a)
		layers = append(layers, layer{item: item, z: a.z})
	}
	slices.SortStableFunc(layers, func(a, b layer) int {
		return cmp.Compare(a.z, b.z)
	})
	clipped := newClippedScreen(screen, x, y, width, height)
	for _, l := range layers {
		l.item.Draw(clipped)
	}
}

// tracePath marks the cells the path runs through.
func (p *PathView) tracePath(screen tcell.Screen, x, y, width, height int) {
	steps := int(math.Ceil(p.path.Length()*2)) + 1
	for i := 0; i <= steps; i++ {
		pt := p.path.PointAt(float64(i) / float64(steps))
		cx := x + int(math.Floor(pt.X+0.5))
		cy := y + int(math.Floor(pt.Y+0.5))
		if cx < x || cx >= x+width || cy < y || cy >= y+height {
			continue
		}
		screen.Put(cx, cy, SemigraphicsMiddleDot, p.pathStyle)
	}
}

// HighlightMarker is a highlight item that draws a bullet in the highlight
// color, or a bracket pair around an item of the given width.
type HighlightMarker struct {
	*Box
	width int
}

// NewHighlightMarker returns a marker width cells wide.
func NewHighlightMarker(width int) *HighlightMarker {
	return &HighlightMarker{Box: NewBox(), width: max(width, 1)}
}

// SizeHint implements SizeHinter.
func (m *HighlightMarker) SizeHint() (int, int) {
	return m.width, 1
}

// Draw draws the marker.
func (m *HighlightMarker) Draw(screen tcell.Screen) {
	x, y, width, height := m.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(Styles.HighlightColor)
	if width < 3 {
		screen.Put(x+width/2, y, SemigraphicsBullet, style)
		return
	}
	screen.Put(x, y, "[", style)
	screen.Put(x+width-1, y, "]", style)
}
