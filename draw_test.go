package pathview

import (
	"strings"
	"testing"

	"github.com/ayn2op/pathview/curve"
	"github.com/ayn2op/pathview/delegate"
	"github.com/stretchr/testify/assert"
)

func row(width int, marks map[int]string) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for x, s := range marks {
		cells[x] = s
	}
	return strings.TrimRight(strings.Join(cells, ""), " ")
}

func TestDraw_ItemsAndHighlight(t *testing.T) {
	p := NewPathView().SetHighlightMoveDuration(0)
	p.SetRect(0, 0, 100, 3)
	p.SetPath(curve.Line(10, 1, 90, 1))
	p.SetHighlight(func() Primitive { return NewHighlightMarker(3) })
	p.SetModel(newLabelModel(5))

	s := NewSnapshot(100, 3).Capture(p)

	assert.Equal(t, row(100, map[int]string{
		9: "[", 10: "0", 11: "]",
		26: "1", 42: "2", 58: "3", 74: "4",
	}), s.Line(1))
	assert.Empty(t, s.Line(0))
	assert.Empty(t, s.Line(2))
}

func TestDraw_FollowsCurrentIndex(t *testing.T) {
	p := NewPathView().SetHighlightMoveDuration(0)
	p.SetRect(0, 0, 100, 3)
	p.SetPath(curve.Line(10, 1, 90, 1))
	p.SetModel(newLabelModel(5))

	p.SetCurrentIndex(2)
	s := NewSnapshot(100, 3).Capture(p)

	assert.Equal(t, row(100, map[int]string{
		10: "2", 26: "3", 42: "4", 58: "0", 74: "1",
	}), s.Line(1))
}

func TestDraw_TracesPath(t *testing.T) {
	p := NewPathView().SetHighlightMoveDuration(0).SetShowPath(true)
	p.SetRect(0, 0, 30, 1)
	p.SetPath(curve.Line(0, 0, 20, 0))
	p.SetModel(newLabelModel(2))

	s := NewSnapshot(30, 1).Capture(p)

	want := "0" + strings.Repeat(SemigraphicsMiddleDot, 9) + "1" + strings.Repeat(SemigraphicsMiddleDot, 10)
	assert.Equal(t, want, s.Line(0))
}

func TestDraw_ClipsItemsToInnerRect(t *testing.T) {
	model := delegate.NewModel(func(_ int, v string) any {
		return NewItemLabel(v)
	}, "abc").SetSynchronous(true)
	p := NewPathView().SetHighlightMoveDuration(0)
	p.SetRect(0, 0, 30, 1)
	p.SetPath(curve.Line(0, 0, 20, 0))
	p.SetModel(model)

	s := NewSnapshot(30, 1).Capture(p)
	assert.Equal(t, "bc", s.Line(0))
}

func TestDraw_BorderAndTitle(t *testing.T) {
	p := NewPathView().SetHighlightMoveDuration(0)
	p.SetBorders(BordersAll).SetBorderSet(BorderSetPlain()).SetTitle("v")
	p.SetPath(curve.Line(0, 0, 10, 0))
	p.SetModel(newLabelModel(2))

	s := NewSnapshot(14, 3).Capture(p)

	assert.True(t, strings.HasPrefix(s.Line(0), BorderSetPlain().TopLeft))
	assert.Contains(t, s.Line(0), "v")
	assert.Equal(t, BorderSetPlain().Left+"0    1", s.Line(1)[:len(BorderSetPlain().Left)+6])
}

func TestDraw_WithoutModel(t *testing.T) {
	p := NewPathView()
	p.SetPath(curve.Line(0, 0, 10, 0))

	s := NewSnapshot(12, 2).Capture(p)
	assert.Equal(t, "\n", s.String())
}

func TestHighlightMarker_Narrow(t *testing.T) {
	m := NewHighlightMarker(0)
	w, h := m.SizeHint()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	s := NewSnapshot(3, 1)
	m.SetRect(1, 0, 1, 1)
	m.Draw(s)
	assert.Equal(t, " "+SemigraphicsBullet, s.Line(0))
}
