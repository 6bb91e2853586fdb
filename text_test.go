package pathview

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestPrintWithStyle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		alignment Alignment
		want      string
		bytes     int
	}{
		{"left", "hello", 3, AlignmentLeft, "hel", 3},
		{"right", "hello", 3, AlignmentRight, "llo", 3},
		{"center", "ab", 6, AlignmentCenter, "  ab", 2},
		{"center cut", "abcdef", 4, AlignmentCenter, "bcde", 4},
		{"fits", "ab", 2, AlignmentRight, "ab", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnapshot(10, 1)
			bytes, width := PrintWithStyle(s, tt.text, 0, 0, tt.maxWidth, tt.alignment, tcell.StyleDefault)
			assert.Equal(t, tt.want, s.Line(0))
			assert.Equal(t, tt.bytes, bytes)
			assert.Equal(t, tt.bytes, width)
		})
	}
}

func TestPrintWithStyle_WideGraphemes(t *testing.T) {
	s := NewSnapshot(10, 1)

	bytes, width := PrintWithStyle(s, "日本", 0, 0, 3, AlignmentLeft, tcell.StyleDefault)

	assert.Equal(t, len("日"), bytes)
	assert.Equal(t, 2, width)
	assert.Equal(t, 4, TextWidth("日本"))
}

func TestPrintWithStyle_OutsideScreen(t *testing.T) {
	s := NewSnapshot(10, 1)

	bytes, width := PrintWithStyle(s, "a", 0, 1, 5, AlignmentLeft, tcell.StyleDefault)
	assert.Zero(t, bytes)
	assert.Zero(t, width)

	_, width = PrintWithStyle(s, "abcdef", 7, 0, 5, AlignmentLeft, tcell.StyleDefault)
	assert.Equal(t, 3, width)
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, []string{"the quick ", "brown fox"}, WordWrap("the quick brown fox", 10))
	assert.Equal(t, []string{"abc", "def", "gh"}, WordWrap("abcdefgh", 3))
	assert.Equal(t, []string{"a", "b"}, WordWrap("a\nb", 5))
	assert.Equal(t, []string{"short"}, WordWrap("short", 10))
	assert.Nil(t, WordWrap("text", 0))
}

func TestBox_TitleIsCutWithEllipsis(t *testing.T) {
	b := NewBox().SetBorders(BordersAll).SetTitle("abcdefgh")
	b.SetRect(0, 0, 6, 3)

	s := NewSnapshot(6, 3).Capture(b)

	set := BorderSetPlain()
	assert.Equal(t, set.TopLeft+"cde"+SemigraphicsHorizontalEllipsis+set.TopRight, s.Line(0))
	x, y, width, height := b.GetInnerRect()
	assert.Equal(t, []int{1, 1, 4, 1}, []int{x, y, width, height})
}
