package pathview

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type snapshotCell struct {
	text  string
	style tcell.Style
	cont  bool
}

// Snapshot is an off-screen tcell.Screen that records what primitives draw.
// It implements the drawing subset of tcell.Screen; other methods must not
// be called.
type Snapshot struct {
	tcell.Screen

	width, height int
	cells         []snapshotCell
	defaultStyle  tcell.Style
}

// NewSnapshot returns an empty snapshot of the given size.
func NewSnapshot(width, height int) *Snapshot {
	width, height = max(width, 0), max(height, 0)
	return &Snapshot{
		width:  width,
		height: height,
		cells:  make([]snapshotCell, width*height),
	}
}

// Capture lays p out over the whole snapshot and draws it.
func (s *Snapshot) Capture(p Primitive) *Snapshot {
	s.Clear()
	p.SetRect(0, 0, s.width, s.height)
	p.Draw(s)
	return s
}

func (s *Snapshot) Size() (int, int) {
	return s.width, s.height
}

func (s *Snapshot) Clear() {
	clear(s.cells)
}

func (s *Snapshot) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = snapshotCell{text: string(r), style: style}
	}
}

func (s *Snapshot) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *Snapshot) cell(x, y int) *snapshotCell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	return &s.cells[y*s.width+x]
}

func (s *Snapshot) Get(x, y int) (str string, style tcell.Style, width int) {
	c := s.cell(x, y)
	if c == nil || c.text == "" {
		return "", tcell.StyleDefault, 1
	}
	return c.text, c.style, max(uniseg.StringWidth(c.text), 1)
}

func (s *Snapshot) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster, remain, width = string(r), str[size:], 1
	}
	if width <= 0 {
		return remain, 0
	}
	// Wide graphemes do not fit into the last column.
	if width > 1 && x == s.width-1 {
		cluster, width = " ", 1
	}

	if c := s.cell(x, y); c != nil {
		*c = snapshotCell{text: cluster, style: style}
	}
	for i := 1; i < width; i++ {
		if c := s.cell(x+i, y); c != nil {
			*c = snapshotCell{style: style, cont: true}
		}
	}
	return remain, width
}

func (s *Snapshot) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *Snapshot) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// Line returns row y as text with trailing blanks removed.
func (s *Snapshot) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		c := s.cells[y*s.width+x]
		switch {
		case c.cont:
		case c.text == "":
			b.WriteByte(' ')
		default:
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String returns all rows separated by newlines.
func (s *Snapshot) String() string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return strings.Join(lines, "\n")
}
