package pathview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// OpacityAttribute is the path attribute ItemLabel reads to fade items that
// are far from the front of the path. Values below one half draw dimmed.
const OpacityAttribute = "opacity"

// ItemLabel is a small text item for a PathView. It follows its attached
// state: the current item is drawn in the current item colors.
type ItemLabel struct {
	*Box

	text     string
	maxWidth int
	style    tcell.Style
	attached *Attached
}

// NewItemLabel returns a label showing text.
func NewItemLabel(text string) *ItemLabel {
	return &ItemLabel{
		Box:   NewBox(),
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
	}
}

// SetText sets the text of the label.
func (l *ItemLabel) SetText(text string) *ItemLabel {
	if l.text != text {
		l.text = text
		l.MarkDirty()
	}
	return l
}

// GetText returns the text of the label.
func (l *ItemLabel) GetText() string {
	return l.text
}

// SetMaxWidth wraps the text to at most width cells. Zero disables wrapping.
func (l *ItemLabel) SetMaxWidth(width int) *ItemLabel {
	l.maxWidth = max(width, 0)
	return l
}

// SetTextStyle sets the style of the label when it is not current.
func (l *ItemLabel) SetTextStyle(style tcell.Style) *ItemLabel {
	l.style = style
	return l
}

// SetAttached implements AttachedReceiver.
func (l *ItemLabel) SetAttached(a *Attached) {
	l.attached = a
}

// Attached returns the state the view keeps for the label, or nil.
func (l *ItemLabel) Attached() *Attached {
	return l.attached
}

func (l *ItemLabel) lines() []string {
	if l.maxWidth > 0 {
		return WordWrap(l.text, l.maxWidth)
	}
	return strings.Split(l.text, "\n")
}

// SizeHint implements SizeHinter.
func (l *ItemLabel) SizeHint() (int, int) {
	lines := l.lines()
	width := 0
	for _, line := range lines {
		width = max(width, uniseg.StringWidth(line))
	}
	return width, len(lines)
}

// Draw draws the label.
func (l *ItemLabel) Draw(screen tcell.Screen) {
	x, y, width, height := l.GetRect()
	if width <= 0 || height <= 0 {
		return
	}

	style := l.style
	if a := l.attached; a != nil {
		if a.IsCurrentItem() {
			style = tcell.StyleDefault.
				Foreground(Styles.CurrentItemTextColor).
				Background(Styles.CurrentItemBackgroundColor)
		} else if h, ok := a.Handle(OpacityAttribute); ok && a.ValueAt(h) < 0.5 {
			style = style.Dim(true)
		}
	}
	for i, line := range l.lines() {
		if i >= height {
			break
		}
		PrintWithStyle(screen, line, x, y+i, width, AlignmentCenter, style)
	}
}

// MouseHandler ignores the mouse; the view decides what a click on a label
// does.
func (l *ItemLabel) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	return nil, nil
}
