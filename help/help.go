// Package help draws a one-line summary of key bindings.
package help

import (
	"strings"

	"github.com/ayn2op/pathview"
	"github.com/ayn2op/pathview/keybind"
	"github.com/gdamore/tcell/v3"
)

// KeyMap is implemented by anything that can list its bindings.
type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
}

// Help is a primitive showing the short help of a KeyMap.
type Help struct {
	*pathview.Box
	Styles Styles

	keyMap    KeyMap
	separator string
	ellipsis  string
}

func New() *Help {
	return &Help{
		Box:       pathview.NewBox(),
		Styles:    DefaultStyles(),
		separator: " " + pathview.SemigraphicsBullet + " ",
		ellipsis:  pathview.SemigraphicsHorizontalEllipsis,
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetSeparator sets the text between two bindings.
func (h *Help) SetSeparator(separator string) *Help {
	h.separator = separator
	return h
}

// SetEllipsis sets the marker shown when bindings had to be left out.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	if height <= 0 {
		return
	}
	for _, s := range h.segments(width) {
		if width <= 0 {
			break
		}
		_, printed := pathview.PrintWithStyle(screen, s.text, x, y, width, pathview.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

// Line returns the help as plain text, fitted into width cells. A width of
// zero or less does not limit the line.
func (h *Help) Line(width int) string {
	var b strings.Builder
	for _, s := range h.segments(width) {
		b.WriteString(s.text)
	}
	return b.String()
}

type segment struct {
	text  string
	style tcell.Style
}

// segments lays out as many enabled bindings as fit into width, followed by
// the ellipsis when some were dropped and it fits.
func (h *Help) segments(width int) []segment {
	if h.keyMap == nil {
		return nil
	}

	var out []segment
	for _, kb := range h.keyMap.ShortHelp() {
		if !kb.Enabled() {
			continue
		}
		item := itemSegments(kb.Help(), h.Styles)
		if len(item) == 0 {
			continue
		}

		candidate := out
		if len(out) > 0 {
			candidate = append(candidate, segment{text: h.separator, style: h.Styles.Separator})
		}
		candidate = append(candidate, item...)
		if width > 0 && segmentsWidth(candidate) > width {
			tail := []segment{{text: " " + h.ellipsis, style: h.Styles.Ellipsis}}
			if h.ellipsis != "" && len(out) > 0 && segmentsWidth(out)+segmentsWidth(tail) <= width {
				out = append(out, tail...)
			}
			return out
		}
		out = candidate
	}
	return out
}

func itemSegments(help keybind.Help, styles Styles) []segment {
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: styles.Desc}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: styles.Key}}
	}
	return []segment{
		{text: help.Key, style: styles.Key},
		{text: " " + help.Desc, style: styles.Desc},
	}
}

func segmentsWidth(segments []segment) int {
	width := 0
	for _, s := range segments {
		width += pathview.TextWidth(s.text)
	}
	return width
}
