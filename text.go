package pathview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Alignment controls where text is placed inside the width it may use.
type Alignment int

// Text alignments.
const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// grapheme is one user-perceived character and the cells it covers.
type grapheme struct {
	text  string
	width int

	// canBreak and mustBreak tell whether a line may or must end after the
	// grapheme.
	canBreak, mustBreak bool
}

func graphemes(text string) []grapheme {
	var out []grapheme
	state := -1
	for text != "" {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		line := boundaries & uniseg.MaskLine
		// The end of the text is not a break unless it ends in a newline.
		if text == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
			line = uniseg.LineDontBreak
		}
		out = append(out, grapheme{
			text:      cluster,
			width:     boundaries >> uniseg.ShiftWidth,
			canBreak:  line == uniseg.LineCanBreak,
			mustBreak: line == uniseg.LineMustBreak,
		})
	}
	return out
}

// TextWidth returns the number of cells text occupies on screen.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

// PrintWithStyle prints text on row y within the maxWidth cells starting at
// x. Text that does not fit is cut on the side away from the alignment; a
// centered text loses half the excess on each side. Cells keep their current
// background when style has none. It returns the bytes and cells printed.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (bytes, width int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	gs := graphemes(text)
	total := 0
	for _, g := range gs {
		total += g.width
	}
	first, last := 0, len(gs)
	if total > maxWidth {
		drop := 0
		switch alignment {
		case AlignmentRight:
			drop = total - maxWidth
		case AlignmentCenter:
			drop = (total - maxWidth) / 2
		}
		for ; drop > 0 && first < last; first++ {
			drop -= gs[first].width
			total -= gs[first].width
		}
		for total > maxWidth && last > first {
			last--
			total -= gs[last].width
		}
	}
	switch alignment {
	case AlignmentRight:
		x += maxWidth - total
	case AlignmentCenter:
		x += maxWidth/2 - total/2
	}

	keepBackground := style.GetBackground() == tcell.ColorDefault
	for _, g := range gs[first:last] {
		if x >= screenWidth {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if keepBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			// Blank the cells a wide grapheme covers before it claims them.
			for i := g.width - 1; i > 0; i-- {
				screen.Put(x+i, y, " ", cellStyle)
			}
			screen.Put(x, y, g.text, cellStyle)
		}
		x += g.width
		bytes += len(g.text)
		width += g.width
	}
	return bytes, width
}

// WordWrap splits text into lines no wider than width cells, breaking at the
// last opportunity uniseg allows and inside a word only when the word alone
// is too wide. Newlines always end a line and are dropped.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	start, end, lineWidth := 0, 0, 0
	// Byte offset and line width after the last optional break.
	breakAt, breakWidth := -1, 0
	for _, g := range graphemes(text) {
		if lineWidth+g.width > width {
			if breakAt < 0 {
				lines = append(lines, text[start:end])
				start, lineWidth = end, 0
			} else {
				lines = append(lines, text[start:breakAt])
				start, lineWidth = breakAt, lineWidth-breakWidth
			}
			breakAt = -1
		}

		end += len(g.text)
		lineWidth += g.width
		switch {
		case g.mustBreak:
			lines = append(lines, strings.TrimRight(text[start:end], "\n\r"))
			start, lineWidth, breakAt = end, 0, -1
		case g.canBreak:
			breakAt, breakWidth = end, lineWidth
		}
	}
	return append(lines, text[start:])
}
