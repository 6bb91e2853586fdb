package help

import (
	"github.com/gdamore/tcell/v3"
)

// Styles holds the styles of the parts of a help line.
type Styles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
	Ellipsis  tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		Key:       dim,
		Desc:      tcell.StyleDefault,
		Separator: dim,
		Ellipsis:  dim,
	}
}
