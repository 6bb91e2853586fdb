package pathview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	GraphicsColor            tcell.Color // Graphics, such as a traced path.
	PrimaryTextColor         tcell.Color // Primary text.

	CurrentItemTextColor       tcell.Color // Text of the current item on a path.
	CurrentItemBackgroundColor tcell.Color // Background of the current item on a path.
	HighlightColor             tcell.Color // The default path highlight marker.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	GraphicsColor:            color.Gray,
	PrimaryTextColor:         color.White,

	CurrentItemTextColor:       color.Black,
	CurrentItemBackgroundColor: color.Yellow,
	HighlightColor:             color.Yellow,
}
