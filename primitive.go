package pathview

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// Primitive is the top-most interface for all graphical primitives, including
// the items a PathView places along its path.
type Primitive interface {
	// Draw draws this primitive onto the screen.
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)
	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler receives key events when this primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler receives mouse events. The returned capture primitive (if
	// non-nil) receives follow-up mouse events until the capture is released.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)

	// HasFocus determines if the primitive has focus. This function must return
	// true also if one of this primitive's child elements has focus.
	HasFocus() bool
	// Focus is called by the application when the primitive receives focus.
	// Implementers may call delegate() to pass the focus on to another primitive.
	Focus(delegate func(p Primitive))
	// Blur is called by the application when the primitive loses focus.
	Blur()
}

// MouseUngrabber is implemented by primitives that want to know when a mouse
// gesture they were receiving is taken away from them, either by the
// application or by a parent that steals the gesture.
type MouseUngrabber interface {
	MouseUngrab()
}

// MouseGrabKeeper is implemented by primitives that refuse to give up a
// gesture once they received its press. A PathView never steals a drag from
// an item whose KeepsMouseGrab returns true.
type MouseGrabKeeper interface {
	KeepsMouseGrab() bool
}

// Animator is implemented by primitives with running animations. The
// application calls Animate once per frame while the primitive is registered;
// it returns whether another frame is needed.
type Animator interface {
	Animate(now time.Time) bool
}
