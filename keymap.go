package pathview

import (
	"github.com/ayn2op/pathview/keybind"
	"github.com/gdamore/tcell/v3"
)

// KeyMap holds the key bindings of a PathView.
type KeyMap struct {
	Next   keybind.Keybind
	Prev   keybind.Keybind
	First  keybind.Keybind
	Last   keybind.Keybind
	Cancel keybind.Keybind
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: keybind.NewKeybind(
			keybind.WithKeys("right", "l", "down", "j"),
			keybind.WithHelp("→/l", "next"),
		),
		Prev: keybind.NewKeybind(
			keybind.WithKeys("left", "h", "up", "k"),
			keybind.WithHelp("←/h", "previous"),
		),
		First: keybind.NewKeybind(
			keybind.WithKeys("home", "g"),
			keybind.WithHelp("home", "first"),
		),
		Last: keybind.NewKeybind(
			keybind.WithKeys("end", "G"),
			keybind.WithHelp("end", "last"),
		),
		Cancel: keybind.NewKeybind(
			keybind.WithKeys("esc"),
			keybind.WithHelp("esc", "stop"),
		),
	}
}

// ShortHelp returns the bindings shown in one-line help.
func (k KeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Prev, k.Next, k.First, k.Last}
}

// InputHandler moves the current index with the keyboard.
func (p *PathView) InputHandler(event *tcell.EventKey) Command {
	if p.model == nil || p.modelCount == 0 {
		return nil
	}

	switch {
	case keybind.Matches(event, p.keys.Next):
		p.IncrementCurrentIndex()
	case keybind.Matches(event, p.keys.Prev):
		p.DecrementCurrentIndex()
	case keybind.Matches(event, p.keys.First):
		p.SetCurrentIndex(0)
	case keybind.Matches(event, p.keys.Last):
		p.SetCurrentIndex(p.modelCount - 1)
	case keybind.Matches(event, p.keys.Cancel):
		if !p.tl.IsActive() && !p.gesture.tracking {
			return nil
		}
		p.tl.Clear()
		p.MouseUngrab()
		p.fixOffset()
		if !p.tl.IsActive() {
			p.movementEnding()
		}
	default:
		return nil
	}
	return p.animate(RedrawCommand{})
}
