package main

import (
	"fmt"

	"github.com/ayn2op/pathview"
	"github.com/ayn2op/pathview/curve"
	"github.com/ayn2op/pathview/delegate"
	"github.com/ayn2op/pathview/help"
	"github.com/ayn2op/pathview/keybind"
	"github.com/gdamore/tcell/v3"
)

type stageKeys struct {
	Insert   keybind.Keybind
	Remove   keybind.Keybind
	ShowPath keybind.Keybind
	Quit     keybind.Keybind
}

func defaultStageKeys() stageKeys {
	return stageKeys{
		Insert: keybind.NewKeybind(
			keybind.WithKeys("a", "insert"),
			keybind.WithHelp("a", "add"),
		),
		Remove: keybind.NewKeybind(
			keybind.WithKeys("x", "delete"),
			keybind.WithHelp("x", "remove"),
		),
		ShowPath: keybind.NewKeybind(
			keybind.WithKeys("t"),
			keybind.WithHelp("t", "trace"),
		),
		Quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
	}
}

// stage puts the view above a one-line help and edits the model from the
// keyboard.
type stage struct {
	*pathview.Box

	view  *pathview.PathView
	help  *help.Help
	model *delegate.Model[string]
	keys  stageKeys

	// shape is used when no path was loaded. It is rebuilt to fit the view.
	shape      string
	fitW, fitH int
	showPath   bool
	added      int
}

func newStage(view *pathview.PathView, model *delegate.Model[string], shape string, path curve.Curve) *stage {
	s := &stage{
		Box:   pathview.NewBox(),
		view:  view,
		help:  help.New(),
		model: model,
		keys:  defaultStageKeys(),
		shape: shape,
	}
	s.help.SetKeyMap(s)
	if path != nil {
		s.shape = ""
		view.SetPath(path)
	}
	view.SetModel(model)
	return s
}

// ShortHelp implements help.KeyMap.
func (s *stage) ShortHelp() []keybind.Keybind {
	return append(s.view.GetKeyMap().ShortHelp(), s.keys.Insert, s.keys.Remove, s.keys.ShowPath, s.keys.Quit)
}

func (s *stage) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	x, y, width, height := s.GetInnerRect()
	if height <= 0 {
		return
	}

	s.view.SetRect(x, y, width, height-1)
	s.fit()
	s.view.Draw(screen)

	s.help.SetRect(x, y+height-1, width, 1)
	s.help.Draw(screen)
}

// fit rebuilds the built-in path when the view changed size. Path
// coordinates are relative to the view's inner area.
func (s *stage) fit() {
	if s.shape == "" {
		return
	}
	_, _, w, h := s.view.GetInnerRect()
	if w == s.fitW && h == s.fitH {
		return
	}
	s.fitW, s.fitH = w, h
	s.view.SetPath(builtinPath(s.shape, float64(w), float64(h)))
}

// builtinPath returns a path filling a w×h area. The arc dims items near its
// ends through the opacity attribute.
func builtinPath(shape string, w, h float64) *curve.Path {
	const margin = 6
	if shape == "ellipse" {
		rx, ry := max(w/2-margin, 1), max(h/2-1, 1)
		return curve.Ellipse(w/2, h/2, rx, ry)
	}
	left, right, top, bottom := float64(margin), w-margin, 1.0, max(h-2, 1)
	return curve.NewPath(left, top).
		Attribute(pathview.OpacityAttribute, 0.2).
		QuadTo(left, bottom, w/2, bottom).
		Attribute(pathview.OpacityAttribute, 1).
		QuadTo(right, bottom, right, top).
		Attribute(pathview.OpacityAttribute, 0.2)
}

func (s *stage) InputHandler(event *tcell.EventKey) pathview.Command {
	switch {
	case keybind.Matches(event, s.keys.Quit):
		return pathview.QuitCommand{}
	case keybind.Matches(event, s.keys.Insert):
		s.added++
		at := max(s.view.GetCurrentIndex()+1, 0)
		s.model.Insert(at, fmt.Sprintf("new %d", s.added))
		return pathview.RedrawCommand{}
	case keybind.Matches(event, s.keys.Remove):
		if i := s.view.GetCurrentIndex(); i >= 0 {
			s.model.Remove(i, 1)
		}
		return pathview.RedrawCommand{}
	case keybind.Matches(event, s.keys.ShowPath):
		s.showPath = !s.showPath
		s.view.SetShowPath(s.showPath)
		return pathview.RedrawCommand{}
	}
	return s.view.InputHandler(event)
}

func (s *stage) MouseHandler(action pathview.MouseAction, event *tcell.EventMouse) (pathview.Primitive, pathview.Command) {
	if !s.view.InRect(event.Position()) {
		return nil, nil
	}
	return s.view.MouseHandler(action, event)
}

func (s *stage) Focus(delegate func(p pathview.Primitive)) {
	delegate(s.view)
}

func (s *stage) HasFocus() bool {
	return s.view.HasFocus()
}
