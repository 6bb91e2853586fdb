package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Escape", "esc"},
		{"Return", "enter"},
		{"PageUp", "pgup"},
		{"shift+ctrl+X", "ctrl+shift+x"},
		{"Control + a", "ctrl+a"},
		{"Rune[q]", "q"},
		{"G", "G"},
		{"backtab", "shift+tab"},
		{"Ctrl-C", "ctrl+c"},
		{"  ", ""},
		{"ctrl+", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeKey(tt.in))
		})
	}
}

func TestNewKeybindDropsDuplicates(t *testing.T) {
	kb := NewKeybind(WithKeys("esc", "Escape", "", "q"))
	assert.Equal(t, []string{"esc", "q"}, kb.Keys())
}

func TestMatches(t *testing.T) {
	next := NewKeybind(WithKeys("right", "l"))
	last := NewKeybind(WithKeys("G"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRight, "", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "l", tcell.ModNone), next))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "L", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModNone), last))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "g", tcell.ModNone), last))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "l", tcell.ModNone), last, next))
	assert.False(t, Matches(nil, next))
}

func TestDisabledKeybind(t *testing.T) {
	kb := NewKeybind(WithKeys("esc"), WithHelp("esc", "stop"), WithDisabled())
	assert.False(t, kb.Enabled())
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyEscape, "", tcell.ModNone), kb))

	kb.SetEnabled(true)
	assert.True(t, kb.Enabled())
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyEscape, "", tcell.ModNone), kb))

	assert.False(t, NewKeybind(WithHelp("?", "nothing")).Enabled())
}

func TestSetKeysAndHelp(t *testing.T) {
	var kb Keybind
	kb.SetKeys("Home", "g")
	kb.SetHelp("home", "first")
	assert.Equal(t, []string{"home", "g"}, kb.Keys())
	assert.Equal(t, Help{Key: "home", Desc: "first"}, kb.Help())
}
