// Package keybind matches key events against configurable bindings.
//
// Keys are written the way tcell names them, lower-cased, with modifiers
// joined by "+": "ctrl+a", "alt+shift+left", "esc". Single printable
// characters keep their case, so "g" and "G" are different bindings.
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of keys that trigger the same action, together with the
// text shown for it in help.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the binding switched off.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = normalizeKeys(keys)
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the binding has keys and is not switched off.
// Disabled bindings never match and are left out of help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Help is the text of a binding in help output.
type Help struct {
	Key  string
	Desc string
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}

	key := eventKeyString(event)
	if key == "" {
		return false
	}
	for _, kb := range keybinds {
		if kb.Enabled() && slices.Contains(kb.keys, key) {
			return true
		}
	}
	return false
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" && !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}

// modifierOrder fixes the order modifiers are written in, so "shift+ctrl+x"
// and "ctrl+shift+x" normalize to the same string.
var modifierOrder = []string{"ctrl", "alt", "shift", "meta"}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"meta":    "meta",
}

var primaryAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

func normalizeKey(key string) string {
	mods := make(map[string]bool, len(modifierOrder))
	primary := ""
	for _, part := range strings.Split(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod, ok := modifierAliases[strings.ToLower(part)]; ok {
			mods[mod] = true
			continue
		}
		primary = normalizePrimaryKey(part)
	}
	if primary == "" {
		return ""
	}

	if primary == "backtab" {
		mods["shift"] = true
		primary = "tab"
	}
	if len(mods) > 0 && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}
	return joinKey(mods, primary)
}

func normalizePrimaryKey(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) > len("Rune[]") {
		return key[len("Rune[") : len(key)-1]
	}
	if len([]rune(key)) == 1 {
		return key
	}

	key = strings.ToLower(key)
	if alias, ok := primaryAliases[key]; ok {
		return alias
	}
	if rest, ok := strings.CutPrefix(key, "ctrl-"); ok && rest != "" {
		return "ctrl+" + rest
	}
	return key
}

func joinKey(mods map[string]bool, primary string) string {
	parts := make([]string, 0, len(mods)+1)
	for _, mod := range modifierOrder {
		if mods[mod] {
			parts = append(parts, mod)
		}
	}
	return strings.Join(append(parts, primary), "+")
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary := keyNames[key]
	if primary == "" && key == tcell.KeyRune {
		primary = event.Str()
	}
	if primary == "" {
		return normalizeKey(event.Name())
	}

	mods := make(map[string]bool, len(modifierOrder))
	m := event.Modifiers()
	mods["ctrl"] = m&tcell.ModCtrl != 0
	mods["alt"] = m&tcell.ModAlt != 0
	mods["shift"] = m&tcell.ModShift != 0
	mods["meta"] = m&tcell.ModMeta != 0
	for mod, set := range mods {
		if !set {
			delete(mods, mod)
		}
	}
	// "shift+tab" already carries its modifier.
	if strings.Contains(primary, "+") {
		return primary
	}
	return joinKey(mods, primary)
}
