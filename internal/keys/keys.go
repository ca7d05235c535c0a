// Package keys contains keybinding definitions.
package keys

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/pomo/internal/action"
)

// ErrInvalidKey is returned for a configured key that is not a single
// narrow character.
var ErrInvalidKey = errors.New("invalid key")

// KeyMap defines the keybindings for the timer.
type KeyMap struct {
	Stop   key.Binding
	Resume key.Binding
	Reset  key.Binding
	Quit   key.Binding

	// Interrupt is not an action and cannot be rebound.
	Interrupt key.Binding
}

// Overrides replaces individual shortcuts. Empty fields keep the default.
type Overrides struct {
	Stop   string
	Resume string
	Reset  string
	Quit   string
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Resume: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// WithOverrides returns a copy of k with the non-empty overrides applied.
func (k KeyMap) WithOverrides(o Overrides) (KeyMap, error) {
	var err error
	if k.Stop, err = rebind(k.Stop, "stop", o.Stop); err != nil {
		return KeyMap{}, err
	}
	if k.Resume, err = rebind(k.Resume, "resume", o.Resume); err != nil {
		return KeyMap{}, err
	}
	if k.Reset, err = rebind(k.Reset, "reset", o.Reset); err != nil {
		return KeyMap{}, err
	}
	if k.Quit, err = rebind(k.Quit, "quit", o.Quit); err != nil {
		return KeyMap{}, err
	}
	return k, nil
}

func rebind(b key.Binding, name, value string) (key.Binding, error) {
	if value == "" {
		return b, nil
	}
	if _, err := ParseShortcut(value); err != nil {
		return b, fmt.Errorf("keys.%s: %w", name, err)
	}
	return key.NewBinding(
		key.WithKeys(value),
		key.WithHelp(value, b.Help().Desc),
	), nil
}

// ParseShortcut converts a configured key into its rune. The key must be a
// single printable character occupying one terminal cell.
func ParseShortcut(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q must be a single character", ErrInvalidKey, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || runewidth.RuneWidth(r) != 1 {
		return 0, fmt.Errorf("%w: %q must occupy one terminal cell", ErrInvalidKey, s)
	}
	return r, nil
}

// Actions converts the action bindings to registry entries in display order.
func (k KeyMap) Actions() ([]action.Action, error) {
	bindings := []struct {
		kind    action.Kind
		binding key.Binding
	}{
		{action.Stop, k.Stop},
		{action.Resume, k.Resume},
		{action.Reset, k.Reset},
		{action.Quit, k.Quit},
	}

	out := make([]action.Action, 0, len(bindings))
	for _, b := range bindings {
		keys := b.binding.Keys()
		if len(keys) == 0 {
			return nil, fmt.Errorf("%w: no key bound to %s", ErrInvalidKey, b.kind)
		}
		r, err := ParseShortcut(keys[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.kind, err)
		}
		out = append(out, action.Action{
			Kind:        b.kind,
			Shortcut:    r,
			Description: b.binding.Help().Desc,
		})
	}
	return out, nil
}

// Registry builds the action registry for k. Two actions sharing a key is
// an error.
func (k KeyMap) Registry() (*action.Registry, error) {
	actions, err := k.Actions()
	if err != nil {
		return nil, err
	}
	return action.NewRegistry(actions...)
}
