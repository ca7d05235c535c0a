// Package action defines the timer's keyboard commands and the ordered
// registry that maps a shortcut to one of them.
package action

import (
	"errors"
	"fmt"
	"unicode"
)

// Kind is the command an Action performs. The controller switches on it.
type Kind int

const (
	Stop Kind = iota
	Resume
	Reset
	Quit
)

func (k Kind) String() string {
	switch k {
	case Stop:
		return "stop"
	case Resume:
		return "resume"
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrDuplicateShortcut is returned when two actions claim the same key.
	ErrDuplicateShortcut = errors.New("duplicate shortcut")

	// ErrInvalidShortcut is returned for a zero, control or whitespace key.
	ErrInvalidShortcut = errors.New("invalid shortcut")
)

// Action binds a single-character shortcut to a command.
type Action struct {
	Kind        Kind
	Shortcut    rune
	Description string
}

// String renders the action as shown on screen: "→ (s) stop".
func (a Action) String() string {
	return fmt.Sprintf("→ (%c) %s", a.Shortcut, a.Description)
}

func validShortcut(r rune) bool {
	return r != 0 && r != unicode.ReplacementChar && unicode.IsPrint(r) && !unicode.IsSpace(r)
}

// Defaults returns the standard action set in display order.
func Defaults() []Action {
	return []Action{
		{Kind: Stop, Shortcut: 's', Description: "stop"},
		{Kind: Resume, Shortcut: 'c', Description: "continue"},
		{Kind: Reset, Shortcut: 'r', Description: "reset"},
		{Kind: Quit, Shortcut: 'q', Description: "quit"},
	}
}
