package action

import "fmt"

// Registry is an ordered, immutable set of actions with unique shortcuts.
type Registry struct {
	actions []Action
}

// NewRegistry builds a registry from actions in the given order.
// A repeated or unprintable shortcut is a construction error.
func NewRegistry(actions ...Action) (*Registry, error) {
	seen := make(map[rune]Action, len(actions))
	for _, a := range actions {
		if !validShortcut(a.Shortcut) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidShortcut, a.Shortcut, a.Kind)
		}
		if prev, ok := seen[a.Shortcut]; ok {
			return nil, fmt.Errorf("%w: %q is bound to both %q and %q",
				ErrDuplicateShortcut, a.Shortcut, prev.Description, a.Description)
		}
		seen[a.Shortcut] = a
	}

	owned := make([]Action, len(actions))
	copy(owned, actions)
	return &Registry{actions: owned}, nil
}

// Lookup returns the first action bound to r.
func (r *Registry) Lookup(key rune) (Action, bool) {
	for _, a := range r.actions {
		if a.Shortcut == key {
			return a, true
		}
	}
	return Action{}, false
}

// All returns a copy of the actions in registration order.
func (r *Registry) All() []Action {
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}
