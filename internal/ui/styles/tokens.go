// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Clock face, by timer state
	TokenClockRunning ColorToken = "clock.running"
	TokenClockStopped ColorToken = "clock.stopped"
	TokenClockDone    ColorToken = "clock.done"

	// Action lines
	TokenActionArrow       ColorToken = "action.arrow"
	TokenActionShortcut    ColorToken = "action.shortcut"
	TokenActionDescription ColorToken = "action.description"

	// Status word next to the clock
	TokenStatusText ColorToken = "status.text"
)

// AllTokens returns every themeable token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenClockRunning,
		TokenClockStopped,
		TokenClockDone,
		TokenActionArrow,
		TokenActionShortcut,
		TokenActionDescription,
		TokenStatusText,
	}
}
