// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Clock colors
	ClockRunningColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Counting
	ClockStoppedColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Paused by the user
	ClockDoneColor    = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Sitting on a boundary

	// Action line colors
	ActionArrowColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	ActionShortcutColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ActionDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	StatusTextColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	ClockRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(ClockRunningColor)
	ClockStoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(ClockStoppedColor)
	ClockDoneStyle    = lipgloss.NewStyle().Bold(true).Foreground(ClockDoneColor).Blink(true)

	ActionArrowStyle       = lipgloss.NewStyle().Foreground(ActionArrowColor)
	ActionShortcutStyle    = lipgloss.NewStyle().Bold(true).Foreground(ActionShortcutColor)
	ActionDescriptionStyle = lipgloss.NewStyle().Foreground(ActionDescriptionColor)

	StatusTextStyle = lipgloss.NewStyle().Italic(true).Foreground(StatusTextColor)
)
