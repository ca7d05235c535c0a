// Package styles contains Lip Gloss style definitions.
package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names sorted alphabetically.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset is the pomo color scheme (the Dark values in styles.go).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default pomo theme",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#73F59F",
		TokenClockStopped: "#FECA57",
		TokenClockDone:    "#FF8787",

		TokenActionArrow:       "#696969",
		TokenActionShortcut:    "#54A0FF",
		TokenActionDescription: "#999999",

		TokenStatusText: "#696969",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#A6E3A1", // green
		TokenClockStopped: "#F9E2AF", // yellow
		TokenClockDone:    "#F38BA8", // red

		TokenActionArrow:       "#6C7086", // overlay0
		TokenActionShortcut:    "#89B4FA", // blue
		TokenActionDescription: "#A6ADC8", // subtext0

		TokenStatusText: "#6C7086", // overlay0
	},
}

// CatppuccinLattePreset is the Catppuccin Latte palette.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#40A02B", // green
		TokenClockStopped: "#DF8E1D", // yellow
		TokenClockDone:    "#D20F39", // red

		TokenActionArrow:       "#9CA0B0", // overlay0
		TokenActionShortcut:    "#1E66F5", // blue
		TokenActionDescription: "#6C6F85", // subtext0

		TokenStatusText: "#9CA0B0", // overlay0
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#50FA7B", // green
		TokenClockStopped: "#F1FA8C", // yellow
		TokenClockDone:    "#FF5555", // red

		TokenActionArrow:       "#6272A4", // comment
		TokenActionShortcut:    "#BD93F9", // purple
		TokenActionDescription: "#F8F8F2", // foreground

		TokenStatusText: "#6272A4", // comment
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#A3BE8C", // aurora green
		TokenClockStopped: "#EBCB8B", // aurora yellow
		TokenClockDone:    "#BF616A", // aurora red

		TokenActionArrow:       "#4C566A", // polar night 4
		TokenActionShortcut:    "#88C0D0", // frost 2
		TokenActionDescription: "#D8DEE9", // snow storm 1

		TokenStatusText: "#4C566A", // polar night 4
	},
}

// HighContrastPreset favors legibility over aesthetics.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenClockRunning: "#00FF00",
		TokenClockStopped: "#FFFF00",
		TokenClockDone:    "#FF0000",

		TokenActionArrow:       "#FFFFFF", // no muted colors in high contrast
		TokenActionShortcut:    "#00FFFF",
		TokenActionDescription: "#FFFFFF",

		TokenStatusText: "#FFFFFF",
	},
}
