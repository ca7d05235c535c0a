// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
//
// On error nothing is changed. Call it from the goroutine that renders.
func ApplyTheme(cfg ThemeConfig) error {
	colors, err := ResolveColors(cfg)
	if err != nil {
		return err
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// ResolveColors computes the final token colors for cfg without applying them.
func ResolveColors(cfg ThemeConfig) (map[ColorToken]string, error) {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return nil, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return nil, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}
	return colors, nil
}

func applyColors(colors map[ColorToken]string) {
	// Helper to create adaptive color (uses same color for both modes)
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	if c, ok := colors[TokenClockRunning]; ok {
		ClockRunningColor = makeColor(c)
	}
	if c, ok := colors[TokenClockStopped]; ok {
		ClockStoppedColor = makeColor(c)
	}
	if c, ok := colors[TokenClockDone]; ok {
		ClockDoneColor = makeColor(c)
	}
	if c, ok := colors[TokenActionArrow]; ok {
		ActionArrowColor = makeColor(c)
	}
	if c, ok := colors[TokenActionShortcut]; ok {
		ActionShortcutColor = makeColor(c)
	}
	if c, ok := colors[TokenActionDescription]; ok {
		ActionDescriptionColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusText]; ok {
		StatusTextColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	ClockRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(ClockRunningColor)
	ClockStoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(ClockStoppedColor)
	ClockDoneStyle = lipgloss.NewStyle().Bold(true).Foreground(ClockDoneColor).Blink(true)

	ActionArrowStyle = lipgloss.NewStyle().Foreground(ActionArrowColor)
	ActionShortcutStyle = lipgloss.NewStyle().Bold(true).Foreground(ActionShortcutColor)
	ActionDescriptionStyle = lipgloss.NewStyle().Foreground(ActionDescriptionColor)

	StatusTextStyle = lipgloss.NewStyle().Italic(true).Foreground(StatusTextColor)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
