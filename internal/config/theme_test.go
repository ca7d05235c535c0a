package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pomo/internal/ui/styles"
)

// loadConfigFromYAML writes yaml to a temp file and loads it.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	return cfg
}

// TestThemeConfig_WithPreset tests loading a config file with a preset.
func TestThemeConfig_WithPreset(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: catppuccin-mocha
`)
	require.Equal(t, "catppuccin-mocha", cfg.Theme.Preset)
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })

	require.NoError(t, styles.ApplyTheme(cfg.Theme.Styles()))
	// Catppuccin Mocha uses #A6E3A1 (green) for a running clock
	require.Equal(t, "#A6E3A1", styles.ClockRunningColor.Dark)
}

// TestThemeConfig_DotNotationColors tests quoted dot-notation color keys.
func TestThemeConfig_DotNotationColors(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  colors:
    "clock.running": "#FF0000"
    "action.shortcut": "#00FF00"
`)
	colors := cfg.Theme.FlattenedColors()
	require.Equal(t, "#FF0000", colors["clock.running"])
	require.Equal(t, "#00FF00", colors["action.shortcut"])
	require.NoError(t, ValidateTheme(cfg.Theme))
}

// TestThemeConfig_NestedColors tests nested YAML color keys.
func TestThemeConfig_NestedColors(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nord
  colors:
    clock:
      done: "#0000FF"
    status:
      text: "#FFFFFF"
`)
	colors := cfg.Theme.FlattenedColors()
	require.Equal(t, "#0000FF", colors["clock.done"])
	require.Equal(t, "#FFFFFF", colors["status.text"])

	themeCfg := cfg.Theme.Styles()
	require.Equal(t, "nord", themeCfg.Preset)
	require.Len(t, themeCfg.Colors, 2)
}

func TestValidateTheme(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Preset: "dracula"}))

	err := ValidateTheme(ThemeConfig{Preset: "solarized"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")

	err = ValidateTheme(ThemeConfig{Colors: map[string]any{"text.primary": "#FFFFFF"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")

	err = ValidateTheme(ThemeConfig{Colors: map[string]any{"clock": map[string]any{"done": "red"}}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid hex color")
}

func TestFlattenColors_MapAnyAny(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"action": map[any]any{"arrow": "#111111", 7: "ignored"},
	}}
	require.Equal(t, map[string]string{"action.arrow": "#111111"}, theme.FlattenedColors())
}
