package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_Default(t *testing.T) {
	err := ApplyTheme(ThemeConfig{})
	require.NoError(t, err)
	// Should apply default preset colors
	require.Equal(t, DefaultPreset.Colors[TokenClockRunning], ClockRunningColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenClockRunning], ClockRunningColor.Light)
}

func TestApplyTheme_Preset(t *testing.T) {
	// First add a test preset
	TestPreset := Preset{
		Name:        "test",
		Description: "Test preset",
		Colors: map[ColorToken]string{
			TokenClockRunning: "#FF0000",
		},
	}
	Presets["test"] = TestPreset
	defer delete(Presets, "test")
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{Preset: "test"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", ClockRunningColor.Dark)
	// Tokens the preset leaves out keep the default.
	require.Equal(t, DefaultPreset.Colors[TokenClockDone], ClockDoneColor.Dark)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"clock.stopped": "#00FF00",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", ClockStoppedColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{
			"action.shortcut": "#123456",
		},
	})
	require.NoError(t, err)
	require.Equal(t, NordPreset.Colors[TokenClockRunning], ClockRunningColor.Dark)
	require.Equal(t, "#123456", ActionShortcutColor.Dark)
}

func TestApplyTheme_RebuildsStyles(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"clock.done": "#ABCDEF"}}))
	require.Equal(t, ClockDoneColor, ClockDoneStyle.GetForeground())
	require.True(t, ClockDoneStyle.GetBold())
}

func TestApplyTheme_InvalidPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Preset: "nonexistent"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyTheme_InvalidToken(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"text.primary": "#FF0000",
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")
}

func TestApplyTheme_InvalidHexColor(t *testing.T) {
	before := ClockRunningColor
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"clock.running": "green",
			"clock.stopped": "#00FF00",
		},
	})
	require.Error(t, err)
	require.Equal(t, before, ClockRunningColor, "failed apply changes nothing")
}

func TestResolveColors_CoversAllTokens(t *testing.T) {
	for _, name := range PresetNames() {
		colors, err := ResolveColors(ThemeConfig{Preset: name})
		require.NoError(t, err, name)
		for _, token := range AllTokens() {
			require.True(t, isValidHexColor(colors[token]), "%s: %s", name, token)
		}
	}
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		token ColorToken
		valid bool
	}{
		{TokenClockRunning, true},
		{TokenActionDescription, true},
		{"status.text", true},
		{"invalid.token", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			require.Equal(t, tt.valid, isValidToken(tt.token))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#ffffff", true},
		{"#123ABC", true},
		{"FFF", false},
		{"#FFFF", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
