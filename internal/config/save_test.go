package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValue_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SetValue(configPath, "mode", "countup"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: countup")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "countup", cfg.Mode)
}

func TestSetValue_PreservesComments(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SetValue(configPath, "keys.stop", "p"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# pomo configuration")
	assert.Contains(t, content, "# suspend the clock", "line comment on the replaced value survives")
	assert.Contains(t, content, "resume: c")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "p", cfg.Keys.Stop)
	require.Equal(t, "c", cfg.Keys.Resume)
}

func TestSetValue_TypedValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(configPath, "ui.show_state", "false"))
	require.NoError(t, SetValue(configPath, "tracing.enabled", "true"))
	require.NoError(t, SetValue(configPath, "tracing.sample_rate", "0.25"))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowState)
	require.True(t, cfg.UI.AltScreen)
	require.True(t, cfg.Tracing.Enabled)
	require.InDelta(t, 0.25, cfg.Tracing.SampleRate, 0.0001)

	err = SetValue(configPath, "ui.alt_screen", "maybe")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected true or false")

	err = SetValue(configPath, "tracing.sample_rate", "lots")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a number")
}

func TestSetValue_ThemeColor(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(configPath, "theme.colors.clock.running", "#FF0000"))
	require.NoError(t, SetValue(configPath, "theme.preset", "dracula"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clock.running: '#FF0000'")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "dracula", cfg.Theme.Preset)
	require.Equal(t, "#FF0000", cfg.Theme.FlattenedColors()["clock.running"])
}

func TestSetValue_RejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("mode: countdown\n"), 0o600))

	tests := []struct {
		name  string
		key   string
		value string
		msg   string
	}{
		{name: "unknown key", key: "duration", value: "25m", msg: "unknown config key"},
		{name: "bad mode", key: "mode", value: "sideways", msg: "mode must be"},
		{name: "duplicate key", key: "keys.reset", value: "s", msg: "duplicate shortcut"},
		{name: "long key", key: "keys.quit", value: "quit", msg: "single character"},
		{name: "bad color", key: "theme.colors.clock.done", value: "red", msg: "invalid hex color"},
		{name: "bad token", key: "theme.colors.text.primary", value: "#FFFFFF", msg: "unknown color token"},
		{name: "bad exporter", key: "tracing.exporter", value: "otlp", msg: "tracing.exporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetValue(configPath, tt.key, tt.value)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)

			data, err := os.ReadFile(configPath)
			require.NoError(t, err)
			require.Equal(t, "mode: countdown\n", string(data), "file untouched on error")
		})
	}
}

func TestSetValue_NonMappingParent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("keys: [s, c]\n"), 0o600))

	err := SetValue(configPath, "keys.stop", "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "keys is not a mapping")
}

func TestSetValue_NullParentBecomesMapping(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("# comment\nlog:\n"), 0o600))

	require.NoError(t, SetValue(configPath, "log.path", "/tmp/pomo.log"))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "/tmp/pomo.log", cfg.Log.Path)
}

func TestSetValue_KeyIsCaseInsensitive(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SetValue(configPath, "UI.Show_State", "false"))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowState)
}
