// Package config provides configuration types and defaults for pomo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/pomo/internal/clock"
	"github.com/zjrosen/pomo/internal/keys"
	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/ui/styles"
)

// LocalPath is the per-directory config file, checked before the user config.
const LocalPath = ".pomo/config.yaml"

// Config holds all configuration options for pomo.
type Config struct {
	Mode    string        `mapstructure:"mode"` // "countdown" (default) or "countup"
	Keys    KeysConfig    `mapstructure:"keys"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// KeysConfig rebinds the action shortcuts. Each value is a single character.
type KeysConfig struct {
	Stop   string `mapstructure:"stop"`
	Resume string `mapstructure:"resume"`
	Reset  string `mapstructure:"reset"`
	Quit   string `mapstructure:"quit"`
}

// Overrides converts the config to keymap overrides.
func (k KeysConfig) Overrides() keys.Overrides {
	return keys.Overrides{Stop: k.Stop, Resume: k.Resume, Reset: k.Reset, Quit: k.Quit}
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowState bool `mapstructure:"show_state"` // Print running/paused/done after the clock
	AltScreen bool `mapstructure:"alt_screen"` // Draw in the alternate screen buffer
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     clock:
	//       running: "#00FF00"
	// Or quoted dot notation:
	//   colors:
	//     "clock.running": "#00FF00"
	Colors map[string]any `mapstructure:"colors"`
}

// Styles converts the theme to the form styles.ApplyTheme takes.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// LogConfig holds debug log options. Logging itself is enabled by --debug.
type LogConfig struct {
	// Path is the debug log file. Default: pomo-debug.log
	Path string `mapstructure:"path"`
}

// TracingConfig holds tracing configuration for the event loop.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/pomo/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Direction returns the clock direction for Mode.
func (c Config) Direction() clock.Direction {
	d, _ := clock.ParseDirection(c.Mode)
	return d
}

// UserConfigPath returns ~/.config/pomo/config.yaml, or "" without a home dir.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pomo", "config.yaml")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/pomo/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pomo", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Mode: "countdown",
		Keys: KeysConfig{Stop: "s", Resume: "c", Reset: "r", Quit: "q"},
		UI: UIConfig{
			ShowState: true,
			AltScreen: true,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "", // Derived from the home dir at runtime
			SampleRate: 1.0,
		},
	}
}

// SetDefaults registers Defaults() on v so absent keys keep their default.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("keys.stop", d.Keys.Stop)
	v.SetDefault("keys.resume", d.Keys.Resume)
	v.SetDefault("keys.reset", d.Keys.Reset)
	v.SetDefault("keys.quit", d.Keys.Quit)
	v.SetDefault("ui.show_state", d.UI.ShowState)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("theme.preset", d.Theme.Preset)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Locate picks the config file to read.
// Lookup order:
// 1. explicit (the --config flag), even if it does not exist yet
// 2. .pomo/config.yaml (current directory)
// 3. ~/.config/pomo/config.yaml (user config)
// Returns "" when no file exists; pomo then runs on defaults.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(LocalPath); err == nil {
		return LocalPath
	}
	if user := UserConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			return user
		}
	}
	return ""
}

// Load reads path over the defaults. An empty path yields Defaults().
// The result is not validated.
func Load(path string) (Config, error) {
	if path == "" {
		return decode(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return cfg, nil
}

func decode(data []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	SetDefaults(v)
	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Config{}, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section and joins the errors found.
func Validate(cfg Config) error {
	return errors.Join(
		ValidateMode(cfg.Mode),
		ValidateKeys(cfg.Keys),
		ValidateTheme(cfg.Theme),
		ValidateTracing(cfg.Tracing),
	)
}

// ValidateMode checks the counting direction.
func ValidateMode(mode string) error {
	if _, ok := clock.ParseDirection(mode); !ok {
		return fmt.Errorf("mode must be \"countdown\" or \"countup\", got %q", mode)
	}
	return nil
}

// ValidateKeys checks that every key is a single narrow character and that
// no two actions share one.
func ValidateKeys(k KeysConfig) error {
	km, err := keys.DefaultKeyMap().WithOverrides(k.Overrides())
	if err != nil {
		return err
	}
	if _, err := km.Registry(); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// ValidateTheme checks the preset name and color overrides.
func ValidateTheme(t ThemeConfig) error {
	if _, err := styles.ResolveColors(t.Styles()); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# pomo configuration

# Counting direction: "countdown" (from 00:01:00, stops at 00:00:00)
# or "countup" (from 00:00:00, stops at 23:59:59)
mode: countdown

# Action shortcuts. Each must be a single character and unique.
keys:
  stop: s      # suspend the clock
  resume: c    # continue after a stop
  reset: r     # back to the starting value
  quit: q      # exit (ctrl+c always quits too)

# UI settings
ui:
  show_state: true   # Show running/paused/done next to the clock
  alt_screen: true   # Use the alternate screen buffer

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default pomo theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   clock.running: "#73F59F"
  #   clock.stopped: "#FECA57"
  #   clock.done: "#FF8787"
  #   action.arrow: "#696969"
  #   action.shortcut: "#54A0FF"
  #   action.description: "#999999"
  #   status.text: "#696969"
  #
  # Theme changes are picked up while pomo is running.

# Debug log (written only with --debug or POMO_DEBUG=1)
# log:
#   path: pomo-debug.log

# Tracing of every handled tick and key press
# tracing:
#   enabled: false      # Enable/disable tracing (default: false)
#   exporter: file      # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/pomo/traces/traces.jsonl
#   sample_rate: 1.0    # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist. An existing file is left alone.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
