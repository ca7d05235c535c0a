package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/pomo/internal/app"
	"github.com/zjrosen/pomo/internal/config"
	"github.com/zjrosen/pomo/internal/keys"
	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/pomodoro"
	"github.com/zjrosen/pomo/internal/pubsub"
	"github.com/zjrosen/pomo/internal/scheduler"
	"github.com/zjrosen/pomo/internal/tracing"
	"github.com/zjrosen/pomo/internal/ui/styles"
	"github.com/zjrosen/pomo/internal/ui/timerview"
	"github.com/zjrosen/pomo/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "A terminal pomodoro timer",
	Long: `A terminal timer that counts down from 00:01:00 (or up to 23:59:59)
and reacts to single-key commands: stop, continue, reset and quit.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .pomo/config.yaml, then ~/.config/pomo/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log and show its latest entry (also POMO_DEBUG=1)")
	rootCmd.Flags().Bool("count-up", false,
		"count up from 00:00:00 instead of down from 00:01:00")

	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("count_up", rootCmd.Flags().Lookup("count-up"))
}

// loadConfig reads and validates the config at path, applying flag overrides.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if viper.GetBool("count_up") {
		cfg.Mode = "countup"
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	configPath := config.Locate(cfgFile)
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	debug := viper.GetBool("debug") || log.EnabledByEnv()
	if debug {
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return err
		}
		defer cleanup()
	}
	runID := uuid.NewString()
	log.Info(log.CatConfig, "Starting pomo", "run", runID, "config", configPath, "mode", cfg.Mode)

	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	tp, err := tracing.NewProvider(tracingConfig(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	keyMap, err := keys.DefaultKeyMap().WithOverrides(cfg.Keys.Overrides())
	if err != nil {
		return err
	}
	registry, err := keyMap.Registry()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := scheduler.NewBus()
	ticker := scheduler.NewTicker(bus)
	keyboard := scheduler.NewKeyboard(bus)
	controller := pomodoro.New(registry, ticker, cfg.Direction())

	frames := pubsub.NewBroker[timerview.Frame]()
	defer frames.Close()
	publisher := app.NewFramePublisher(controller, frames)
	loop := scheduler.NewLoop(bus, controller, publisher, scheduler.WithTracer(tp.Tracer()))

	appCfg := app.Config{
		Keyboard: keyboard,
		KeyMap:   keyMap,
		Frames:   frames,
		Initial:  publisher.Current(),
		View:     timerview.Options{ShowState: cfg.UI.ShowState},
		Debug:    debug,
	}
	if w := startWatcher(configPath); w != nil {
		defer func() { _ = w.Stop() }()
		appCfg.ConfigEvents = w.Broker()
		appCfg.Reload = reloader(configPath)
	}

	model := app.New(appCfg)
	defer func() { _ = model.Close() }()

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)

	s := session{bus: bus, ticker: ticker, keyboard: keyboard, loop: loop}
	err = s.run(ctx, p)
	log.Info(log.CatSched, "Stopped", "run", runID, "handled", loop.Handled(), "clock", controller.Clock().String())
	return err
}

// startWatcher watches path for edits. Returns nil when there is no config
// file or the watcher cannot start; pomo then runs without live reload.
func startWatcher(path string) *watcher.Watcher {
	if path == "" {
		return nil
	}
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatcher, "Config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Config watcher failed to start", "error", err)
		_ = w.Stop()
		return nil
	}
	return w
}

// reloader re-reads the settings that may change while pomo runs.
func reloader(path string) app.ReloadFunc {
	return func() (app.Settings, error) {
		cfg, err := loadConfig(path)
		if err != nil {
			return app.Settings{}, err
		}
		return app.Settings{
			Theme: cfg.Theme.Styles(),
			View:  timerview.Options{ShowState: cfg.UI.ShowState},
		}, nil
	}
}

func tracingConfig(t config.TracingConfig) tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = t.Enabled
	tc.Exporter = t.Exporter
	tc.FilePath = t.FilePath
	tc.SampleRate = t.SampleRate
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tc
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
