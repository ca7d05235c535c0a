// Package app contains the root application model.
package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/pomo/internal/keys"
	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/pubsub"
	"github.com/zjrosen/pomo/internal/scheduler"
	"github.com/zjrosen/pomo/internal/ui/styles"
	"github.com/zjrosen/pomo/internal/ui/timerview"
	"github.com/zjrosen/pomo/internal/watcher"
)

// Presser receives key presses. *scheduler.Keyboard implements it.
type Presser interface {
	Press(ctx context.Context, k scheduler.Key) error
}

// Settings are the parts of the config that can change while running.
type Settings struct {
	Theme styles.ThemeConfig
	View  timerview.Options
}

// ReloadFunc re-reads the config file after the watcher reports a change.
type ReloadFunc func() (Settings, error)

// Config wires the model to the rest of the program.
type Config struct {
	Keyboard Presser
	KeyMap   keys.KeyMap

	// Frames carries snapshots published by the scheduler loop.
	Frames *pubsub.Broker[timerview.Frame]
	// Initial is drawn until the first frame arrives.
	Initial timerview.Frame
	View    timerview.Options

	// ConfigEvents and Reload are optional. Both must be set for live reload.
	ConfigEvents *pubsub.Broker[watcher.Event]
	Reload       ReloadFunc

	// Debug shows the latest log entry below the timer.
	Debug bool
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	keyboard Presser
	keyMap   keys.KeyMap

	frames  *pubsub.ContinuousListener[timerview.Frame]
	configs *pubsub.ContinuousListener[watcher.Event]
	logs    *log.LogListener
	reload  ReloadFunc

	frame timerview.Frame
	view  timerview.Options

	width  int
	height int

	debugMode bool
	lastLog   string
	inputDone bool
}

// New creates the model and subscribes to its brokers. Subscribing happens
// here, not in Init, so frames published before the program starts are kept.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		keyboard:  cfg.Keyboard,
		keyMap:    cfg.KeyMap,
		frame:     cfg.Initial,
		view:      cfg.View,
		reload:    cfg.Reload,
		debugMode: cfg.Debug,
	}
	if cfg.Frames != nil {
		m.frames = pubsub.NewLatestListener(ctx, cfg.Frames)
	}
	if cfg.ConfigEvents != nil && cfg.Reload != nil {
		m.configs = pubsub.NewContinuousListener(ctx, cfg.ConfigEvents)
	}
	if cfg.Debug {
		m.logs = log.NewListener(ctx)
	}
	return m
}

// Init implements tea.Model. It starts every listener.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.frames != nil {
		cmds = append(cmds, m.frames.Listen())
	}
	if m.configs != nil {
		cmds = append(cmds, m.configs.Listen())
	}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pubsub.Event[timerview.Frame]:
		// Sequence numbers only grow, a stale frame is never drawn over a newer one.
		if msg.Payload.Seq >= m.frame.Seq {
			m.frame = msg.Payload
		}
		return m, m.frames.Listen()

	case pubsub.Event[watcher.Event]:
		switch msg.Payload.Type {
		case watcher.ConfigChanged:
			m = m.applyReload()
		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
		}
		return m, m.configs.Listen()

	case pubsub.Event[string]:
		m.lastLog = strings.TrimSpace(msg.Payload)
		return m, m.logs.Listen()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputDone || m.keyboard == nil {
		return m, nil
	}

	k := TranslateKey(msg, m.keyMap)
	if err := m.keyboard.Press(m.ctx, k); err != nil {
		// The loop is gone. Quitting here also covers a loop that ended
		// without the program being told.
		log.Debug(log.CatUI, "Key not delivered, input closed", "key", msg.String(), "error", err)
		m.inputDone = true
		return m, tea.Quit
	}
	return m, nil
}

// applyReload swaps theme and view options for the reloaded ones. A broken
// config keeps the current settings.
func (m Model) applyReload() Model {
	settings, err := m.reload()
	if err != nil {
		log.Warn(log.CatConfig, "Config reload failed, keeping current settings", "error", err)
		return m
	}
	if err := styles.ApplyTheme(settings.Theme); err != nil {
		log.Warn(log.CatConfig, "Theme reload failed", "error", err)
	}
	m.view = settings.View
	log.Info(log.CatConfig, "Config reloaded", "show_state", settings.View.ShowState, "preset", settings.Theme.Preset)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	height := m.height
	if m.debugMode && m.lastLog != "" && height > 1 {
		height--
	}

	view := timerview.Render(m.frame.Snapshot, m.width, height, m.view)

	if m.debugMode && m.lastLog != "" {
		line := m.lastLog
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		view += "\n" + styles.StatusTextStyle.Render(line)
	}
	return view
}

// Frame returns the frame currently drawn.
func (m Model) Frame() timerview.Frame {
	return m.frame
}

// Close stops every listener.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

// TranslateKey maps a terminal key message to a scheduler key. The interrupt
// binding is checked first. Only a single unmodified character becomes a rune.
func TranslateKey(msg tea.KeyMsg, km keys.KeyMap) scheduler.Key {
	if key.Matches(msg, km.Interrupt) {
		return scheduler.Key{Kind: scheduler.KeyInterrupt}
	}
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
		return scheduler.Key{Kind: scheduler.KeyRune, Rune: msg.Runes[0]}
	}
	return scheduler.Key{Kind: scheduler.KeyOther}
}
