// Package log provides structured debug logging for pomo.
// Output goes to a file opened through tea.LogToFile (the terminal belongs to
// the timer display) and is only enabled via --debug or POMO_DEBUG.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/pomo/internal/pubsub"
)

// DebugEnv is the environment variable that enables debug logging.
const DebugEnv = "POMO_DEBUG"

// DefaultPath is the log file used when no path is configured.
const DefaultPath = "pomo-debug.log"

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatClock   Category = "clock"   // Time arithmetic and boundaries
	CatTimer   Category = "timer"   // Controller state transitions
	CatSched   Category = "sched"   // Ticker, bus and consumer loop
	CatInput   Category = "input"   // Keyboard producer
	CatUI      Category = "ui"      // Rendering and the Bubble Tea model
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // Config file watcher
	CatTrace   Category = "trace"   // Tracing provider lifecycle
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	initMu        sync.Mutex
)

// EnabledByEnv reports whether POMO_DEBUG asks for debug logging.
func EnabledByEnv() bool {
	v := os.Getenv(DebugEnv)
	return v != "" && v != "0" && v != "false"
}

// Init opens path for appending and installs it as the global log sink.
// Returns a cleanup function that closes the file. Calling Init again
// replaces the previous sink.
func Init(path string) (func(), error) {
	if path == "" {
		path = DefaultPath
	}
	f, err := tea.LogToFile(path, "pomo")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	install(newLogger(f, f))
	return func() {
		initMu.Lock()
		defer initMu.Unlock()
		if defaultLogger != nil && defaultLogger.closer == f {
			defaultLogger.broker.Close()
			defaultLogger = nil
		}
		_ = f.Close()
	}, nil
}

// InitWriter installs w as the global log sink. Used by tests and by callers
// that already own an output stream.
func InitWriter(w io.Writer) {
	install(newLogger(w, nil))
}

func install(l *Logger) {
	initMu.Lock()
	defer initMu.Unlock()
	if defaultLogger != nil {
		defaultLogger.broker.Close()
	}
	defaultLogger = l
}

func newLogger(w io.Writer, c io.Closer) *Logger {
	return &Logger{
		closer:   c,
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// Reset removes the global logger. Subsequent log calls are no-ops.
func Reset() {
	install(nil)
}

func current() *Logger {
	initMu.Lock()
	defer initMu.Unlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2026-10-17T10:45:00 [DEBUG] [timer] message key=value key2=value2
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}

	l.broker.Publish(pubsub.LogEvent, entry)
}

// LogListener wraps a continuous listener for log entries.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a listener for log entries.
// Returns nil when logging is not initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
