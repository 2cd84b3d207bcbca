// Package log is a small leveled file logger for the TUI. The terminal
// is owned by the renderer, so nothing is ever written to stdout or
// stderr; logging is disabled entirely until Init points it at a file.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level controls which messages are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelOff
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
		return "OFF"
	}
}

// ParseLevel maps a config string to a Level. Unknown strings disable
// logging rather than erroring; a bad log config must not stop the app.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return levelOff
	}
}

type logger struct {
	mu    sync.Mutex
	out   *os.File
	level Level
}

var std = logger{level: levelOff}

// Init opens (or creates) the log file and enables logging at the given
// level. It also routes Bubble Tea's own log output to the same file so
// renderer diagnostics end up in one place.
func Init(path string, level Level) error {
	if path == "" || level >= levelOff {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.out != nil {
		std.out.Close()
	}
	std.out = f
	std.level = level
	return nil
}

// Close flushes and disables logging.
func Close() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.out != nil {
		std.out.Close()
		std.out = nil
	}
	std.level = levelOff
}

// Enabled reports whether a message at the given level would be written.
func Enabled(level Level) bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.out != nil && level >= std.level
}

func Debug(msg string, kv ...any) { std.write(LevelDebug, msg, kv...) }
func Info(msg string, kv ...any)  { std.write(LevelInfo, msg, kv...) }
func Warn(msg string, kv ...any)  { std.write(LevelWarn, msg, kv...) }
func Error(msg string, kv ...any) { std.write(LevelError, msg, kv...) }

// Err logs an error with its message attached as a field.
func Err(msg string, err error, kv ...any) {
	if err == nil {
		return
	}
	std.write(LevelError, msg, append(kv, "err", err.Error())...)
}

// write formats "2006-01-02 15:04:05.000 LEVEL msg k=v k=v". Fields are
// passed as alternating key/value pairs; a trailing odd value is kept
// rather than dropped.
func (l *logger) write(level Level, msg string, kv ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || level < l.level {
		return
	}
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf("%-5s", level))
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, " %v", kv[i])
		}
	}
	b.WriteByte('\n')
	l.out.WriteString(b.String())
}
