package logger

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger is a small per-component console logger. Each subsystem creates
// its own instance with New so every line carries the component name.
type Logger struct {
	component string
}

// Emoji constants
const (
	infoEmoji    = "ℹ️ "
	successEmoji = "✅ "
	warnEmoji    = "⚠️ "
	errorEmoji   = "❌ "
	debugEmoji   = "🔍 "
)

func New(component string) *Logger {
	return &Logger{
		component: component,
	}
}

func (l *Logger) formatMessage(level, emoji, msg string) string {
	_, file, line, _ := runtime.Caller(2)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fileName := filepath.Base(file)

	return fmt.Sprintf("%s | %s | %s | %s:%d | %s | %s",
		emoji,
		timestamp,
		level,
		fileName,
		line,
		l.component,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	formatted := l.formatMessage("INFO", infoEmoji, fmt.Sprintf(msg, args...))
	color.Cyan(formatted)
}

func (l *Logger) Success(msg string, args ...interface{}) {
	formatted := l.formatMessage("SUCCESS", successEmoji, fmt.Sprintf(msg, args...))
	color.Green(formatted)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	formatted := l.formatMessage("WARN", warnEmoji, fmt.Sprintf(msg, args...))
	color.Yellow(formatted)
}

// Error logs the message with the cause appended and returns it wrapped
// around err so callers can log and propagate in one statement. The error
// stays out of the format args, so messages need no trailing verb.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	line := fmt.Sprintf(msg, args...)
	display := line
	if err != nil {
		display = line + ": " + err.Error()
	}
	color.Red(l.formatMessage("ERROR", errorEmoji, display))
	if err == nil {
		return errors.New(line)
	}
	return fmt.Errorf("%s: %w", line, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	formatted := l.formatMessage("DEBUG", debugEmoji, fmt.Sprintf(msg, args...))
	color.Magenta(formatted)
}
