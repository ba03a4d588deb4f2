// Package logger provides the diagnostic loggers used by jcd.
//
// Diagnostics never go to stdout: stdout carries exactly the selected path.
// ConsoleLogger writes leveled lines to stderr, FileLogger appends them to a
// shared log file, and MultiLogger fans out to both.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Lines below the minimum level are dropped. Level tags are colored when the
// writer is a terminal and NO_COLOR is unset. Safe for concurrent use.
type ConsoleLogger struct {
	mu    sync.Mutex
	w     io.Writer
	min   Level
	color bool
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards everything.
// level is parsed with ParseLevel.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		w:     w,
		min:   ParseLevel(level),
		color: wantsColor(w),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// wantsColor reports whether w should receive ANSI colors.
// NO_COLOR and TERM=dumb are honored through fatih/color's detection.
func wantsColor(w io.Writer) bool {
	return !color.NoColor && IsTerminal(w)
}

// Level returns the minimum level name.
func (cl *ConsoleLogger) Level() string {
	return cl.min.String()
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) { cl.write(LevelTrace, message) }

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) { cl.write(LevelDebug, message) }

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) { cl.write(LevelInfo, message) }

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) { cl.write(LevelWarn, message) }

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) { cl.write(LevelError, message) }

func (cl *ConsoleLogger) write(level Level, message string) {
	if cl.w == nil || level < cl.min {
		return
	}

	tag := level.tag()
	if cl.color {
		tag = level.coloredTag()
	}
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), tag, message)

	cl.mu.Lock()
	defer cl.mu.Unlock()
	_, _ = io.WriteString(cl.w, line)
}
