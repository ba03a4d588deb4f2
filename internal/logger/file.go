package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/Sysinternals-jcd/internal/filelock"
)

// FileLogger appends diagnostics to a single log file shared by every jcd
// invocation. Each line carries a short invocation id so interleaved runs
// (one process per keypress) can be told apart. Appends are serialized
// across processes with an advisory file lock.
type FileLogger struct {
	path   string
	out    *filelock.Appender
	min    Level
	runID  string
	mu     sync.Mutex
	failed bool
}

// NewFileLogger creates a FileLogger appending to path at the given level.
// The file and its directory are created lazily on the first logged line.
func NewFileLogger(path string, logLevel string) *FileLogger {
	fl := &FileLogger{
		path:  path,
		min:   ParseLevel(logLevel),
		runID: uuid.New().String()[:8],
	}
	if path != "" {
		fl.out = filelock.NewAppender(path)
	}
	return fl
}

// RunID returns the invocation id written on every line.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the log file path.
func (fl *FileLogger) Path() string {
	return fl.path
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) {
	fl.write(LevelTrace, message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.write(LevelDebug, message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.write(LevelInfo, message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.write(LevelWarn, message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.write(LevelError, message)
}

// write appends one line.
// Format: "<RFC3339> [<run id>] [LEVEL] <message>"
// After the first write failure the logger goes quiet; logging must never
// change the outcome of a search.
func (fl *FileLogger) write(level Level, message string) {
	if fl.out == nil || level < fl.min {
		return
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.failed {
		return
	}

	line := fmt.Sprintf("%s [%s] [%s] %s\n", time.Now().Format(time.RFC3339), fl.runID, level.tag(), message)
	if err := fl.out.Append([]byte(line)); err != nil {
		fl.failed = true
	}
}
