// Package filelock serializes appends to files shared by several jcd
// processes. Each keypress in the shell spawns a new invocation, so a debug
// log file can receive writes from overlapping processes.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a target path to name its lock file
const LockSuffix = ".lock"

// Appender appends whole records to one file under an exclusive advisory
// lock held on a sibling "<path>.lock" file. One Appender may be shared by
// goroutines; separate processes each use their own.
type Appender struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewAppender creates an Appender for path. Nothing is touched on disk
// until the first Append.
func NewAppender(path string) *Appender {
	return &Appender{
		path: path,
		lock: flock.New(path + LockSuffix),
	}
}

// Path returns the target file.
func (a *Appender) Path() string {
	return a.path
}

// Append writes data at the end of the file, creating the file and its
// parent directory as needed. The lock is released before Append returns.
func (a *Appender) Append(data []byte) error {
	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// flock is per handle, so goroutines sharing a handle need their own guard
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", a.lock.Path(), err)
	}
	defer a.lock.Unlock()

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", a.path, err)
	}
	return f.Close()
}

// LockAndAppend is a one-shot Append to path.
func LockAndAppend(path string, data []byte) error {
	return NewAppender(path).Append(data)
}
