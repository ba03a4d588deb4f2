package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ListOptions configures how a directory's children are listed
type ListOptions struct {
	// FollowSymlinks reports symlinks that resolve to directories as subdirectories.
	// When false, symlinks are never treated as directories.
	FollowSymlinks bool
}

// Subdir is one immediate subdirectory of a listed directory
type Subdir struct {
	// Name is the entry name inside the parent directory
	Name string
	// Path is the parent path joined with Name (not symlink-resolved)
	Path string
	// Symlink is true when the entry is a symlink that resolves to a directory
	Symlink bool
}

// ListResult contains the subdirectories of a single directory
type ListResult struct {
	// Dirs is sorted by Name in byte order
	Dirs []Subdir
	// Errors contains non-fatal errors for individual entries (broken links, races)
	Errors []error
}

// ReadSubdirs lists the immediate subdirectories of dir.
// An error is returned only when dir itself cannot be read; problems with
// individual entries are collected in ListResult.Errors and the entry is skipped.
// The directory handle is closed before ReadSubdirs returns on every path.
func ReadSubdirs(dir string, opts ListOptions) (*ListResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	result := &ListResult{
		Dirs:   make([]Subdir, 0, len(entries)),
		Errors: make([]error, 0),
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			result.Dirs = append(result.Dirs, Subdir{Name: entry.Name(), Path: path})
			continue
		}

		if entry.Type()&os.ModeSymlink == 0 || !opts.FollowSymlinks {
			continue
		}

		// Stat follows the link; a dangling link is reported but not fatal
		info, err := os.Stat(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error resolving %s: %w", path, err))
			continue
		}
		if info.IsDir() {
			result.Dirs = append(result.Dirs, Subdir{Name: entry.Name(), Path: path, Symlink: true})
		}
	}

	// os.ReadDir already sorts, but traversal order must not depend on that
	sort.Slice(result.Dirs, func(i, j int) bool {
		return result.Dirs[i].Name < result.Dirs[j].Name
	})

	return result, nil
}

// CanonicalPath returns the absolute, symlink-free form of path.
// It is used as the identity of a directory when guarding against cycles.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks in %s: %w", abs, err)
	}
	return resolved, nil
}

// IsDir reports whether path exists and is a directory (following symlinks).
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
