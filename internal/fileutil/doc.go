// Package fileutil provides the directory listing primitives used by the
// jcd search engine.
//
// # Purpose
//
// The search engine never walks the filesystem itself. It asks this package
// for the immediate subdirectories of one directory at a time, which keeps
// three properties in a single place:
//   - Deterministic order: subdirectories are always returned sorted by name
//   - Error tolerance: a dangling symlink or an entry that vanished mid-listing
//     is collected in ListResult.Errors and skipped, the listing still succeeds
//   - Symlink policy: ListOptions.FollowSymlinks decides whether a symlink that
//     resolves to a directory is reported as a subdirectory
//
// # Main Components
//
// ReadSubdirs - lists one directory:
//
//	result, err := fileutil.ReadSubdirs("/path/to/dir", fileutil.ListOptions{
//	    FollowSymlinks: true,
//	})
//	if err != nil {
//	    // the directory itself is unreadable (permission denied, removed, ...)
//	}
//	for _, sub := range result.Dirs {
//	    fmt.Println(sub.Name, sub.Path, sub.Symlink)
//	}
//
// CanonicalPath - absolute, symlink-free path used as directory identity when
// guarding traversal against symlink cycles.
//
// IsDir - existence check that follows symlinks.
//
// # Standard Library Only
//
// Listing is a thin layer over os.ReadDir and os.Stat. The directory handle
// opened by os.ReadDir is closed before it returns, so no handle outlives a
// call even when the listing fails part-way.
package fileutil
