// Package resolve turns the raw pattern typed by the user into the directory
// a search starts from and the term it looks for.
package resolve

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/microsoft/Sysinternals-jcd/internal/fileutil"
)

// ErrEmptyPattern is returned when the pattern is empty or only whitespace
var ErrEmptyPattern = errors.New("pattern is empty")

// Resolution is the outcome of resolving one pattern
type Resolution struct {
	BaseDir      string
	Term         string // Empty for direct navigation
	ListChildren bool   // Only set for an existing absolute directory written with a trailing slash
	DownOnly     bool   // Term completes a component below BaseDir; ancestors are not candidates
}

// Resolve interprets raw relative to cwd.
//
//	/abs/existing     BaseDir=/abs/existing, Term=""
//	/abs/existing/    BaseDir=/abs/existing, ListChildren
//	/abs/exi          BaseDir=/abs, Term="exi", DownOnly
//	.. ../..          BaseDir=ancestor of cwd, Term=""
//	../src ./src      BaseDir=ancestor of cwd, Term="src"
//	src               BaseDir=cwd, Term="src"
//
// Walking above the filesystem root stops at the root. Only the absolute
// forms touch the filesystem; everything else is lexical.
func Resolve(cwd, raw string) (Resolution, error) {
	if strings.TrimSpace(raw) == "" {
		return Resolution{}, ErrEmptyPattern
	}

	if filepath.IsAbs(raw) {
		return resolveAbsolute(raw), nil
	}

	base := filepath.Clean(cwd)
	rest := raw
	for {
		head, tail, _ := strings.Cut(rest, "/")
		switch head {
		case ".":
		case "..":
			base = filepath.Dir(base)
		default:
			return Resolution{BaseDir: base, Term: cleanTerm(rest)}, nil
		}
		rest = tail
		if rest == "" {
			return Resolution{BaseDir: base}, nil
		}
	}
}

func resolveAbsolute(raw string) Resolution {
	clean := filepath.Clean(raw)
	if fileutil.IsDir(clean) {
		trailing := strings.HasSuffix(raw, "/") && clean != "/"
		return Resolution{BaseDir: clean, ListChildren: trailing}
	}

	// Longest existing ancestor; the component right below it is the term
	child := clean
	parent := filepath.Dir(child)
	for parent != child && !fileutil.IsDir(parent) {
		child = parent
		parent = filepath.Dir(child)
	}
	return Resolution{BaseDir: parent, Term: filepath.Base(child), DownOnly: true}
}

// cleanTerm drops empty segments so "src//main/" behaves like "src/main".
func cleanTerm(term string) string {
	parts := strings.Split(term, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// Segments splits a path-like term into its components. A plain term
// yields a single segment.
func Segments(term string) []string {
	if term == "" {
		return nil
	}
	return strings.Split(term, "/")
}
