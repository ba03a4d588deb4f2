// Package search walks the filesystem around a base directory and collects
// every directory whose name matches the search term.
//
// Two passes run per search. The upward pass visits each ancestor of the base
// directory up to (but not including) the filesystem root. The downward pass
// is a breadth-first walk bounded by MaxDepth, in sorted order, pruning
// ignored subtrees before they are enqueued. Results are unordered; ranking
// is a separate step.
package search

import (
	"fmt"
	"path/filepath"

	"github.com/microsoft/Sysinternals-jcd/internal/fileutil"
	"github.com/microsoft/Sysinternals-jcd/internal/models"
)

// DefaultMaxDepth bounds the downward pass when Options.MaxDepth is unset
const DefaultMaxDepth = 8

// Ignorer decides whether a directory base name is excluded.
// *ignore.RuleSet satisfies it.
type Ignorer interface {
	Match(name string) bool
}

// Logger is the subset of the logger package used during traversal.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

// Options configures a Searcher.
type Options struct {
	MaxDepth       int
	FollowSymlinks bool
	Logger         Logger
}

// Searcher runs searches with a fixed set of options. It holds no state
// between calls.
type Searcher struct {
	maxDepth int
	follow   bool
	log      Logger
}

// New creates a Searcher.
func New(opts Options) *Searcher {
	s := &Searcher{
		maxDepth: opts.MaxDepth,
		follow:   opts.FollowSymlinks,
		log:      opts.Logger,
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}
	if s.log == nil {
		s.log = nopLogger{}
	}
	return s
}

// MaxDepth returns the downward depth bound in effect.
func (s *Searcher) MaxDepth() int {
	return s.maxDepth
}

// Search returns every candidate for req. rules may be nil.
func (s *Searcher) Search(req models.SearchRequest, rules Ignorer) []models.Candidate {
	if rules == nil {
		rules = noRules{}
	}

	base := filepath.Clean(req.BaseDir)

	if req.Term == "" {
		if req.ListChildren {
			if kids := s.children(base, rules); len(kids) > 0 {
				return kids
			}
			s.log.LogDebug("no subdirectories in " + base + ", returning it")
		}
		return []models.Candidate{{Path: base, Direction: models.Up, Depth: 0, Kind: models.Exact}}
	}

	m := newMatcher(req.Term, req.CaseInsensitive)
	var candidates []models.Candidate
	if !req.DownOnly {
		candidates = s.up(base, m, rules)
	}
	candidates = append(candidates, s.down(base, m, rules)...)

	s.log.LogDebug(fmt.Sprintf("search %q from %s: %d candidate(s)", req.Term, base, len(candidates)))
	return candidates
}

// up collects matching ancestors of base. The root has no name and is
// never a candidate.
func (s *Searcher) up(base string, m *matcher, rules Ignorer) []models.Candidate {
	var out []models.Candidate

	dir := base
	for depth := 1; ; depth++ {
		parent := filepath.Dir(dir)
		if parent == dir || filepath.Dir(parent) == parent {
			break
		}
		dir = parent

		if rules.Match(filepath.Base(dir)) {
			s.log.LogTrace("ignored ancestor " + dir)
			continue
		}
		if kind, ok := m.match(dir); ok {
			out = append(out, models.Candidate{Path: dir, Direction: models.Up, Depth: depth, Kind: kind})
		}
	}

	return out
}

type queued struct {
	path     string // Logical path, as reached from base
	realPath string // Symlink-free identity, only tracked when following links
	depth    int
}

// down is the bounded breadth-first pass.
func (s *Searcher) down(base string, m *matcher, rules Ignorer) []models.Candidate {
	var out []models.Candidate

	start := queued{path: base}
	visited := make(map[string]struct{})
	if s.follow {
		start.realPath = base
		if resolved, err := fileutil.CanonicalPath(base); err == nil {
			start.realPath = resolved
		}
		visited[start.realPath] = struct{}{}
	}

	queue := []queued{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= s.maxDepth {
			continue
		}

		listing, err := fileutil.ReadSubdirs(cur.path, fileutil.ListOptions{FollowSymlinks: s.follow})
		if err != nil {
			s.log.LogDebug(fmt.Sprintf("skipping %s: %v", cur.path, err))
			continue
		}
		for _, entryErr := range listing.Errors {
			s.log.LogDebug(entryErr.Error())
		}

		for _, sub := range listing.Dirs {
			if rules.Match(sub.Name) {
				s.log.LogTrace("pruned " + sub.Path)
				continue
			}

			next := queued{path: sub.Path, depth: cur.depth + 1}
			if s.follow {
				id, ok := s.identity(cur, sub)
				if !ok {
					continue
				}
				if _, seen := visited[id]; seen {
					s.log.LogTrace(fmt.Sprintf("already visited %s as %s", sub.Path, id))
					continue
				}
				visited[id] = struct{}{}
				next.realPath = id
			}

			if kind, ok := m.match(sub.Path); ok {
				out = append(out, models.Candidate{Path: sub.Path, Direction: models.Down, Depth: next.depth, Kind: kind})
			}
			queue = append(queue, next)
		}
	}

	return out
}

// identity returns the real path of sub. Plain directories extend the
// parent's real path; only symlinks need resolving.
func (s *Searcher) identity(parent queued, sub fileutil.Subdir) (string, bool) {
	if !sub.Symlink {
		return filepath.Join(parent.realPath, sub.Name), true
	}
	resolved, err := fileutil.CanonicalPath(sub.Path)
	if err != nil {
		s.log.LogDebug(fmt.Sprintf("skipping %s: %v", sub.Path, err))
		return "", false
	}
	return resolved, true
}

// children lists the immediate subdirectories of base as partial matches.
func (s *Searcher) children(base string, rules Ignorer) []models.Candidate {
	listing, err := fileutil.ReadSubdirs(base, fileutil.ListOptions{FollowSymlinks: s.follow})
	if err != nil {
		s.log.LogDebug(fmt.Sprintf("cannot list %s: %v", base, err))
		return nil
	}

	out := make([]models.Candidate, 0, len(listing.Dirs))
	for _, sub := range listing.Dirs {
		if rules.Match(sub.Name) {
			continue
		}
		out = append(out, models.Candidate{Path: sub.Path, Direction: models.Down, Depth: 1, Kind: models.Partial})
	}
	return out
}

type noRules struct{}

func (noRules) Match(string) bool { return false }

type nopLogger struct{}

func (nopLogger) LogTrace(string) {}
func (nopLogger) LogDebug(string) {}
