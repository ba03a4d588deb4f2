package search

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/microsoft/Sysinternals-jcd/internal/models"
	"github.com/microsoft/Sysinternals-jcd/internal/resolve"
)

// matcher compares directory names with a (possibly path-like) term.
// Names and the term are NFC-normalized; with foldCase both are also
// Unicode case folded.
type matcher struct {
	segments []string
	folder   *cases.Caser
}

func newMatcher(term string, foldCase bool) *matcher {
	m := &matcher{}
	if foldCase {
		c := cases.Fold()
		m.folder = &c
	}
	for _, seg := range resolve.Segments(term) {
		m.segments = append(m.segments, m.normalize(seg))
	}
	return m
}

func (m *matcher) normalize(s string) string {
	s = norm.NFC.String(s)
	if m.folder != nil {
		s = m.folder.String(s)
	}
	return s
}

// match classifies the directory at path. The last term segment is tested
// against the base name; each earlier segment must be contained in the
// corresponding ancestor name, walking outward.
func (m *matcher) match(path string) (models.MatchKind, bool) {
	if len(m.segments) == 0 {
		return 0, false
	}

	last := m.segments[len(m.segments)-1]
	name := m.normalize(filepath.Base(path))
	if !strings.Contains(name, last) {
		return 0, false
	}

	kind := models.Partial
	if name == last {
		kind = models.Exact
	}

	dir := path
	for i := len(m.segments) - 2; i >= 0; i-- {
		parent := filepath.Dir(dir)
		if parent == dir {
			return 0, false
		}
		dir = parent
		if !strings.Contains(m.normalize(filepath.Base(dir)), m.segments[i]) {
			return 0, false
		}
	}

	return kind, true
}
