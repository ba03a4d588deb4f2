package models

import "fmt"

// Direction records which pass of the search produced a candidate.
type Direction int

const (
	// Up marks an ancestor of the base directory (or the base itself for navigation).
	Up Direction = iota
	// Down marks a descendant found by the breadth-first pass.
	Down
)

// String returns "up" or "down".
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MatchKind classifies how a directory name matched the search term.
type MatchKind int

const (
	// Exact means the base name equals the term.
	Exact MatchKind = iota
	// Partial means the base name contains the term.
	Partial
)

// String returns "exact" or "partial".
func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Candidate is a single matching directory. Candidates are plain values and
// are never modified after the search produces them.
type Candidate struct {
	Path      string    // Absolute path as reached from the base directory
	Direction Direction // Up for ancestors, Down for descendants
	Depth     int       // Levels between the base directory and Path
	Kind      MatchKind // Exact or Partial
}

// RankedList is the ordered, deduplicated result of a search.
type RankedList []Candidate

// Paths returns the candidate paths in rank order.
func (l RankedList) Paths() []string {
	paths := make([]string, len(l))
	for i, c := range l {
		paths[i] = c.Path
	}
	return paths
}
