// Package rank orders search candidates.
//
// The order is total and depends only on candidate values, so the same
// filesystem always yields the same list and a caller cycling through
// indices in separate processes sees stable positions.
package rank

import (
	"sort"

	"github.com/microsoft/Sysinternals-jcd/internal/models"
)

// Less reports whether a is preferred over b:
// exact before partial, up before down, shallower first, then path bytes.
func Less(a, b models.Candidate) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Direction != b.Direction {
		return a.Direction < b.Direction
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	return a.Path < b.Path
}

// Rank deduplicates candidates by path, keeping the preferred entry for each,
// and returns them in preference order. The input is not modified.
func Rank(candidates []models.Candidate) models.RankedList {
	best := make(map[string]int, len(candidates))
	list := make(models.RankedList, 0, len(candidates))

	for _, c := range candidates {
		if i, ok := best[c.Path]; ok {
			if Less(c, list[i]) {
				list[i] = c
			}
			continue
		}
		best[c.Path] = len(list)
		list = append(list, c)
	}

	sort.Slice(list, func(i, j int) bool {
		return Less(list[i], list[j])
	})

	return list
}
