package models

import (
	"errors"
	"path/filepath"
)

// SearchRequest describes one invocation of the match engine. It is built
// once from resolved CLI input and not modified afterwards.
type SearchRequest struct {
	BaseDir         string // Absolute directory the search starts from
	Term            string // Residual search term; empty means direct navigation
	CaseInsensitive bool   // Fold case when comparing names with Term
	BypassIgnore    bool   // Skip ignore rules entirely
	ListChildren    bool   // With an empty Term, report every immediate subdirectory
	DownOnly        bool   // Skip the upward pass; set when completing an absolute path
}

// Validate checks that the request is well formed.
func (r SearchRequest) Validate() error {
	if r.BaseDir == "" {
		return errors.New("base directory is required")
	}
	if !filepath.IsAbs(r.BaseDir) {
		return errors.New("base directory must be absolute")
	}
	if r.ListChildren && r.Term != "" {
		return errors.New("list children requires an empty term")
	}
	if r.DownOnly && r.Term == "" {
		return errors.New("down-only search requires a term")
	}
	return nil
}
