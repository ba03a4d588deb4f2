// Package engine runs one jcd lookup end to end: load the ignore policy,
// search around the base directory, rank the candidates, and hand out the
// match at a requested index.
//
// Nothing is kept between calls. A shell that cycles through matches calls
// the engine again with the next index and relies on the ranking being
// stable for an unchanged filesystem.
package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/microsoft/Sysinternals-jcd/internal/config"
	"github.com/microsoft/Sysinternals-jcd/internal/ignore"
	"github.com/microsoft/Sysinternals-jcd/internal/models"
	"github.com/microsoft/Sysinternals-jcd/internal/rank"
	"github.com/microsoft/Sysinternals-jcd/internal/search"
)

var (
	// ErrNotFound is returned when the index is outside the ranked list
	ErrNotFound = errors.New("no match")
	// ErrUnresolvableBase is returned when the base directory does not exist or is not a directory
	ErrUnresolvableBase = errors.New("cannot resolve base directory")
)

// Logger is what the engine and the packages it drives log through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogWarn(message string)
}

// Engine holds the settings shared by every lookup of one invocation.
type Engine struct {
	startDir string
	maxRules int
	sources  []ignore.Source
	searcher *search.Searcher
	log      Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithIgnoreSources replaces the default ignore file precedence chain.
func WithIgnoreSources(sources []ignore.Source) Option {
	return func(e *Engine) {
		e.sources = sources
	}
}

// New creates an Engine. startDir is where the first ignore file source is
// looked up; cfg may be nil for defaults.
func New(startDir string, cfg *config.Config, log Logger, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	e := &Engine{
		startDir: startDir,
		maxRules: cfg.Ignore.MaxRules,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}

	searchOpts := search.Options{
		MaxDepth:       cfg.Search.MaxDepth,
		FollowSymlinks: cfg.FollowSymlinks(),
	}
	if log != nil {
		searchOpts.Logger = log
	}
	e.searcher = search.New(searchOpts)

	return e
}

// Run resolves every match for req in rank order.
func (e *Engine) Run(req models.SearchRequest) (models.RankedList, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvableBase, err)
	}

	info, err := os.Stat(req.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolvableBase, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrUnresolvableBase, req.BaseDir)
	}

	ignoreOpts := ignore.Options{
		Bypass:   req.BypassIgnore,
		MaxRules: e.maxRules,
		Sources:  e.sources,
	}
	if e.log != nil {
		ignoreOpts.Logger = e.log
	}
	rules := ignore.Load(e.startDir, ignoreOpts)

	return rank.Rank(e.searcher.Search(req, rules)), nil
}

// Lookup runs req and returns the path at index.
func (e *Engine) Lookup(req models.SearchRequest, index int) (string, error) {
	list, err := e.Run(req)
	if err != nil {
		return "", err
	}
	return Get(list, index)
}

// Get returns the path at a zero-based index of a ranked list.
func Get(list models.RankedList, index int) (string, error) {
	if index < 0 || index >= len(list) {
		return "", fmt.Errorf("%w at index %d (%d available)", ErrNotFound, index, len(list))
	}
	return list[index].Path, nil
}
