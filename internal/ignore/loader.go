package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/microsoft/Sysinternals-jcd/internal/config"
)

// FileName is the per-directory ignore file name.
const FileName = ".jcdignore"

// Logger is the subset of the logger package used while loading rules.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Source is one candidate location for the ignore file. Locate returns the
// path to check, or "" when the location does not apply (e.g. no home dir).
type Source struct {
	Name   string
	Locate func() (string, error)
}

// Options controls Load.
type Options struct {
	// Bypass skips loading entirely (the -x flag).
	Bypass bool
	// MaxRules caps the number of active rules. Zero means DefaultMaxRules.
	MaxRules int
	// Sources overrides DefaultSources when non-nil.
	Sources []Source
	Logger  Logger
}

// DefaultSources returns the ignore file locations in precedence order:
// the start directory, the XDG config dir, the home dir, then /etc.
func DefaultSources(startDir string) []Source {
	return []Source{
		{
			Name: "start directory",
			Locate: func() (string, error) {
				if startDir == "" {
					return "", nil
				}
				return filepath.Join(startDir, FileName), nil
			},
		},
		{
			Name: "user config",
			Locate: func() (string, error) {
				dir, err := config.ConfigDir()
				if err != nil {
					return "", err
				}
				return filepath.Join(dir, "ignore"), nil
			},
		},
		{
			Name: "home directory",
			Locate: func() (string, error) {
				home, err := config.HomeDir()
				if err != nil {
					return "", err
				}
				return filepath.Join(home, FileName), nil
			},
		},
		{
			Name: "system",
			Locate: func() (string, error) {
				return filepath.Join(string(filepath.Separator), "etc", config.AppName, "ignore"), nil
			},
		},
	}
}

// Load reads the first existing ignore file along the source list and
// returns its rules. It never fails: unreadable sources are skipped with a
// warning and a missing file yields an empty RuleSet.
func Load(startDir string, opts Options) *RuleSet {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	if opts.Bypass {
		log.LogDebug("ignore rules bypassed")
		return Empty()
	}

	sources := opts.Sources
	if sources == nil {
		sources = DefaultSources(startDir)
	}

	for _, src := range sources {
		path, err := src.Locate()
		if err != nil {
			log.LogDebug(fmt.Sprintf("ignore source %s unavailable: %v", src.Name, err))
			continue
		}
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.LogWarn(fmt.Sprintf("cannot read ignore file %s: %v", path, err))
			continue
		}

		rs := Parse(string(data), path, opts.MaxRules)
		report(rs, log)
		return rs
	}

	log.LogDebug("no ignore file found")
	return Empty()
}

func report(rs *RuleSet, log Logger) {
	for _, rej := range rs.Rejected() {
		log.LogWarn(rej.Error())
	}
	if rs.Dropped() > 0 {
		log.LogWarn(fmt.Sprintf("%s: rule limit reached, %d pattern(s) ignored", rs.Source(), rs.Dropped()))
	}
	log.LogDebug(fmt.Sprintf("loaded %d ignore rule(s) from %s", rs.Len(), rs.Source()))
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}
