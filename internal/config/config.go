package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Symlink policies for the downward search
const (
	SymlinksFollow = "follow"
	SymlinksSkip   = "skip"
)

// Limits enforced by Validate
const (
	maxSearchDepth    = 64
	maxIgnoreRulesCap = 1000
)

// SearchConfig controls directory traversal
type SearchConfig struct {
	// MaxDepth bounds the downward breadth-first search (levels below the base directory)
	MaxDepth int `yaml:"max_depth"`

	// Symlinks is "follow" (traverse symlinked directories with a cycle guard) or "skip"
	Symlinks string `yaml:"symlinks"`
}

// IgnoreConfig controls ignore rule loading
type IgnoreConfig struct {
	// MaxRules is the number of valid rules kept from the ignore file
	MaxRules int `yaml:"max_rules"`
}

// Config represents jcd configuration options
type Config struct {
	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, receives a copy of every diagnostic line
	LogFile string `yaml:"log_file"`

	// Search contains traversal configuration
	Search SearchConfig `yaml:"search"`

	// Ignore contains ignore rule configuration
	Ignore IgnoreConfig `yaml:"ignore"`
}

// DefaultConfig returns a Config with the default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		LogFile:  "",
		Search: SearchConfig{
			MaxDepth: 8,
			Symlinks: SymlinksFollow,
		},
		Ignore: IgnoreConfig{
			MaxRules: 100,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFile != "" {
		cfg.LogFile = ExpandUser(fileCfg.LogFile)
	}
	if fileCfg.Search.MaxDepth != 0 {
		cfg.Search.MaxDepth = fileCfg.Search.MaxDepth
	}
	if fileCfg.Search.Symlinks != "" {
		cfg.Search.Symlinks = fileCfg.Search.Symlinks
	}
	if fileCfg.Ignore.MaxRules != 0 {
		cfg.Ignore.MaxRules = fileCfg.Ignore.MaxRules
	}

	return cfg, nil
}

// ApplyEnvironment applies environment overrides.
// JCD_DEBUG=1 forces debug logging.
func (c *Config) ApplyEnvironment(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("JCD_DEBUG") == "1" {
		c.LogLevel = "debug"
	}
}

// FollowSymlinks reports whether the downward search traverses symlinked directories
func (c *Config) FollowSymlinks() bool {
	return c.Search.Symlinks == SymlinksFollow
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Search.MaxDepth < 1 || c.Search.MaxDepth > maxSearchDepth {
		return fmt.Errorf("search.max_depth must be between 1 and %d, got %d", maxSearchDepth, c.Search.MaxDepth)
	}

	if c.Search.Symlinks != SymlinksFollow && c.Search.Symlinks != SymlinksSkip {
		return fmt.Errorf("invalid search.symlinks %q, must be one of: %s, %s", c.Search.Symlinks, SymlinksFollow, SymlinksSkip)
	}

	if c.Ignore.MaxRules < 1 || c.Ignore.MaxRules > maxIgnoreRulesCap {
		return fmt.Errorf("ignore.max_rules must be between 1 and %d, got %d", maxIgnoreRulesCap, c.Ignore.MaxRules)
	}

	return nil
}
