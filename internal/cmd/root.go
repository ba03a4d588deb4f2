package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/microsoft/Sysinternals-jcd/internal/config"
	"github.com/microsoft/Sysinternals-jcd/internal/engine"
	"github.com/microsoft/Sysinternals-jcd/internal/logger"
	"github.com/microsoft/Sysinternals-jcd/internal/models"
	"github.com/microsoft/Sysinternals-jcd/internal/resolve"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for jcd
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jcd <pattern> [index]",
		Short: "Find the directory you mean and print its path",
		Long: `jcd finds directories whose name contains <pattern>, looking both up
toward the filesystem root and down into subdirectories, and prints the
match at [index] (default 0). Matches are ordered exact before partial,
ancestors before descendants, nearer before farther, so repeated calls
with increasing indices walk the same list.

Patterns:
  name            search from the current directory
  ..  ../..       the parent, grandparent, ...
  ../name         search from the parent
  src/main        "main" inside a directory containing "src"
  /abs/pa         complete the last component of an absolute path
  /abs/dir/       list the subdirectories of an absolute directory

Directories matching a regex in the first ignore file found
(./.jcdignore, ~/.config/jcd/ignore, ~/.jcdignore, /etc/jcd/ignore)
are skipped together with everything below them.`,
		Version: Version,
		Args:    validateArgs,
		RunE:    runLookup,
		// Errors are reported by Execute so --quiet can suppress them
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.Flags().BoolP("ignore-case", "i", false, "Match the pattern case-insensitively")
	cmd.Flags().BoolP("no-ignore", "x", false, "Do not apply ignore rules")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress diagnostics on stderr")
	cmd.Flags().BoolP("list", "l", false, "Print every match instead of a single one")
	cmd.Flags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/jcd/config.yaml)")

	return cmd
}

func validateArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return &UsageError{Err: errors.New("missing pattern")}
	case len(args) > 2:
		return &UsageError{Err: fmt.Errorf("too many arguments: %d", len(args))}
	}
	return nil
}

func parseIndex(args []string) (int, error) {
	if len(args) < 2 {
		return 0, nil
	}
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 {
		return 0, &UsageError{Err: fmt.Errorf("invalid index %q: must be a non-negative integer", args[1])}
	}
	return index, nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	noIgnore, _ := cmd.Flags().GetBool("no-ignore")
	quiet, _ := cmd.Flags().GetBool("quiet")
	list, _ := cmd.Flags().GetBool("list")
	configFlag, _ := cmd.Flags().GetString("config")

	index, err := parseIndex(args)
	if err != nil {
		return err
	}
	if list && len(args) == 2 {
		return &UsageError{Err: errors.New("an index cannot be combined with --list")}
	}

	cfg, err := loadConfig(configFlag)
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), cfg, quiet)
	log.LogDebug(fmt.Sprintf("jcd %s: pattern=%q index=%d ignore-case=%t no-ignore=%t", Version, args[0], index, ignoreCase, noIgnore))

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrUnresolvableBase, err)
	}

	res, err := resolve.Resolve(cwd, args[0])
	if err != nil {
		return &UsageError{Err: err}
	}
	log.LogDebug(fmt.Sprintf("resolved base=%s term=%q list-children=%t down-only=%t", res.BaseDir, res.Term, res.ListChildren, res.DownOnly))

	req := models.SearchRequest{
		BaseDir:         res.BaseDir,
		Term:            res.Term,
		CaseInsensitive: ignoreCase,
		BypassIgnore:    noIgnore,
		ListChildren:    res.ListChildren,
		DownOnly:        res.DownOnly,
	}

	eng := engine.New(cwd, cfg, log)
	out := cmd.OutOrStdout()

	if list {
		ranked, err := eng.Run(req)
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			return engine.ErrNotFound
		}
		return writeList(out, ranked, logger.IsTerminal(out))
	}

	path, err := eng.Lookup(req, index)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, path)
	return err
}

// loadConfig reads the config file and applies environment overrides.
// Any failure is a ConfigError.
func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.ConfigFilePath(explicit)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("failed to load config from %s: %w", path, err)}
	}

	cfg.ApplyEnvironment(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("invalid configuration: %w", err)}
	}
	return cfg, nil
}

// newLogger builds the stderr logger plus the optional log file.
// --quiet only lowers stderr to errors; the log file keeps the configured level.
func newLogger(stderr io.Writer, cfg *config.Config, quiet bool) *logger.MultiLogger {
	level := cfg.LogLevel
	if quiet {
		level = "error"
	}
	sinks := []logger.Sink{logger.NewConsoleLogger(stderr, level)}
	if cfg.LogFile != "" {
		sinks = append(sinks, logger.NewFileLogger(cfg.LogFile, cfg.LogLevel))
	}
	return logger.NewMultiLogger(sinks...)
}
