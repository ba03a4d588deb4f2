package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microsoft/Sysinternals-jcd/internal/engine"
)

// Exit codes returned by Execute
const (
	ExitOK         = 0
	ExitNotFound   = 1
	ExitUsage      = 2
	ExitUnresolved = 3
)

// UsageError reports malformed command-line input
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ConfigError reports an unreadable or invalid configuration file
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var usageErr *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, engine.ErrNotFound):
		return ExitNotFound
	case errors.As(err, &usageErr):
		return ExitUsage
	default:
		return ExitUnresolved
	}
}

// Execute runs jcd with args and returns the exit code. stdout only ever
// receives results; everything else goes to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	// cobra reads os.Args when given nil
	if args == nil {
		args = []string{}
	}

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	code := ExitCode(err)

	if err == nil || code == ExitNotFound || quietRequested(args) {
		return code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if code == ExitUsage {
		fmt.Fprint(stderr, root.UsageString())
	}
	return code
}

// quietRequested scans raw arguments for -q/--quiet. Flag parsing may have
// failed before the flag was read, so the parsed value cannot be used.
func quietRequested(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case arg == "--quiet" || arg == "--quiet=true":
			return true
		case strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && strings.ContainsRune(arg[1:], 'q'):
			return true
		}
	}
	return false
}
