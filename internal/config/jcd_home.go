package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name jcd uses under XDG and /etc locations
const AppName = "jcd"

// HomeDir returns the current user's home directory.
// $HOME wins when set so tests and sandboxes can redirect it.
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// ConfigDir returns the jcd user configuration directory
// Priority order:
//  1. $XDG_CONFIG_HOME/jcd (if XDG_CONFIG_HOME is set and absolute)
//  2. $HOME/.config/jcd
//
// The directory is not created; jcd only ever reads from it.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ConfigFilePath returns the configuration file to load
// Priority order:
//  1. explicit path (from --config)
//  2. JCD_CONFIG environment variable
//  3. ConfigDir()/config.yaml
func ConfigFilePath(explicit string) (string, error) {
	if explicit != "" {
		return ExpandUser(explicit), nil
	}
	if env := os.Getenv("JCD_CONFIG"); env != "" {
		return ExpandUser(env), nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandUser replaces a leading "~" or "~/" with the home directory.
// Values that cannot be expanded are returned unchanged.
func ExpandUser(value string) string {
	value = strings.TrimSpace(value)
	if value != "~" && !strings.HasPrefix(value, "~/") {
		return value
	}

	home, err := HomeDir()
	if err != nil || home == "" {
		return value
	}
	if value == "~" {
		return home
	}
	return filepath.Join(home, value[2:])
}
