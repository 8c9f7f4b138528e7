package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the repocleaner home directory.
const HomeEnv = "REPOCLEANER_HOME"

// GetHome returns the repocleaner home directory
// Priority order:
//  1. REPOCLEANER_HOME environment variable (if set)
//  2. ~/.repocleaner
//
// The directory is created if it doesn't exist
func GetHome() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		home = filepath.Join(userHome, ".repocleaner")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create repocleaner home directory: %w", err)
	}

	return home, nil
}

// GetConfigPath returns the default configuration file path
// Always returns: $REPOCLEANER_HOME/config.yaml
func GetConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// GetHistoryDBPath returns the history database path, honouring an explicit
// history.db_path. Relative paths are taken relative to the home directory.
func (c *Config) GetHistoryDBPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}

	path := c.History.DBPath
	if path == "" {
		return filepath.Join(home, "history.db"), nil
	}
	path = ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(home, path)
	}
	return path, nil
}

// GetLocksDir returns the directory holding per-repository lock files
func GetLocksDir() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}

	locksDir := filepath.Join(home, "locks")
	if err := os.MkdirAll(locksDir, 0755); err != nil {
		return "", fmt.Errorf("create locks directory: %w", err)
	}

	return locksDir, nil
}
