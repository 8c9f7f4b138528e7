package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// RepositoryEnv names the repository when neither flag nor config file does.
const RepositoryEnv = "REPOCLEANER_REPOSITORY"

// mavenSettings is the part of settings.xml we read.
type mavenSettings struct {
	LocalRepository string `xml:"localRepository"`
}

// ResolveRepository returns the absolute repository root.
// Priority order:
//  1. explicit (flag or config file)
//  2. REPOCLEANER_REPOSITORY environment variable
//  3. <localRepository> from ~/.m2/settings.xml
//  4. ~/.m2/repository
func ResolveRepository(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(RepositoryEnv)
	}
	if path == "" {
		fromSettings, err := localRepositoryFromSettings()
		if err != nil {
			return "", err
		}
		path = fromSettings
	}
	if path == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		path = filepath.Join(userHome, ".m2", "repository")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("resolve repository path %q: %w", path, err)
	}
	return abs, nil
}

// localRepositoryFromSettings returns "" when settings.xml is absent or does
// not set localRepository.
func localRepositoryFromSettings() (string, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	settingsPath := filepath.Join(userHome, ".m2", "settings.xml")
	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", settingsPath, err)
	}

	var settings mavenSettings
	if err := xml.Unmarshal(data, &settings); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", settingsPath, err)
	}

	local := strings.TrimSpace(settings.LocalRepository)
	local = strings.ReplaceAll(local, "${user.home}", userHome)
	return local, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(userHome, path[1:])
}

// LoadEnvFile loads KEY=value pairs into the process environment. Variables
// that are already set keep their value.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
