package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a fresh directory and clears the repocleaner variables.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(HomeEnv, "")
	t.Setenv(RepositoryEnv, "")
	return home
}

func writeSettings(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".m2")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.xml"), []byte(content), 0644))
}

func TestResolveRepository(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		isolateHome(t)
		t.Setenv(RepositoryEnv, "/from/env")
		explicit := filepath.Join(t.TempDir(), "repo")

		got, err := ResolveRepository(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, got)
	})

	t.Run("environment", func(t *testing.T) {
		home := isolateHome(t)
		writeSettings(t, home, "<settings><localRepository>/from/settings</localRepository></settings>")
		env := filepath.Join(t.TempDir(), "env-repo")
		t.Setenv(RepositoryEnv, env)

		got, err := ResolveRepository("")
		require.NoError(t, err)
		assert.Equal(t, env, got)
	})

	t.Run("settings.xml", func(t *testing.T) {
		home := isolateHome(t)
		writeSettings(t, home, `<?xml version="1.0"?>
<settings xmlns="http://maven.apache.org/SETTINGS/1.0.0">
  <localRepository>${user.home}/custom-repo</localRepository>
</settings>`)

		got, err := ResolveRepository("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "custom-repo"), got)
	})

	t.Run("settings.xml without localRepository", func(t *testing.T) {
		home := isolateHome(t)
		writeSettings(t, home, "<settings><offline>true</offline></settings>")

		got, err := ResolveRepository("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".m2", "repository"), got)
	})

	t.Run("malformed settings.xml", func(t *testing.T) {
		home := isolateHome(t)
		writeSettings(t, home, "<settings><localRepository>")

		_, err := ResolveRepository("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("default", func(t *testing.T) {
		home := isolateHome(t)

		got, err := ResolveRepository("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".m2", "repository"), got)
	})

	t.Run("tilde expanded", func(t *testing.T) {
		home := isolateHome(t)

		got, err := ResolveRepository("~/m2")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "m2"), got)
	})
}

func TestExpandHome(t *testing.T) {
	home := isolateHome(t)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandHome("~/a/b"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestLoadEnvFile(t *testing.T) {
	isolateHome(t)
	t.Setenv(HomeEnv, "/already/set")
	os.Unsetenv(RepositoryEnv)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REPOCLEANER_REPOSITORY=/from/dotenv\nREPOCLEANER_HOME=/ignored\n"), 0644))

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "/from/dotenv", os.Getenv(RepositoryEnv))
	assert.Equal(t, "/already/set", os.Getenv(HomeEnv))

	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestGetHome(t *testing.T) {
	t.Run("environment variable", func(t *testing.T) {
		isolateHome(t)
		custom := filepath.Join(t.TempDir(), "custom")
		t.Setenv(HomeEnv, custom)

		home, err := GetHome()
		require.NoError(t, err)
		assert.Equal(t, custom, home)
		assert.DirExists(t, custom)
	})

	t.Run("user home fallback", func(t *testing.T) {
		userHome := isolateHome(t)

		home, err := GetHome()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".repocleaner"), home)
		assert.DirExists(t, home)
	})
}

func TestHomePaths(t *testing.T) {
	isolateHome(t)
	custom := t.TempDir()
	t.Setenv(HomeEnv, custom)

	configPath, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, "config.yaml"), configPath)

	locks, err := GetLocksDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, "locks"), locks)
	assert.DirExists(t, locks)

	cfg := DefaultConfig()
	dbPath, err := cfg.GetHistoryDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, "history.db"), dbPath)

	cfg.History.DBPath = "db/runs.db"
	dbPath, err = cfg.GetHistoryDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(custom, "db", "runs.db"), dbPath)

	cfg.History.DBPath = "/var/lib/runs.db"
	dbPath, err = cfg.GetHistoryDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/runs.db", dbPath)
}
