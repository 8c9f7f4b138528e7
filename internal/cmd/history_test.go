package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/repocleaner/internal/history"
	"github.com/harrison/repocleaner/internal/models"
)

// seedHistory records runs directly into a database at dbPath.
func seedHistory(t *testing.T, dbPath string, runs ...*models.CleanRun) {
	t.Helper()
	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	for _, run := range runs {
		require.NoError(t, store.RecordRun(context.Background(), run))
	}
}

func TestHistoryList(t *testing.T) {
	setupHome(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	now := time.Now()
	seedHistory(t, dbPath,
		&models.CleanRun{ID: "aaaaaaaa-1111", Repository: "/repo/one", StartedAt: now.Add(-2 * time.Hour), DeleteVersions: true,
			Stats: models.Stats{AllFiles: 10, Versions: models.Category{DeletedCount: 2, DeletedFiles: 4, DeletedSize: 2048}}},
		&models.CleanRun{ID: "bbbbbbbb-2222", Repository: "/repo/two", StartedAt: now.Add(-time.Hour), Skipped: true},
		&models.CleanRun{ID: "cccccccc-3333", Repository: "/repo/one", StartedAt: now, Error: "boom"},
	)

	t.Run("all", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "history", "--db-path", dbPath)
		require.NoError(t, err)

		for _, want := range []string{"aaaaaaaa", "bbbbbbbb", "cccccccc", "cleaned", "skipped", "failed", "2.00 kiB"} {
			assert.Contains(t, stdout, want)
		}
		assert.Contains(t, strings.ToLower(stdout), "3 runs")
		assert.Less(t, strings.Index(stdout, "cccccccc"), strings.Index(stdout, "aaaaaaaa"), "newest first")
	})

	t.Run("limit", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "history", "--db-path", dbPath, "--limit", "1")
		require.NoError(t, err)

		assert.Contains(t, stdout, "cccccccc")
		assert.NotContains(t, stdout, "aaaaaaaa")
	})

	t.Run("repository", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "history", "--db-path", dbPath, "--repository", "/repo/two")
		require.NoError(t, err)

		assert.Contains(t, stdout, "bbbbbbbb")
		assert.NotContains(t, stdout, "cccccccc")
	})
}

func TestHistoryEmpty(t *testing.T) {
	setupHome(t)

	stdout, _, err := runCLI(t, "", "history", "--db-path", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded\n", stdout)
}

func TestHistoryClear(t *testing.T) {
	now := time.Now()
	seed := func(t *testing.T) string {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		seedHistory(t, dbPath,
			&models.CleanRun{ID: "old", Repository: "/repo", StartedAt: now.Add(-48 * time.Hour)},
			&models.CleanRun{ID: "new", Repository: "/repo", StartedAt: now},
		)
		return dbPath
	}

	t.Run("confirmed", func(t *testing.T) {
		setupHome(t)
		dbPath := seed(t)

		stdout, _, err := runCLI(t, "y\n", "history", "--db-path", dbPath, "--clear")
		require.NoError(t, err)
		assert.Contains(t, stdout, "This will delete all recorded runs.")
		assert.Contains(t, stdout, "Deleted 2 runs")
	})

	t.Run("aborted", func(t *testing.T) {
		setupHome(t)
		dbPath := seed(t)

		stdout, _, err := runCLI(t, "n\n", "history", "--db-path", dbPath, "--clear")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Aborted.")

		stdout, _, err = runCLI(t, "", "history", "--db-path", dbPath)
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(stdout), "2 runs")
	})

	t.Run("older than", func(t *testing.T) {
		setupHome(t)
		dbPath := seed(t)

		stdout, _, err := runCLI(t, "", "history", "--db-path", dbPath, "--clear", "--older-than", "24h", "--yes")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Deleted 1 runs")

		stdout, _, err = runCLI(t, "", "history", "--db-path", dbPath)
		require.NoError(t, err)
		assert.Contains(t, stdout, "new")
		assert.Contains(t, strings.ToLower(stdout), "1 runs")
	})
}
