package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/repocleaner/internal/history"
	"github.com/harrison/repocleaner/internal/models"
)

func TestReportCommand(t *testing.T) {
	setupHome(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	now := time.Now()
	seedHistory(t, dbPath,
		&models.CleanRun{ID: "1111aaaa", Repository: "/repo", StartedAt: now.Add(-time.Hour), Skipped: true},
		&models.CleanRun{ID: "2222bbbb", Repository: "/repo", StartedAt: now, DeleteVersions: true,
			Stats: models.Stats{AllFiles: 8, AllSize: 4096, Versions: models.Category{DeletedCount: 1, DeletedFiles: 2, DeletedSize: 1024}}},
	)

	t.Run("latest markdown", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "report", "--db-path", dbPath)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(stdout, "# Repository clean 2222bbbb\n"))
		assert.Contains(t, stdout, "| Removed versions | 1 | 2 | 1.00 kiB |")
	})

	t.Run("by prefix", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "report", "1111", "--db-path", dbPath)
		require.NoError(t, err)

		assert.Contains(t, stdout, "# Repository clean 1111aaaa")
		assert.Contains(t, stdout, "Skipped due to execution probability.")
	})

	t.Run("html to file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "reports", "clean.html")

		stdout, _, err := runCLI(t, "", "report", "2222", "--db-path", dbPath, "--format", "html", "-o", output)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Report written to "+output)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
		assert.Contains(t, string(data), "<table>")

		_, err = os.Stat(output + ".lock")
		assert.True(t, os.IsNotExist(err), "lock file should be removed")
	})

	t.Run("unknown run", func(t *testing.T) {
		_, _, err := runCLI(t, "", "report", "ffff", "--db-path", dbPath)
		require.Error(t, err)
		assert.ErrorIs(t, err, history.ErrRunNotFound)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := runCLI(t, "", "report", "--db-path", dbPath, "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestReportAfterClean(t *testing.T) {
	setupHome(t)
	repo := writeRepo(t)

	_, _, err := runCLI(t, "", "clean", "-r", repo, "--delete-versions")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, stdout, "`"+repo+"`")
	assert.Contains(t, stdout, "**Status:** cleaned")
	assert.Contains(t, stdout, "| Removed versions | 2 | 4 | 18.00 B |")
}

func TestReportEmptyHistory(t *testing.T) {
	setupHome(t)

	_, _, err := runCLI(t, "", "report", "--db-path", filepath.Join(t.TempDir(), "history.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}
