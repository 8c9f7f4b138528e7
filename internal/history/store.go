// Package history records every clean invocation in a SQLite database so past
// runs can be listed and reported.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/repocleaner/internal/models"
)

// ErrRunNotFound is returned when no recorded run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// Store manages the SQLite run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, sql string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(sql)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

const runColumns = `id, repository, started_at, duration_ms, delete_builds, delete_versions, skipped, error_message,
		all_files, all_size,
		builds_potential_count, builds_potential_files, builds_potential_size,
		builds_deleted_count, builds_deleted_files, builds_deleted_size,
		versions_potential_count, versions_potential_files, versions_potential_size,
		versions_deleted_count, versions_deleted_files, versions_deleted_size`

// RecordRun inserts a run. An empty ID is replaced by a new UUID.
func (s *Store) RecordRun(ctx context.Context, run *models.CleanRun) error {
	if run.ID == "" {
		run.ID = NewRunID()
	}

	b, v := run.Stats.Builds, run.Stats.Versions
	query := `INSERT INTO clean_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Repository,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		run.DeleteBuilds,
		run.DeleteVersions,
		run.Skipped,
		run.Error,
		run.Stats.AllFiles,
		run.Stats.AllSize,
		b.PotentialCount, b.PotentialFiles, b.PotentialSize,
		b.DeletedCount, b.DeletedFiles, b.DeletedSize,
		v.PotentialCount, v.PotentialFiles, v.PotentialSize,
		v.DeletedCount, v.DeletedFiles, v.DeletedSize,
	)
	if err != nil {
		return fmt.Errorf("insert clean run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
// An empty repository matches every repository.
func (s *Store) ListRuns(ctx context.Context, repository string, limit int) ([]*models.CleanRun, error) {
	query := `SELECT ` + runColumns + ` FROM clean_runs`
	var args []interface{}
	if repository != "" {
		query += ` WHERE repository = ?`
		args = append(args, repository)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clean runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.CleanRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clean runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run whose ID starts with idPrefix. The prefix must be
// unambiguous.
func (s *Store) GetRun(ctx context.Context, idPrefix string) (*models.CleanRun, error) {
	if idPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	query := `SELECT ` + runColumns + ` FROM clean_runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`
	rows, err := s.db.QueryContext(ctx, query, escapeLike(idPrefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("query clean run: %w", err)
	}
	defer rows.Close()

	var found []*models.CleanRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clean runs: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idPrefix)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", idPrefix)
	}
}

// LatestRun returns the most recent run, optionally restricted to one repository.
func (s *Store) LatestRun(ctx context.Context, repository string) (*models.CleanRun, error) {
	runs, err := s.ListRuns(ctx, repository, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return runs[0], nil
}

// Clear deletes runs started before cutoff; a zero cutoff deletes every run.
// Returns the number of deleted runs.
func (s *Store) Clear(ctx context.Context, cutoff time.Time) (int64, error) {
	var result sql.Result
	var err error
	if cutoff.IsZero() {
		result, err = s.db.ExecContext(ctx, `DELETE FROM clean_runs`)
	} else {
		result, err = s.db.ExecContext(ctx, `DELETE FROM clean_runs WHERE started_at < ?`, cutoff.UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("delete clean runs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.CleanRun, error) {
	run := &models.CleanRun{}
	var durationMs int64
	b, v := &run.Stats.Builds, &run.Stats.Versions

	err := row.Scan(
		&run.ID,
		&run.Repository,
		&run.StartedAt,
		&durationMs,
		&run.DeleteBuilds,
		&run.DeleteVersions,
		&run.Skipped,
		&run.Error,
		&run.Stats.AllFiles,
		&run.Stats.AllSize,
		&b.PotentialCount, &b.PotentialFiles, &b.PotentialSize,
		&b.DeletedCount, &b.DeletedFiles, &b.DeletedSize,
		&v.PotentialCount, &v.PotentialFiles, &v.PotentialSize,
		&v.DeletedCount, &v.DeletedFiles, &v.DeletedSize,
	)
	if err != nil {
		return nil, fmt.Errorf("scan clean run: %w", err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
