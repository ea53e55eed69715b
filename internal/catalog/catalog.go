// Package catalog keeps a local history of export runs in a sqlite database.
// It is an optional side channel: the exporter works without it, and catalog
// failures never affect a dataset already written to disk.
package catalog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one recorded export run.
type Run struct {
	RunID       string
	OutputDir   string
	Format      string
	FrameCount  int
	Status      string
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Catalog wraps the sqlite connection.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path and applies
// any pending schema migrations.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing catalog migrations: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading catalog migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("initialising catalog migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating catalog schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// RecordStart inserts a new running export and returns its run id.
func (c *Catalog) RecordStart(outputDir, format string) (string, error) {
	runID := uuid.NewString()
	_, err := c.db.Exec(`
		INSERT INTO export_runs (run_id, output_dir, format, status, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		runID, outputDir, format, StatusRunning, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("recording export start: %w", err)
	}
	return runID, nil
}

// RecordResult marks a run completed or failed.
func (c *Catalog) RecordResult(runID string, frameCount int, runErr error) error {
	status := StatusCompleted
	errMsg := ""
	if runErr != nil {
		status = StatusFailed
		errMsg = runErr.Error()
	}
	res, err := c.db.Exec(`
		UPDATE export_runs
		SET frame_count = ?, status = ?, error = ?, completed_at = ?
		WHERE run_id = ?`,
		frameCount, status, errMsg, time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return fmt.Errorf("recording export result for %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no export run %s to update", runID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (c *Catalog) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.db.Query(`
		SELECT run_id, output_dir, format, frame_count, status, error, started_at, completed_at
		FROM export_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing export runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var completedAt sql.NullString
		if err := rows.Scan(&r.RunID, &r.OutputDir, &r.Format, &r.FrameCount, &r.Status, &r.Error, &startedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning export run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
				r.CompletedAt = &t
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
