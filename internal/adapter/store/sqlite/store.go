// Package sqlite records review runs for auditing. The history is
// write-mostly: nothing in the review pipeline reads it back, it
// exists so past runs and posted comments can be inspected later.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mhenry/prreview/internal/domain"
)

// Run is one recorded review run.
type Run struct {
	RunID      string
	Timestamp  time.Time
	Kind       string // "pr" or "local"
	Repository string
	PRNumber   int
	BaseRef    string
	TargetRef  string
	Provider   string
	Model      string
}

// PostedComment is one comment recorded against a run.
type PostedComment struct {
	RunID       string
	Path        string
	Line        int
	Severity    string
	Fingerprint domain.Fingerprint
	Body        string
}

// Store persists run history in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at the given path.
// Use ":memory:" for testing.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		kind TEXT NOT NULL CHECK(kind IN ('pr', 'local')),
		repository TEXT NOT NULL,
		pr_number INTEGER DEFAULT 0,
		base_ref TEXT,
		target_ref TEXT,
		provider TEXT NOT NULL,
		model TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS posted_comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		path TEXT NOT NULL,
		line INTEGER NOT NULL,
		severity TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		body TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_comments_run ON posted_comments(run_id);
	CREATE INDEX IF NOT EXISTS idx_comments_fingerprint ON posted_comments(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordRun stores a new review run.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	query := `
		INSERT INTO runs (run_id, timestamp, kind, repository, pr_number, base_ref, target_ref, provider, model)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.Timestamp.Unix(),
		run.Kind,
		run.Repository,
		run.PRNumber,
		run.BaseRef,
		run.TargetRef,
		run.Provider,
		run.Model,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// RecordComments stores the comments posted during a run in a single
// transaction.
func (s *Store) RecordComments(ctx context.Context, comments []PostedComment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posted_comments (run_id, path, line, severity, fingerprint, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx, c.RunID, c.Path, c.Line, c.Severity, string(c.Fingerprint), c.Body); err != nil {
			return fmt.Errorf("failed to record comment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, timestamp, kind, repository, pr_number, base_ref, target_ref, provider, model
		FROM runs ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts int64
		if err := rows.Scan(&run.RunID, &ts, &run.Kind, &run.Repository, &run.PRNumber,
			&run.BaseRef, &run.TargetRef, &run.Provider, &run.Model); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Timestamp = time.Unix(ts, 0)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// CommentsForRun returns the comments recorded for a run.
func (s *Store) CommentsForRun(ctx context.Context, runID string) ([]PostedComment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, path, line, severity, fingerprint, body
		FROM posted_comments WHERE run_id = ? ORDER BY path, line
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []PostedComment
	for rows.Next() {
		var c PostedComment
		var fp string
		if err := rows.Scan(&c.RunID, &c.Path, &c.Line, &c.Severity, &fp, &c.Body); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Fingerprint = domain.Fingerprint(fp)
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
