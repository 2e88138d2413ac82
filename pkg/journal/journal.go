// Package journal records reconciliation passes in a SQLite database.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file created inside the data directory.
const FileName = "history.db"

// Entry describes one completed pass.
type Entry struct {
	ID           int64     `json:"id" yaml:"id"`
	PassID       string    `json:"pass_id" yaml:"pass_id"`
	SourceDir    string    `json:"source_dir" yaml:"source_dir"`
	DocumentPath string    `json:"document_path" yaml:"document_path"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time `json:"finished_at" yaml:"finished_at"`
	New          int       `json:"new" yaml:"new"`
	Stale        int       `json:"stale" yaml:"stale"`
	Copied       int       `json:"copied" yaml:"copied"`
	CopyFailures int       `json:"copy_failures" yaml:"copy_failures"`
	Pruned       int       `json:"pruned" yaml:"pruned"`
	NotebookID   string    `json:"notebook_id,omitempty" yaml:"notebook_id,omitempty"`
	ListingError string    `json:"listing_error,omitempty" yaml:"listing_error,omitempty"`
}

// Journal is the pass history database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal in dataDir.
func Open(dataDir string) (*Journal, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize journal: %w", err)
	}
	return j, nil
}

func (j *Journal) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pass_id TEXT NOT NULL UNIQUE,
		source_dir TEXT NOT NULL,
		document_path TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		new_count INTEGER NOT NULL,
		stale_count INTEGER NOT NULL,
		copied_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		pruned_count INTEGER NOT NULL,
		notebook_id TEXT,
		listing_error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_passes_started_at ON passes(started_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record stores a pass and sets its ID.
func (j *Journal) Record(e *Entry) error {
	res, err := j.db.Exec(`
		INSERT INTO passes (
			pass_id, source_dir, document_path, started_at, finished_at,
			new_count, stale_count, copied_count, failed_count, pruned_count,
			notebook_id, listing_error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.PassID, e.SourceDir, e.DocumentPath, e.StartedAt.UTC(), e.FinishedAt.UTC(),
		e.New, e.Stale, e.Copied, e.CopyFailures, e.Pruned,
		nullable(e.NotebookID), nullable(e.ListingError))
	if err != nil {
		return fmt.Errorf("record pass %s: %w", e.PassID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record pass %s: %w", e.PassID, err)
	}
	e.ID = id
	return nil
}

// List returns the most recent passes first. A limit of zero or less
// returns every pass.
func (j *Journal) List(limit int) ([]*Entry, error) {
	query := `
		SELECT id, pass_id, source_dir, document_path, started_at, finished_at,
			new_count, stale_count, copied_count, failed_count, pruned_count,
			notebook_id, listing_error
		FROM passes
		ORDER BY started_at DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var notebookID, listingError sql.NullString
		if err := rows.Scan(
			&e.ID, &e.PassID, &e.SourceDir, &e.DocumentPath, &e.StartedAt, &e.FinishedAt,
			&e.New, &e.Stale, &e.Copied, &e.CopyFailures, &e.Pruned,
			&notebookID, &listingError,
		); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		e.NotebookID = notebookID.String
		e.ListingError = listingError.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
