package service

import (
	"time"

	"github.com/mattsolo1/codex-sync/pkg/delta"
	"github.com/mattsolo1/codex-sync/pkg/models"
	"github.com/mattsolo1/codex-sync/pkg/storage"
)

// Report is the outcome of one reconciliation pass.
type Report struct {
	PassID       string
	SourceDir    string
	DocumentPath string
	DryRun       bool
	StartTime    time.Time
	EndTime      time.Time

	Delta        delta.Delta
	ListingError error
	Copies       []storage.CopyResult
	Pruned       []*models.Note
	Notebook     *models.Notebook
	BackupPath   string
	Saved        bool

	// Document is the reconciled document, saved unless DryRun is set.
	Document *models.Document
}

// NothingToImport reports whether no new files were found.
func (r *Report) NothingToImport() bool {
	return r.Notebook == nil
}

// Copied returns the names that were copied into the notes directory.
func (r *Report) Copied() []string {
	var names []string
	for _, c := range r.Copies {
		if c.OK() {
			names = append(names, c.Name)
		}
	}
	return names
}

// CopyFailures returns the copies that failed.
func (r *Report) CopyFailures() []storage.CopyResult {
	var failed []storage.CopyResult
	for _, c := range r.Copies {
		if !c.OK() {
			failed = append(failed, c)
		}
	}
	return failed
}

func (r *Report) Complete(now time.Time) {
	r.EndTime = now
}

func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// FileError pairs a file name with the error it hit.
type FileError struct {
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

// Summary is the serializable view of a Report.
type Summary struct {
	PassID          string      `json:"pass_id" yaml:"pass_id"`
	SourceDir       string      `json:"source_dir" yaml:"source_dir"`
	DocumentPath    string      `json:"document_path" yaml:"document_path"`
	DryRun          bool        `json:"dry_run" yaml:"dry_run"`
	StartedAt       time.Time   `json:"started_at" yaml:"started_at"`
	DurationMs      int64       `json:"duration_ms" yaml:"duration_ms"`
	New             []string    `json:"new" yaml:"new"`
	Stale           []string    `json:"stale" yaml:"stale"`
	Copied          []string    `json:"copied" yaml:"copied"`
	CopyFailures    []FileError `json:"copy_failures,omitempty" yaml:"copy_failures,omitempty"`
	Pruned          []string    `json:"pruned" yaml:"pruned"`
	NotebookID      string      `json:"notebook_id,omitempty" yaml:"notebook_id,omitempty"`
	NotebookName    string      `json:"notebook_name,omitempty" yaml:"notebook_name,omitempty"`
	NothingToImport bool        `json:"nothing_to_import" yaml:"nothing_to_import"`
	ListingError    string      `json:"listing_error,omitempty" yaml:"listing_error,omitempty"`
	BackupPath      string      `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Saved           bool        `json:"saved" yaml:"saved"`
}

// Summary flattens the report for JSON and YAML output.
func (r *Report) Summary() Summary {
	s := Summary{
		PassID:          r.PassID,
		SourceDir:       r.SourceDir,
		DocumentPath:    r.DocumentPath,
		DryRun:          r.DryRun,
		StartedAt:       r.StartTime,
		DurationMs:      r.Duration().Milliseconds(),
		New:             nonNil(r.Delta.New),
		Stale:           nonNil(r.Delta.Stale),
		Copied:          nonNil(r.Copied()),
		Pruned:          []string{},
		NothingToImport: r.NothingToImport(),
		BackupPath:      r.BackupPath,
		Saved:           r.Saved,
	}
	for _, c := range r.CopyFailures() {
		s.CopyFailures = append(s.CopyFailures, FileError{Name: c.Name, Error: c.Err.Error()})
	}
	for _, n := range r.Pruned {
		s.Pruned = append(s.Pruned, n.FileName)
	}
	if r.Notebook != nil {
		s.NotebookID = r.Notebook.ID
		s.NotebookName = r.Notebook.Name
	}
	if r.ListingError != nil {
		s.ListingError = r.ListingError.Error()
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
