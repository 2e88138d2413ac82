package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codex-sync/pkg/delta"
	"github.com/mattsolo1/codex-sync/pkg/journal"
	"github.com/mattsolo1/codex-sync/pkg/storage"
	"github.com/mattsolo1/codex-sync/pkg/synth"
	"github.com/mattsolo1/codex-sync/pkg/tree"
)

type reconcileOptions struct {
	dryRun    bool
	overwrite storage.OverwritePolicy
}

type ReconcileOption func(*reconcileOptions)

// WithDryRun computes the pass without copying, saving, or journaling.
func WithDryRun() ReconcileOption {
	return func(o *reconcileOptions) {
		o.dryRun = true
	}
}

// WithOverwritePolicy overrides the configured collision policy for one pass.
func WithOverwritePolicy(policy storage.OverwritePolicy) ReconcileOption {
	return func(o *reconcileOptions) {
		if policy != "" {
			o.overwrite = policy
		}
	}
}

// Reconcile brings the document in line with the files in sourceDir. New
// files are copied into the notes directory and gathered under a fresh
// notebook; notes whose files are gone are removed wherever they sit in the
// tree.
//
// A listing failure is not fatal: the pass continues as if sourceDir were
// empty, which marks every referenced note stale. Entries whose names are not
// valid UTF-8 are skipped and reported in ListingError. Load and save failures
// abort the pass with the document unchanged on disk.
func (s *Service) Reconcile(sourceDir string, options ...ReconcileOption) (*Report, error) {
	opts := &reconcileOptions{overwrite: s.Config.Overwrite}
	for _, opt := range options {
		opt(opts)
	}

	report := &Report{
		PassID:       s.newID(),
		SourceDir:    sourceDir,
		DocumentPath: s.Store.Path,
		DryRun:       opts.dryRun,
		StartTime:    s.now(),
	}
	log := s.logger.WithField("pass", report.PassID)

	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	report.Document = doc

	referenced := tree.FileIdentifiers(doc.Items)

	onDisk, err := storage.ListEntries(sourceDir)
	if err != nil {
		report.ListingError = err
		if errors.Is(err, storage.ErrInvalidName) {
			log.WithError(err).Warn("Skipped entries whose names cannot be stored")
		} else {
			log.WithError(err).Warn("Could not list source directory; continuing with an empty listing")
		}
	}

	report.Delta = delta.Compute(referenced, onDisk)
	log.WithFields(logrus.Fields{
		"referenced": len(referenced),
		"on_disk":    len(onDisk),
		"new":        len(report.Delta.New),
		"stale":      len(report.Delta.Stale),
	}).Debug("Computed delta")

	if !opts.dryRun {
		materializer := storage.NewMaterializer(s.Config.NotesDir, opts.overwrite)
		report.Copies = materializer.Materialize(sourceDir, report.Delta.New)
		for _, c := range report.Copies {
			entry := log.WithField("file", c.Name)
			if c.OK() {
				entry.Info("Copied file")
			} else {
				entry.WithError(c.Err).Warn("Failed to copy file")
			}
		}
	}

	doc.Items, report.Pruned = tree.Prune(doc.Items, report.Delta.Stale)
	for _, n := range report.Pruned {
		log.WithField("file", n.FileName).Info("Removed stale note")
	}

	if nb := synth.Notebook(report.PassID, report.StartTime, report.Delta.New); nb != nil {
		doc.Items = append(doc.Items, nb)
		report.Notebook = nb
		log.WithField("notebook", nb.ID).Infof("Added notebook with %d notes", len(nb.Children))
	}

	if opts.dryRun {
		report.Complete(s.now())
		return report, nil
	}

	backupPath, err := s.Store.Save(doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	report.BackupPath = backupPath
	report.Saved = true
	report.Complete(s.now())

	s.record(report)
	return report, nil
}

func (s *Service) record(r *Report) {
	if s.Journal == nil {
		return
	}

	entry := &journal.Entry{
		PassID:       r.PassID,
		SourceDir:    r.SourceDir,
		DocumentPath: r.DocumentPath,
		StartedAt:    r.StartTime,
		FinishedAt:   r.EndTime,
		New:          len(r.Delta.New),
		Stale:        len(r.Delta.Stale),
		Copied:       len(r.Copied()),
		CopyFailures: len(r.CopyFailures()),
		Pruned:       len(r.Pruned),
	}
	if r.Notebook != nil {
		entry.NotebookID = r.Notebook.ID
	}
	if r.ListingError != nil {
		entry.ListingError = r.ListingError.Error()
	}

	if err := s.Journal.Record(entry); err != nil {
		s.logger.WithError(err).Warn("Failed to record pass")
	}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
