package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattsolo1/codex-sync/pkg/storage"
	"github.com/mattsolo1/codex-sync/pkg/tree"
)

// CleanReport lists the unreferenced files found in the notes directory.
type CleanReport struct {
	DryRun  bool             `json:"dry_run" yaml:"dry_run"`
	Orphans []string         `json:"orphans" yaml:"orphans"`
	Removed []string         `json:"removed" yaml:"removed"`
	Errors  map[string]error `json:"-" yaml:"-"`
}

// Clean removes files from the notes directory that no note references.
// With dryRun set it only reports them. A failed removal is recorded and the
// rest still proceed.
func (s *Service) Clean(dryRun bool) (*CleanReport, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}

	orphans, err := storage.Orphans(s.Config.NotesDir, tree.FileIdentifiers(doc.Items))
	if err != nil {
		return nil, fmt.Errorf("find unreferenced files: %w", err)
	}

	report := &CleanReport{
		DryRun:  dryRun,
		Orphans: orphans,
		Removed: []string{},
		Errors:  make(map[string]error),
	}
	if dryRun {
		return report, nil
	}

	log := s.logger.WithField("sub-component", "clean")
	for _, name := range orphans {
		if err := os.Remove(filepath.Join(s.Config.NotesDir, name)); err != nil {
			report.Errors[name] = err
			log.WithField("file", name).WithError(err).Warn("Failed to remove file")
			continue
		}
		report.Removed = append(report.Removed, name)
		log.WithField("file", name).Info("Removed unreferenced file")
	}
	return report, nil
}
