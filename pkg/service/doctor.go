package service

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattsolo1/codex-sync/pkg/storage"
	"github.com/mattsolo1/codex-sync/pkg/tree"
)

// CheckStatus grades a single doctor check.
type CheckStatus string

const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// Check is one finding of Diagnose.
type Check struct {
	Name    string      `json:"name" yaml:"name"`
	Status  CheckStatus `json:"status" yaml:"status"`
	Detail  string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Entries []string    `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Diagnosis collects the results of Diagnose.
type Diagnosis struct {
	Checks []Check `json:"checks" yaml:"checks"`
}

// Healthy reports whether no check failed or warned.
func (d *Diagnosis) Healthy() bool {
	for _, c := range d.Checks {
		if c.Status != CheckOK {
			return false
		}
	}
	return true
}

// Issues counts checks that did not pass.
func (d *Diagnosis) Issues() int {
	n := 0
	for _, c := range d.Checks {
		if c.Status != CheckOK {
			n++
		}
	}
	return n
}

func (d *Diagnosis) add(c Check) {
	d.Checks = append(d.Checks, c)
}

// Diagnose inspects the document and the notes directory for problems that
// reconciliation does not fix on its own.
func (s *Service) Diagnose() *Diagnosis {
	d := &Diagnosis{}

	if _, err := os.Stat(s.Store.WIPPath()); err == nil {
		d.add(Check{Name: "interrupted save", Status: CheckWarn,
			Detail: fmt.Sprintf("%s is left over from an interrupted save", s.Store.WIPPath())})
	} else {
		d.add(Check{Name: "interrupted save", Status: CheckOK})
	}

	doc, err := s.Document()
	if err != nil {
		d.add(Check{Name: "document", Status: CheckFail, Detail: err.Error()})
		return d
	}
	notebooks, notes := tree.Count(doc.Items)
	d.add(Check{Name: "document", Status: CheckOK,
		Detail: fmt.Sprintf("schema %d, %d notebooks, %d notes", doc.SchemaVersion, notebooks, notes)})

	if dups := tree.DuplicateFileIdentifiers(doc.Items); len(dups) > 0 {
		var entries []string
		for name, n := range dups {
			entries = append(entries, fmt.Sprintf("%s (%d notes)", name, n))
		}
		sort.Strings(entries)
		d.add(Check{Name: "duplicate file names", Status: CheckWarn,
			Detail: "several notes point at the same file", Entries: entries})
	} else {
		d.add(Check{Name: "duplicate file names", Status: CheckOK})
	}

	info, err := os.Stat(s.Config.NotesDir)
	switch {
	case err != nil:
		d.add(Check{Name: "notes directory", Status: CheckFail, Detail: err.Error()})
		return d
	case !info.IsDir():
		d.add(Check{Name: "notes directory", Status: CheckFail,
			Detail: fmt.Sprintf("%s is not a directory", s.Config.NotesDir)})
		return d
	default:
		d.add(Check{Name: "notes directory", Status: CheckOK, Detail: s.Config.NotesDir})
	}

	temps, err := storage.TempFiles(s.Config.NotesDir)
	d.add(listCheck("interrupted copies", temps, err))

	referenced := tree.FileIdentifiers(doc.Items)
	missing := storage.Missing(s.Config.NotesDir, referenced)
	d.add(listCheck("missing note files", missing, nil))

	orphans, err := storage.Orphans(s.Config.NotesDir, referenced)
	d.add(listCheck("unreferenced files", orphans, err))

	return d
}

func listCheck(name string, entries []string, err error) Check {
	switch {
	case err != nil:
		return Check{Name: name, Status: CheckFail, Detail: err.Error()}
	case len(entries) > 0:
		return Check{Name: name, Status: CheckWarn, Detail: strings.Join(entries, ", "), Entries: entries}
	default:
		return Check{Name: name, Status: CheckOK}
	}
}
