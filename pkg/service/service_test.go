package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/codex-sync/pkg/models"
	"github.com/mattsolo1/codex-sync/pkg/storage"
	"github.com/mattsolo1/codex-sync/pkg/store"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNew_Validation(t *testing.T) {
	_, err := New(&Config{NotesDir: "n"}, quietLogger())
	assert.Error(t, err)

	_, err = New(&Config{DocumentPath: "d"}, quietLogger())
	assert.Error(t, err)

	svc, err := New(&Config{DocumentPath: "d", NotesDir: "n"}, nil)
	require.NoError(t, err)
	assert.Equal(t, storage.Overwrite, svc.Config.Overwrite)
	assert.Nil(t, svc.Journal)
	assert.NoError(t, svc.Close())

	_, err = svc.History(5)
	assert.ErrorIs(t, err, ErrNoJournal)
}

func TestInit(t *testing.T) {
	root := t.TempDir()
	config := &Config{
		DocumentPath: filepath.Join(root, "codex", "save.json"),
		NotesDir:     filepath.Join(root, "codex", "notes"),
	}
	svc, err := New(config, quietLogger())
	require.NoError(t, err)

	require.NoError(t, svc.Init(7))
	assert.DirExists(t, config.NotesDir)

	doc, err := svc.Document()
	require.NoError(t, err)
	assert.Equal(t, 7, doc.SchemaVersion)
	assert.Empty(t, doc.Items)

	assert.ErrorIs(t, svc.Init(1), store.ErrExists)
}

func TestDiagnose_Healthy(t *testing.T) {
	f := newFixture(t, models.Items{note("a.md")})
	f.addSource(t, "a.md")
	require.NoError(t, os.MkdirAll(f.config.NotesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.config.NotesDir, "a.md"), []byte("a"), 0644))

	d := f.svc.Diagnose()
	assert.True(t, d.Healthy(), "%+v", d.Checks)
	assert.Zero(t, d.Issues())
}

func TestDiagnose_FindsProblems(t *testing.T) {
	f := newFixture(t, models.Items{
		note("a.md"),
		notebook("nb", note("a.md"), note("missing.md")),
	})
	require.NoError(t, os.MkdirAll(f.config.NotesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.config.NotesDir, "a.md"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.config.NotesDir, "stray.md"), []byte("s"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.config.NotesDir, ".a.md.1.wip"), []byte("partial"), 0644))
	require.NoError(t, os.WriteFile(f.svc.Store.WIPPath(), []byte("{"), 0644))

	d := f.svc.Diagnose()
	assert.False(t, d.Healthy())

	byName := make(map[string]Check)
	for _, c := range d.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, CheckWarn, byName["interrupted save"].Status)
	assert.Equal(t, CheckOK, byName["document"].Status)
	assert.Equal(t, []string{"a.md (2 notes)"}, byName["duplicate file names"].Entries)
	assert.Equal(t, []string{".a.md.1.wip"}, byName["interrupted copies"].Entries)
	assert.Equal(t, []string{"missing.md"}, byName["missing note files"].Entries)
	assert.Equal(t, []string{"stray.md"}, byName["unreferenced files"].Entries)
	assert.Equal(t, 5, d.Issues())
}

func TestDiagnose_BrokenDocument(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.WriteFile(f.config.DocumentPath, []byte("nope"), 0644))

	d := f.svc.Diagnose()
	last := d.Checks[len(d.Checks)-1]
	assert.Equal(t, "document", last.Name)
	assert.Equal(t, CheckFail, last.Status)
}

func TestClean(t *testing.T) {
	f := newFixture(t, models.Items{notebook("nb", note("keep.md"))})
	require.NoError(t, os.MkdirAll(filepath.Join(f.config.NotesDir, "subdir"), 0755))
	for _, name := range []string{"keep.md", "stray1.md", "stray2.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(f.config.NotesDir, name), []byte(name), 0644))
	}

	preview, err := f.svc.Clean(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"stray1.md", "stray2.md"}, preview.Orphans)
	assert.Empty(t, preview.Removed)
	assert.FileExists(t, filepath.Join(f.config.NotesDir, "stray1.md"))

	report, err := f.svc.Clean(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"stray1.md", "stray2.md"}, report.Removed)
	assert.Empty(t, report.Errors)
	assert.NoFileExists(t, filepath.Join(f.config.NotesDir, "stray1.md"))
	assert.FileExists(t, filepath.Join(f.config.NotesDir, "keep.md"))
	assert.DirExists(t, filepath.Join(f.config.NotesDir, "subdir"))
}
