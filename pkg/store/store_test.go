package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/codex-sync/pkg/models"
)

const original = `{"schema_version":2,"items":[{"color":"#999999","icon":"file-text","id":"n1","name":"one","favorited":false,"fileName":"a.md","textContent":"<b>&</b>"}]}`

func newStore(t *testing.T, content string, backup bool) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "save.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return New(path, backup)
}

func TestLoad(t *testing.T) {
	s := newStore(t, original, false)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, doc.SchemaVersion)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "a.md", doc.Items[0].(*models.Note).FileName)
}

func TestLoad_Errors(t *testing.T) {
	_, err := newStore(t, "", false).Load()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = newStore(t, "{not json", false).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSaveRoundTripIsCompact(t *testing.T) {
	s := newStore(t, original, false)

	doc, err := s.Load()
	require.NoError(t, err)
	backupPath, err := s.Save(doc)
	require.NoError(t, err)
	assert.Empty(t, backupPath)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "unchanged document is rewritten byte for byte")

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "mode of the existing store is kept")
	assert.NoFileExists(t, s.WIPPath())
}

func TestSave_BackupHoldsPriorBytes(t *testing.T) {
	s := newStore(t, original, true)

	doc, err := s.Load()
	require.NoError(t, err)
	doc.Items = append(doc.Items, &models.Note{ID: "n2", FileName: "b.md"})

	backupPath, err := s.Save(doc)
	require.NoError(t, err)
	assert.Equal(t, s.BackupPath(), backupPath)

	backup, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 2)
}

func TestSave_BackupKeepsDocumentMode(t *testing.T) {
	s := newStore(t, original, true)

	// A stale backup from an earlier run with a wider mode is tightened too.
	require.NoError(t, os.WriteFile(s.BackupPath(), []byte("old"), 0644))
	require.NoError(t, os.Chmod(s.BackupPath(), 0644))

	doc, err := s.Load()
	require.NoError(t, err)
	backupPath, err := s.Save(doc)
	require.NoError(t, err)

	info, err := os.Stat(backupPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestSave_FailureLeavesOriginal(t *testing.T) {
	s := newStore(t, original, false)

	// A directory squatting on the staging path makes the write fail.
	require.NoError(t, os.Mkdir(s.WIPPath(), 0755))

	_, err := s.Save(models.NewDocument(1))
	require.Error(t, err)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	s := New(path, true)

	require.NoError(t, s.Create(models.DefaultSchemaVersion))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"schema_version":1,"items":[]}`, string(data))

	assert.ErrorIs(t, s.Create(models.DefaultSchemaVersion), ErrExists)
}
