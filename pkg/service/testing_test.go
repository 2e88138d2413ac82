package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/codex-sync/pkg/models"
	"github.com/mattsolo1/codex-sync/pkg/tree"
)

var fixedNow = time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	sourceDir string
	config    *Config
}

func newFixture(t *testing.T, items models.Items, opts ...Option) *fixture {
	t.Helper()
	root := t.TempDir()

	config := &Config{
		DocumentPath: filepath.Join(root, "codex", "save.json"),
		NotesDir:     filepath.Join(root, "codex", "notes"),
		DataDir:      filepath.Join(root, "data"),
		Backup:       true,
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(config.DocumentPath), 0755))

	doc := models.NewDocument(models.DefaultSchemaVersion)
	if items != nil {
		doc.Items = items
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config.DocumentPath, data, 0644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	pass := 0
	defaults := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			pass++
			return fmt.Sprintf("pass%d", pass)
		}),
	}
	svc, err := New(config, logger, append(defaults, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	source := filepath.Join(root, "source")
	require.NoError(t, os.MkdirAll(source, 0755))

	return &fixture{svc: svc, sourceDir: source, config: config}
}

func (f *fixture) addSource(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(f.sourceDir, name), []byte("content of "+name), 0644))
	}
}

func (f *fixture) load(t *testing.T) *models.Document {
	t.Helper()
	doc, err := f.svc.Document()
	require.NoError(t, err)
	return doc
}

func (f *fixture) fileNames(t *testing.T) []string {
	t.Helper()
	return tree.FileIdentifiers(f.load(t).Items)
}

func note(file string) *models.Note {
	return &models.Note{Color: "#999999", Icon: "file-text", ID: "id-" + file, Name: file, FileName: file}
}

func notebook(name string, children ...models.Item) *models.Notebook {
	return &models.Notebook{ID: "id-" + name, Name: name, Children: children}
}
