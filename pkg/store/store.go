// Package store reads and writes the JSON document that holds the notebook
// tree.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattsolo1/codex-sync/pkg/models"
)

const (
	wipSuffix    = ".wip"
	backupSuffix = ".bak"
)

var (
	// ErrNotFound is returned when no document exists at the store path.
	ErrNotFound = errors.New("document not found")
	// ErrExists is returned by Create when a document is already present.
	ErrExists = errors.New("document already exists")
)

// Store is a document persisted as a single JSON file.
type Store struct {
	Path string
	// Backup keeps a copy of the previous content next to Path on every Save.
	Backup bool
}

// New returns a Store for path.
func New(path string, backup bool) *Store {
	return &Store{Path: path, Backup: backup}
}

// WIPPath is where a save is staged before it replaces Path.
func (s *Store) WIPPath() string {
	return s.Path + wipSuffix
}

// BackupPath is where the previous content is kept.
func (s *Store) BackupPath() string {
	return s.Path + backupSuffix
}

// Exists reports whether a document is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads and decodes the document.
func (s *Store) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if doc.Items == nil {
		doc.Items = models.Items{}
	}
	return &doc, nil
}

// Save replaces the document on disk. The new content is written to
// WIPPath, synced, and renamed over Path, so a failed save leaves the
// previous content in place. When Backup is set the previous content is
// first copied to BackupPath, which is returned.
func (s *Store) Save(doc *models.Document) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	var backupPath string
	if s.Backup {
		backupPath, err = s.backup()
		if err != nil {
			return "", err
		}
	}

	if err := s.writeAtomic(data); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

// Create writes an empty document. It fails with ErrExists if one is
// already present.
func (s *Store) Create(schemaVersion int) error {
	if s.Exists() {
		return fmt.Errorf("%s: %w", s.Path, ErrExists)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	data, err := Encode(models.NewDocument(schemaVersion))
	if err != nil {
		return err
	}
	return s.writeAtomic(data)
}

// Encode renders a document as compact JSON without HTML escaping.
func Encode(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s *Store) backup() (string, error) {
	src, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open document for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat document for backup: %w", err)
	}
	mode := info.Mode().Perm()

	backupPath := s.BackupPath()
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	// A backup left by an earlier save keeps its old mode unless reset.
	if err := dst.Chmod(mode); err != nil {
		dst.Close()
		return "", fmt.Errorf("set backup mode: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}
	return backupPath, nil
}

func (s *Store) writeAtomic(data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}

	wip := s.WIPPath()
	f, err := os.OpenFile(wip, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", wip, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(wip)
		return fmt.Errorf("write %s: %w", wip, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(wip)
		return fmt.Errorf("sync %s: %w", wip, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(wip)
		return fmt.Errorf("close %s: %w", wip, err)
	}

	if err := os.Rename(wip, s.Path); err != nil {
		os.Remove(wip)
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}
	return nil
}
