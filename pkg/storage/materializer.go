package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// tempSuffix marks in-flight copies inside the managed directory.
const tempSuffix = ".wip"

// ErrNotRegular is returned when a listed entry is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// CopyResult is the outcome of copying one file into the managed directory.
type CopyResult struct {
	Name        string
	Source      string
	Destination string
	Err         error
}

// OK reports whether the copy succeeded.
func (r CopyResult) OK() bool {
	return r.Err == nil
}

// Materializer copies files into the managed directory Dir.
type Materializer struct {
	Dir    string
	Policy OverwritePolicy
}

// NewMaterializer returns a Materializer for dir. An empty policy means
// Overwrite.
func NewMaterializer(dir string, policy OverwritePolicy) *Materializer {
	if policy == "" {
		policy = Overwrite
	}
	return &Materializer{Dir: dir, Policy: policy}
}

// Materialize copies each named file from srcDir into m.Dir. Every copy is
// attempted independently and gets its own result, in input order.
func (m *Materializer) Materialize(srcDir string, names []string) []CopyResult {
	results := make([]CopyResult, 0, len(names))
	if len(names) == 0 {
		return results
	}

	dirErr := os.MkdirAll(m.Dir, 0755)
	if dirErr != nil {
		dirErr = fmt.Errorf("create notes directory: %w", dirErr)
	}

	for _, name := range names {
		result := CopyResult{
			Name:        name,
			Source:      filepath.Join(srcDir, name),
			Destination: filepath.Join(m.Dir, name),
		}
		if dirErr != nil {
			result.Err = dirErr
		} else {
			result.Err = m.copy(result.Source, result.Destination)
		}
		results = append(results, result)
	}
	return results
}

func (m *Materializer) copy(src, dst string) error {
	if m.Policy == Reject {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("copy %s: %w", filepath.Base(dst), ErrDestinationExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat destination: %w", err)
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy %s: %w", info.Name(), ErrNotRegular)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("set mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// IsTempFile reports whether name looks like an interrupted copy.
func IsTempFile(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, tempSuffix)
}
