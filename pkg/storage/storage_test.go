package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestListEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "b")
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	writeFile(t, filepath.Join(dir, "sub", "nested.md"), "n")

	names, err := ListEntries(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md", "sub"}, names, "directories are listed, nested files are not")
}

func TestListEntries_MissingDir(t *testing.T) {
	names, err := ListEntries(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestListEntries_SkipsInvalidNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.md"), "g")
	writeFile(t, filepath.Join(dir, "bad\xff.md"), "b")

	names, err := ListEntries(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Contains(t, err.Error(), `"bad\xff.md"`)
	assert.Equal(t, []string{"good.md"}, names)
}

func TestParseOverwritePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OverwritePolicy
		wantErr bool
	}{
		{in: "", want: Overwrite},
		{in: "overwrite", want: Overwrite},
		{in: "REJECT", want: Reject},
		{in: " reject ", want: Reject},
		{in: "merge", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOverwritePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverwritePolicy_UnmarshalText(t *testing.T) {
	var p OverwritePolicy
	require.NoError(t, p.UnmarshalText([]byte("reject")))
	assert.Equal(t, Reject, p)
	assert.Error(t, p.Set("bogus"))
	assert.Equal(t, Reject, p, "failed parse leaves the value unchanged")
}

func TestMaterialize(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "notes")
	writeFile(t, filepath.Join(src, "c.md"), "see")
	require.NoError(t, os.WriteFile(filepath.Join(src, "x.sh"), []byte("#!/bin/sh"), 0755))

	m := NewMaterializer(dst, "")
	assert.Equal(t, Overwrite, m.Policy)

	results := m.Materialize(src, []string{"c.md", "x.sh"})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.OK(), "copy %s: %v", r.Name, r.Err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "c.md"))
	require.NoError(t, err)
	assert.Equal(t, "see", string(data))

	info, err := os.Stat(filepath.Join(dst, "x.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	temps, err := TempFiles(dst)
	require.NoError(t, err)
	assert.Empty(t, temps)
}

func TestMaterialize_ContinuesAfterFailure(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "a")
	writeFile(t, filepath.Join(src, "dir", "inner.md"), "i")
	writeFile(t, filepath.Join(src, "c.md"), "c")

	results := NewMaterializer(dst, Overwrite).Materialize(src, []string{"a.md", "missing.md", "dir", "c.md"})
	require.Len(t, results, 4)

	assert.True(t, results[0].OK())
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)
	assert.ErrorIs(t, results[2].Err, ErrNotRegular)
	assert.True(t, results[3].OK(), "later copies still run")

	assert.FileExists(t, filepath.Join(dst, "a.md"))
	assert.FileExists(t, filepath.Join(dst, "c.md"))
	assert.NoFileExists(t, filepath.Join(dst, "missing.md"))
}

func TestMaterialize_OverwritePolicies(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "new")

	t.Run("overwrite replaces", func(t *testing.T) {
		dst := t.TempDir()
		writeFile(t, filepath.Join(dst, "a.md"), "old")

		results := NewMaterializer(dst, Overwrite).Materialize(src, []string{"a.md"})
		require.True(t, results[0].OK())

		data, err := os.ReadFile(filepath.Join(dst, "a.md"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("reject leaves destination untouched", func(t *testing.T) {
		dst := t.TempDir()
		writeFile(t, filepath.Join(dst, "a.md"), "old")

		results := NewMaterializer(dst, Reject).Materialize(src, []string{"a.md"})
		assert.ErrorIs(t, results[0].Err, ErrDestinationExists)

		data, err := os.ReadFile(filepath.Join(dst, "a.md"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})
}

func TestMaterialize_NoNames(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "never")
	results := NewMaterializer(dst, Overwrite).Materialize(t.TempDir(), nil)
	assert.Empty(t, results)
	assert.NoDirExists(t, dst, "nothing to copy, nothing created")
}

func TestOrphansAndMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "kept.md"), "k")
	writeFile(t, filepath.Join(dir, "orphan.md"), "o")
	writeFile(t, filepath.Join(dir, ".orphan.md.123.wip"), "partial")
	writeFile(t, filepath.Join(dir, "sub", "x.md"), "x")

	orphans, err := Orphans(dir, []string{"kept.md", "gone.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan.md"}, orphans)

	assert.Equal(t, []string{"gone.md"}, Missing(dir, []string{"kept.md", "gone.md"}))

	temps, err := TempFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".orphan.md.123.wip"}, temps)

	none, err := Orphans(filepath.Join(dir, "absent"), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
