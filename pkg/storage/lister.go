// Package storage manages the directory of note files the document refers to.
package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidName is reported for entries whose names are not valid UTF-8.
// JSON cannot carry such a name unchanged, so a note could never be matched
// back to its file.
var ErrInvalidName = errors.New("name is not valid UTF-8")

// ListEntries returns the names of everything directly inside dir, files and
// subdirectories alike, in lexical order. When the directory cannot be read
// it returns an empty slice together with the error.
//
// Entries with names that are not valid UTF-8 are left out. The remaining
// names are still returned, with an error wrapping ErrInvalidName.
func ListEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	var skipped []string
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			skipped = append(skipped, fmt.Sprintf("%q", name))
			continue
		}
		names = append(names, name)
	}

	if len(skipped) > 0 {
		return names, fmt.Errorf("list %s: skipped %s: %w", dir, strings.Join(skipped, ", "), ErrInvalidName)
	}
	return names, nil
}
