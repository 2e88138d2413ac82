package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Orphans returns the regular files in dir whose names are not in
// referenced. Subdirectories and interrupted copies are skipped. A missing
// directory has no orphans.
func Orphans(dir string, referenced []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	known := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		known[name] = struct{}{}
	}

	var orphans []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || IsTempFile(entry.Name()) {
			continue
		}
		if _, ok := known[entry.Name()]; !ok {
			orphans = append(orphans, entry.Name())
		}
	}
	return orphans, nil
}

// Missing returns the referenced names that have no file in dir.
func Missing(dir string, referenced []string) []string {
	var missing []string
	for _, name := range referenced {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// TempFiles returns leftovers of interrupted copies in dir.
func TempFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var temps []string
	for _, entry := range entries {
		if IsTempFile(entry.Name()) {
			temps = append(temps, entry.Name())
		}
	}
	return temps, nil
}
