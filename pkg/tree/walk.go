// Package tree traverses and edits the notebook tree of a document.
package tree

import (
	"github.com/mattsolo1/codex-sync/pkg/models"
)

// Walk visits every item depth-first in document order. Depth is zero for
// top-level items.
func Walk(items models.Items, visit func(item models.Item, depth int)) {
	walk(items, 0, visit)
}

func walk(items models.Items, depth int, visit func(models.Item, int)) {
	for _, item := range items {
		visit(item, depth)
		if notebook, ok := item.(*models.Notebook); ok {
			walk(notebook.Children, depth+1, visit)
		}
	}
}

// FileIdentifiers collects the file name of every note at any depth, in
// document order. Duplicates are kept.
func FileIdentifiers(items models.Items) []string {
	var names []string
	for _, item := range items {
		switch it := item.(type) {
		case *models.Note:
			names = append(names, it.FileName)
		case *models.Notebook:
			names = append(names, FileIdentifiers(it.Children)...)
		}
	}
	return names
}

// Count returns the number of notebooks and notes in the tree.
func Count(items models.Items) (notebooks, notes int) {
	Walk(items, func(item models.Item, _ int) {
		switch item.(type) {
		case *models.Notebook:
			notebooks++
		case *models.Note:
			notes++
		}
	})
	return notebooks, notes
}

// DuplicateFileIdentifiers reports file names referenced by more than one
// note, with their reference counts.
func DuplicateFileIdentifiers(items models.Items) map[string]int {
	counts := make(map[string]int)
	for _, name := range FileIdentifiers(items) {
		counts[name]++
	}
	for name, n := range counts {
		if n < 2 {
			delete(counts, name)
		}
	}
	return counts
}
