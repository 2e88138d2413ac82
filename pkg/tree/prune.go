package tree

import (
	"github.com/mattsolo1/codex-sync/pkg/models"
)

// Prune removes every note whose file name is listed in stale, at any depth.
// Notebooks are always kept, including ones left empty. The returned slice
// replaces items; removed holds the dropped notes in document order.
func Prune(items models.Items, stale []string) (kept models.Items, removed []*models.Note) {
	if len(stale) == 0 {
		return items, nil
	}

	staleSet := make(map[string]struct{}, len(stale))
	for _, name := range stale {
		staleSet[name] = struct{}{}
	}
	return prune(items, staleSet)
}

func prune(items models.Items, stale map[string]struct{}) (models.Items, []*models.Note) {
	kept := make(models.Items, 0, len(items))
	var removed []*models.Note

	for _, item := range items {
		switch it := item.(type) {
		case *models.Note:
			if _, ok := stale[it.FileName]; ok {
				removed = append(removed, it)
				continue
			}
			kept = append(kept, it)
		case *models.Notebook:
			var dropped []*models.Note
			it.Children, dropped = prune(it.Children, stale)
			removed = append(removed, dropped...)
			kept = append(kept, it)
		}
	}
	return kept, removed
}
