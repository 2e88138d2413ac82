package tree

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"

	"github.com/mattsolo1/codex-sync/pkg/models"
)

// Render draws the document as an indented tree rooted at rootLabel.
// Notes show their file name in brackets.
func Render(items models.Items, rootLabel string) string {
	root := gotree.New(rootLabel)
	addItems(root, items)
	return root.Print()
}

func addItems(parent gotree.Tree, items models.Items) {
	for _, item := range items {
		switch it := item.(type) {
		case *models.Notebook:
			addItems(parent.Add(it.Name+"/"), it.Children)
		case *models.Note:
			parent.Add(fmt.Sprintf("%s [%s]", it.Name, it.FileName))
		}
	}
}
