// Package synth builds document entries for newly discovered files.
package synth

import (
	"fmt"
	"time"

	"github.com/mattsolo1/codex-sync/pkg/models"
)

const (
	NoteColor     = "#999999"
	NoteIcon      = "file-text"
	NotebookColor = "#00CD00"
	NotebookIcon  = "book-2"

	notebookIDPrefix = "automated_"
	noteIDPrefix     = "automated_note_"
	dateLayout       = "20060102"
)

// Notes returns one note per name, in input order. Positions are 1-based and
// appear in both the id and the display name.
func Notes(passID string, names []string) []*models.Note {
	notes := make([]*models.Note, 0, len(names))
	for i, name := range names {
		pos := i + 1
		notes = append(notes, &models.Note{
			Color:       NoteColor,
			Icon:        NoteIcon,
			ID:          fmt.Sprintf("%s%d_%s", noteIDPrefix, pos, passID),
			Name:        fmt.Sprintf("unnamed %d", pos),
			Favorited:   false,
			FileName:    name,
			TextContent: "",
		})
	}
	return notes
}

// Notebook wraps the notes for names in an opened notebook labelled with
// date. It returns nil when names is empty.
func Notebook(passID string, date time.Time, names []string) *models.Notebook {
	if len(names) == 0 {
		return nil
	}

	notes := Notes(passID, names)
	children := make(models.Items, 0, len(notes))
	for _, note := range notes {
		children = append(children, note)
	}

	return &models.Notebook{
		Color:    NotebookColor,
		Icon:     NotebookIcon,
		ID:       notebookIDPrefix + passID,
		Name:     NotebookName(date),
		Children: children,
		Opened:   true,
	}
}

// NotebookName is the display name of the notebook synthesized on date.
func NotebookName(date time.Time) string {
	return fmt.Sprintf("AUTO NOTEBOOK (%s)", date.Format(dateLayout))
}
