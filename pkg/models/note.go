package models

// Note is a leaf of the document tree. FileName links it to a file in the
// managed notes directory and is the join key used during reconciliation.
type Note struct {
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Favorited   bool   `json:"favorited"`
	FileName    string `json:"fileName"`
	TextContent string `json:"textContent"`
}

// Notebook groups notes and other notebooks.
type Notebook struct {
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children Items  `json:"children"`
	Opened   bool   `json:"opened"`
}

func (*Note) isItem()     {}
func (*Notebook) isItem() {}
