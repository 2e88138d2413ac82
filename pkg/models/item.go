package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is a node of the document tree. It is implemented only by *Notebook
// and *Note; callers discriminate with a type switch.
type Item interface {
	isItem()
}

// Items is an ordered sequence of tree nodes.
//
// The persisted form carries no type tag. An object with a "children" key is
// a notebook, anything else is a note.
type Items []Item

// MarshalJSON writes an empty array for a nil sequence, since readers of the
// store reject null children. HTML characters in text are left unescaped.
func (items Items) MarshalJSON() ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]Item(items)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes each element as a *Notebook or *Note.
func (items *Items) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := make(Items, 0, len(raw))
	for i, element := range raw {
		item, err := decodeItem(element)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		decoded = append(decoded, item)
	}
	*items = decoded
	return nil
}

var (
	noteFields     = []string{"color", "icon", "id", "name", "favorited", "fileName", "textContent"}
	notebookFields = []string{"color", "icon", "id", "name", "children", "opened"}
)

// decodeItem requires every field of the chosen type and rejects unknown
// ones, so a malformed element fails the whole document instead of turning
// into an empty note.
func decodeItem(data json.RawMessage) (Item, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("null item")
	}

	if _, ok := fields["children"]; ok {
		if err := requireFields(fields, notebookFields); err != nil {
			return nil, fmt.Errorf("decode notebook: %w", err)
		}
		notebook := &Notebook{}
		if err := decodeStrict(data, notebook); err != nil {
			return nil, fmt.Errorf("decode notebook: %w", err)
		}
		return notebook, nil
	}

	if err := requireFields(fields, noteFields); err != nil {
		return nil, fmt.Errorf("decode note: %w", err)
	}
	note := &Note{}
	if err := decodeStrict(data, note); err != nil {
		return nil, fmt.Errorf("decode note: %w", err)
	}
	return note, nil
}

func requireFields(fields map[string]json.RawMessage, names []string) error {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			return fmt.Errorf("missing field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("field %q is null", name)
		}
	}
	return nil
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
