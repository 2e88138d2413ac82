package models

// DefaultSchemaVersion is written into documents created from scratch.
const DefaultSchemaVersion = 1

// Document is the root of the persisted notebook tree.
type Document struct {
	SchemaVersion int   `json:"schema_version"`
	Items         Items `json:"items"`
}

// NewDocument returns an empty document with the given schema version.
func NewDocument(schemaVersion int) *Document {
	return &Document{
		SchemaVersion: schemaVersion,
		Items:         Items{},
	}
}
