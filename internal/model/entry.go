package model

// Entry is a short text record. ID is assigned by the database on insert and never changes.
// This is a pure domain model with no database-specific dependencies or tags.
type Entry struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}
