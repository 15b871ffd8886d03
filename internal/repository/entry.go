package repository

import (
	"context"
	"errors"

	"entryapi/internal/model"
)

// ErrValueTooLong is returned when a value exceeds its column length.
var ErrValueTooLong = errors.New("value too long")

// EntryRepository defines data access for entries using SQL queries only.
// No business logic here, only persistence.
type EntryRepository interface {
	// Create inserts a new row and returns it with the database-assigned ID.
	// Every call inserts; identical content yields distinct rows.
	Create(ctx context.Context, content string) (*model.Entry, error)

	// List returns every stored entry in the database's default order.
	// An empty table yields an empty, non-nil slice.
	List(ctx context.Context) ([]model.Entry, error)
}
