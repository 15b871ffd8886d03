package postgres

import (
	"context"
	"fmt"

	"entryapi/internal/database"
	"entryapi/internal/model"
	"entryapi/internal/repository"
)

// EntryPostgres is a PostgreSQL implementation of repository.EntryRepository.
// Each call runs inside its own scoped session and contains no business logic.
type EntryPostgres struct {
	client *database.Client
}

// NewEntryPostgres creates a new EntryPostgres repository.
func NewEntryPostgres(client *database.Client) *EntryPostgres {
	return &EntryPostgres{client: client}
}

var _ repository.EntryRepository = (*EntryPostgres)(nil)

// Create inserts a new entry row and returns the stored record.
func (r *EntryPostgres) Create(ctx context.Context, content string) (*model.Entry, error) {
	const q = `
		INSERT INTO entries (content)
		VALUES ($1)
		RETURNING id, content
	`
	var out model.Entry
	err := r.client.WithSession(ctx, func(s *database.Session) error {
		return s.QueryRowContext(ctx, q, content).Scan(&out.ID, &out.Content)
	})
	if err != nil {
		if IsValueTooLong(err) {
			return nil, fmt.Errorf("%w: %w", repository.ErrValueTooLong, err)
		}
		return nil, err
	}
	return &out, nil
}

// List returns all entries without imposing an order.
func (r *EntryPostgres) List(ctx context.Context) ([]model.Entry, error) {
	const q = `SELECT id, content FROM entries`

	items := make([]model.Entry, 0)
	err := r.client.WithSession(ctx, func(s *database.Session) error {
		rows, err := s.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e model.Entry
			if err := rows.Scan(&e.ID, &e.Content); err != nil {
				return err
			}
			items = append(items, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
