package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryapi/internal/database"
	"entryapi/internal/logger"
	"entryapi/internal/repository"
)

func newRepo(t *testing.T) (*EntryPostgres, sqlmock.Sqlmock, func() int) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	inUse := func() int { return db.Stats().InUse }
	return NewEntryPostgres(database.New(db, logger.Discard())), mock, inUse
}

func TestEntryPostgres_Create(t *testing.T) {
	repo, mock, inUse := newRepo(t)
	ctx := context.Background()

	t.Run("returns assigned id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs("hello").
			WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).AddRow(1, "hello"))

		got, err := repo.Create(ctx, "hello")

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "hello", got.Content)
		assert.Equal(t, 0, inUse())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("identical content inserts twice", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs("same").
			WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).AddRow(2, "same"))
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs("same").
			WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).AddRow(3, "same"))

		first, err := repo.Create(ctx, "same")
		require.NoError(t, err)
		second, err := repo.Create(ctx, "same")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error releases session", func(t *testing.T) {
		tooLong := strings.Repeat("x", 256)
		mock.ExpectQuery("INSERT INTO entries").
			WithArgs(tooLong).
			WillReturnError(&pgconn.PgError{Code: StringDataRightTruncationCode})

		got, err := repo.Create(ctx, tooLong)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrValueTooLong)
		assert.True(t, IsValueTooLong(err))
		assert.Equal(t, 0, inUse())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEntryPostgres_List(t *testing.T) {
	repo, mock, inUse := newRepo(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "content"}).
			AddRow(2, "second").
			AddRow(1, "first")
		mock.ExpectQuery("SELECT id, content FROM entries").WillReturnRows(rows)

		items, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, int64(2), items[0].ID)
		assert.Equal(t, "first", items[1].Content)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, content FROM entries").
			WillReturnRows(sqlmock.NewRows([]string{"id", "content"}))

		items, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("row error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "content"}).
			AddRow(1, "first").
			RowError(0, errors.New("connection reset"))
		mock.ExpectQuery("SELECT id, content FROM entries").WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.Error(t, err)
		assert.Nil(t, items)
		assert.Equal(t, 0, inUse())
	})
}

func TestIsValueTooLong(t *testing.T) {
	assert.True(t, IsValueTooLong(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "22001"})))
	assert.False(t, IsValueTooLong(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsValueTooLong(errors.New("plain")))
}
