package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// StringDataRightTruncationCode is raised when a value does not fit its VARCHAR column.
const StringDataRightTruncationCode = "22001"

// AsPgError unwraps err into the server-reported PostgreSQL error, if any.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsValueTooLong reports whether the server rejected a value for exceeding its column length.
func IsValueTooLong(err error) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == StringDataRightTruncationCode
}
