package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeUniqueViolation     = "23505"
	pgCodeUndefinedTable      = "42P01"
)

// PgErrorCode returns the SQLSTATE of a wrapped postgres error, or "" for any other error.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolationError reports an insert of an already stored key.
func IsUniqueViolationError(err error) bool {
	return PgErrorCode(err) == pgCodeUniqueViolation
}

// IsForeignKeyViolationError reports a row referencing a missing parent row.
func IsForeignKeyViolationError(err error) bool {
	return PgErrorCode(err) == pgCodeForeignKeyViolation
}

// IsUndefinedTableError reports a query against a table that was never migrated.
func IsUndefinedTableError(err error) bool {
	return PgErrorCode(err) == pgCodeUndefinedTable
}
