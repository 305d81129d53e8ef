package repository

import (
	"errors"
	"fmt"
	"strings"

	ar "acme_reviews"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a unique-key violation from either backend.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return isSQLiteConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
}

// isForeignKeyViolation reports whether err is a foreign-key violation from either backend.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return isSQLiteConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
}

// isSQLiteConstraint matches the extended result code, falling back to the
// primary SQLITE_CONSTRAINT code plus message when extended codes are off.
func isSQLiteConstraint(err error, extended int, marker string) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == extended {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), marker)
}

// wrapWriteErr maps constraint violations on insert/update to domain error
// kinds; anything else is wrapped with op.
func wrapWriteErr(err error, what, op string) error {
	switch {
	case isUniqueViolation(err):
		return ar.Errorf(ar.ErrConflict, "%s already exists", what)
	case isForeignKeyViolation(err):
		return ar.NotFoundf("%s references a missing record", what)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
