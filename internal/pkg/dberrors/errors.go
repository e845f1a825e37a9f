package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// SQLState returns the SQLSTATE carried by a PostgreSQL error, or "" when err
// did not come from the server.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsConstraintViolation reports whether err is an integrity constraint violation (class 23).
func IsConstraintViolation(err error) bool {
	code := SQLState(err)
	return len(code) == 5 && code[:2] == "23"
}
