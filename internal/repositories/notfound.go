package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRows reports whether a single-row query matched nothing. Lookups
// translate this into a nil result; the service layer checks for nil and
// never sees the pgx sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
