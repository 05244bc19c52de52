package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned for any lookup that matches no row.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// IsDoubleBooking reports whether err is the postgres exclusion constraint
// rejecting two overlapping effective intervals on one resource-day. It is
// the database-level backstop behind the in-transaction overlap check.
func IsDoubleBooking(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return (pgErr.Code == "23P01" || pgErr.Code == "23505") &&
		pgErr.ConstraintName == "no_double_booking"
}
