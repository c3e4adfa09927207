package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// An exclusion violation means the insert lost the race for a slot. Callers
// match on ErrSlotTaken to answer 409 instead of 500.
func TestTranslateBookingInsertError(t *testing.T) {
	err := translateBookingInsertError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})
	assert.ErrorIs(t, err, ErrSlotTaken)

	err = translateBookingInsertError(&pgconn.PgError{Code: "23505"})
	assert.NotErrorIs(t, err, ErrSlotTaken)

	err = translateBookingInsertError(errors.New("connection reset"))
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.Contains(t, err.Error(), "connection reset")
}
