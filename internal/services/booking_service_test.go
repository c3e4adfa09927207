package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ouveo-backend/internal/models"
)

func TestCanDeleteBooking(t *testing.T) {
	tests := []struct {
		name    string
		userID  int
		booking *models.Booking
		wantErr error
	}{
		{
			name:    "creator deletes pending booking",
			userID:  3,
			booking: &models.Booking{CreatedByID: 3, Status: models.BookingPending},
			wantErr: nil,
		},
		{
			name:    "unknown booking",
			userID:  3,
			booking: nil,
			wantErr: ErrNotFound,
		},
		{
			name:    "someone else's booking",
			userID:  3,
			booking: &models.Booking{CreatedByID: 7, Status: models.BookingPending},
			wantErr: ErrForbidden,
		},
		{
			name:    "accepted booking",
			userID:  3,
			booking: &models.Booking{CreatedByID: 3, Status: models.BookingAccepted},
		},
		{
			name:    "completed booking",
			userID:  3,
			booking: &models.Booking{CreatedByID: 3, Status: models.BookingCompleted},
		},
		{
			name:    "cancelled booking",
			userID:  3,
			booking: &models.Booking{CreatedByID: 3, Status: models.BookingCancelled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := canDeleteBooking(tt.userID, tt.booking)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.booking != nil && tt.booking.Status != models.BookingPending:
				assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
