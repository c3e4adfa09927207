package models

import "time"

// Booking links a client identity to a service and artisan for a time slot.
// The client fields are as supplied on submission; the client is not
// necessarily a registered user.
type Booking struct {
	ID            int           `json:"id"`
	ServiceID     int           `json:"service_id"`
	ArtisanID     int           `json:"artisan_id"`
	ClientUserID  *int          `json:"client_user_id"` // nil for guest bookings
	ClientName    string        `json:"client_name"`
	ClientPhone   string        `json:"client_phone"`
	ClientEmail   string        `json:"client_email"`
	Address       string        `json:"address"`
	BookingDate   time.Time     `json:"booking_date"` // calendar date, midnight Paris time
	StartTime     string        `json:"start_time"`   // "HH:MM"
	EndTime       string        `json:"end_time"`     // "HH:MM" = start + duration + buffer
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes"`
	CreatedByID   int           `json:"created_by_id"` // client user or secretary who submitted
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CreateBookingRequest represents the request body for a booking submission
type CreateBookingRequest struct {
	ServiceID   int    `json:"service_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Address     string `json:"address"`
	Date        string `json:"date"`       // "2006-01-02"
	StartTime   string `json:"start_time"` // "HH:MM"
	Notes       string `json:"notes"`
}

// UpdateBookingStatusRequest represents a status transition request
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// BookingWithService includes the booked service's details
type BookingWithService struct {
	Booking
	ServiceTitle string  `json:"service_title"`
	ServicePrice float64 `json:"service_price"`
	ArtisanName  string  `json:"artisan_name"`
}

// AvailabilityResponse is the slot list for a (service, date) pair
type AvailabilityResponse struct {
	ServiceID int      `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}
