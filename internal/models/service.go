package models

import "time"

// Service is a bookable offering owned by one artisan.
type Service struct {
	ID            int        `json:"id"`
	ArtisanID     int        `json:"artisan_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Price         float64    `json:"price"`
	Duration      int        `json:"duration"`    // minutes
	BufferMinutes int        `json:"buffer_time"` // idle minutes between bookings
	ImagePath     string     `json:"image_path"`
	TimeSlots     []TimeSlot `json:"time_slots"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TimeSlot is a weekly availability window for a service.
// Day is a French weekday name ("lundi".."dimanche"); Start and End are
// "HH:MM" clock strings.
type TimeSlot struct {
	ID        int    `json:"id"`
	ServiceID int    `json:"service_id"`
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// CreateServiceRequest represents the request body for creating a service
type CreateServiceRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Price         float64    `json:"price"`
	Duration      int        `json:"duration"`
	BufferMinutes int        `json:"buffer_time"`
	TimeSlots     []TimeSlot `json:"time_slots"`
}

// ServiceWithArtisan includes the owning artisan's public details
type ServiceWithArtisan struct {
	Service
	ArtisanName       string `json:"artisan_name"`
	ArtisanSpeciality string `json:"artisan_speciality"`
}
