package models

import "time"

// Mission is the work-execution record created when a booking is accepted.
type Mission struct {
	ID              int           `json:"id"`
	BookingID       int           `json:"booking_id"`
	ArtisanID       int           `json:"artisan_id"`
	Title           string        `json:"title"`
	WorkDetails     string        `json:"work_details"`
	Status          MissionStatus `json:"status"`
	ValidationToken string        `json:"-"` // public token, never listed in API responses
	ValidatedAt     *time.Time    `json:"validated_at"`
	Materials       []MissionMaterial `json:"materials"`
	Photos          []MissionPhoto    `json:"photos"`
	Comments        []MissionComment  `json:"comments"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// MissionMaterial is a material line used during a mission.
type MissionMaterial struct {
	ID        int     `json:"id"`
	MissionID int     `json:"mission_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// MissionPhoto is an uploaded photo attached to a mission.
type MissionPhoto struct {
	ID        int       `json:"id"`
	MissionID int       `json:"mission_id"`
	Path      string    `json:"path"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// MissionComment is a free-form progress note on a mission.
type MissionComment struct {
	ID        int       `json:"id"`
	MissionID int       `json:"mission_id"`
	AuthorID  int       `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateMissionRequest represents the request body for updating work details
type UpdateMissionRequest struct {
	Title       string `json:"title"`
	WorkDetails string `json:"work_details"`
}

// AddMaterialRequest represents the request body for adding a material line
type AddMaterialRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// AddCommentRequest represents the request body for adding a comment
type AddCommentRequest struct {
	Body string `json:"body"`
}
