package models

import "time"

// PortfolioItem is a showcase entry on an artisan's public profile.
type PortfolioItem struct {
	ID          int       `json:"id"`
	ArtisanID   int       `json:"artisan_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePortfolioItemRequest represents the request to create a portfolio item
type CreatePortfolioItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path"`
}
