package models

import "time"

// Roles. Client accounts are first-class: the role enum includes "client"
// even though clients can also book without an account.
const (
	RoleSecretary = "secretary"
	RoleArtisan   = "artisan"
	RoleAdmin     = "admin"
	RoleClient    = "client"
)

// ValidRole reports whether role is one of the four platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSecretary, RoleArtisan, RoleAdmin, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	Speciality   string    `json:"speciality"` // artisan trade, empty for other roles
	Bio          string    `json:"bio"`
	AvatarPath   string    `json:"avatar_path"`
	IsVerified   bool      `json:"is_verified"` // artisan identity checked by staff
	IsActive     bool      `json:"is_active"`   // false = suspended, never hard-deleted
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional, defaults to client; admin cannot be self-assigned
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest represents the request body for self profile update
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Speciality string `json:"speciality"`
	Bio        string `json:"bio"`
	Password   string `json:"password,omitempty"` // Optional
}

// AdminUpdateUserRequest represents the admin request to change role,
// verification or active status.
type AdminUpdateUserRequest struct {
	Role       *string `json:"role,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
