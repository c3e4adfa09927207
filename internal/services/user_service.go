package services

import (
	"context"
	"log"
	"strings"

	"ouveo-backend/internal/auth"
	"ouveo-backend/internal/cache"
	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// UserService handles signup, login and account management.
type UserService struct {
	userRepo   *repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{userRepo: userRepo, jwtManager: jwtManager}
}

// Signup creates an account and returns a signed token. Role defaults to
// client; admin cannot be self-assigned.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, validation("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, validation("password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidRole(role) {
		return nil, validation("unknown role")
	}
	if role == models.RoleAdmin {
		return nil, validation("admin accounts cannot be self-registered")
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validation("an account with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	log.Printf("[User] signup: %s (%s)", user.Email, user.Role)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token. A successful
// credential check is cached so repeated logins skip bcrypt.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, validation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, validation("invalid email or password")
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, validation("invalid email or password")
		}
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Get returns a single user's public record.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List returns users, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role string) ([]*models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, validation("unknown role")
	}
	return s.userRepo.List(ctx, role)
}

// ListArtisans returns the public artisan directory.
func (s *UserService) ListArtisans(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx, models.RoleArtisan)
}

// UpdateProfile applies a self-service profile update, including an optional
// password change. On password change the credential cache entry is dropped,
// so the old password stops authenticating immediately.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Speciality != "" {
		user.Speciality = req.Speciality
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, validation("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		cache.InvalidateAuth(ctx, user.Email)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores a freshly uploaded avatar path on the profile.
func (s *UserService) SetAvatar(ctx context.Context, userID int, path string) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.AvatarPath = path
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdate changes role, verification or active flags on an account.
func (s *UserService) AdminUpdate(ctx context.Context, id int, req *models.AdminUpdateUserRequest) (*models.User, error) {
	if req.Role != nil && !models.ValidRole(*req.Role) {
		return nil, validation("unknown role")
	}
	user, err := s.userRepo.UpdateAdminFields(ctx, id, req.Role, req.IsVerified, req.IsActive)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	log.Printf("[User] admin update on user %d", id)
	return user, nil
}
