package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
	Uploads *UploadHelper
}

func NewUserHandler(s *services.UserService, uploads *UploadHelper) *UserHandler {
	return &UserHandler{Service: s, Uploads: uploads}
}

// ListArtisans is the public artisan directory.
func (h *UserHandler) ListArtisans(w http.ResponseWriter, r *http.Request) {
	artisans, err := h.Service.ListArtisans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, artisans)
}

// GetArtisan returns one artisan's public profile.
func (h *UserHandler) GetArtisan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	user, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user.Role != models.RoleArtisan {
		utils.Error(w, http.StatusNotFound, "not found")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ListUsers returns all accounts, optionally filtered by ?role=. Staff only.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// UpdateProfile is the self-service profile update.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// UploadAvatar accepts a multipart avatar image for the caller's profile.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path, ok := h.Uploads.SaveFromForm(w, r, "avatar", "avatars")
	if !ok {
		return
	}

	user, err := h.Service.SetAvatar(r.Context(), userID, path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// AdminUpdateUser changes role, verification or suspension flags. Admin only.
func (h *UserHandler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.AdminUpdate(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
