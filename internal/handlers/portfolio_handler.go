package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type PortfolioHandler struct {
	Service *services.PortfolioService
	Uploads *UploadHelper
}

func NewPortfolioHandler(s *services.PortfolioService, uploads *UploadHelper) *PortfolioHandler {
	return &PortfolioHandler{Service: s, Uploads: uploads}
}

// ListByArtisan is the public portfolio of one artisan.
// GET /api/artisans/{id}/portfolio
func (h *PortfolioHandler) ListByArtisan(w http.ResponseWriter, r *http.Request) {
	artisanID, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	items, err := h.Service.ListByArtisan(r.Context(), artisanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

// Mine lists the calling artisan's own entries.
func (h *PortfolioHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.Service.ListByArtisan(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

// Create adds a showcase entry. The image arrives in the same multipart
// form as the text fields.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path, ok := h.Uploads.SaveFromForm(w, r, "image", "portfolio")
	if !ok {
		return
	}

	req := &models.CreatePortfolioItemRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ImagePath:   path,
	}

	item, err := h.Service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

// Update edits an entry's text fields.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.CreatePortfolioItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// Delete removes an entry.
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
