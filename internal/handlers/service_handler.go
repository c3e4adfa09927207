package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type ServiceHandler struct {
	Catalog *services.CatalogService
	Uploads *UploadHelper
}

func NewServiceHandler(catalog *services.CatalogService, uploads *UploadHelper) *ServiceHandler {
	return &ServiceHandler{Catalog: catalog, Uploads: uploads}
}

// List is the public catalog, optionally filtered by ?category=.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalog.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// Get returns one service with its availability windows.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	service, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, service)
}

// Create publishes a new service for the calling artisan.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.Catalog.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, service)
}

// Mine lists the calling artisan's own services.
func (h *ServiceHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.Catalog.ListByArtisan(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// UploadImage sets the service illustration from a multipart form.
func (h *ServiceHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
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

	path, ok := h.Uploads.SaveFromForm(w, r, "image", "services")
	if !ok {
		return
	}

	service, err := h.Catalog.SetImage(r.Context(), userID, id, path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, service)
}

// Delete unpublishes a service owned by the caller.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Catalog.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
