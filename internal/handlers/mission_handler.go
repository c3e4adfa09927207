package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type MissionHandler struct {
	Service *services.MissionService
	Uploads *UploadHelper
}

func NewMissionHandler(s *services.MissionService, uploads *UploadHelper) *MissionHandler {
	return &MissionHandler{Service: s, Uploads: uploads}
}

// List returns the caller's missions.
func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	missions, err := h.Service.List(r.Context(), userID, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, missions)
}

// Get returns one mission with materials, photos and comments.
func (h *MissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	mission, err := h.Service.Get(r.Context(), userID, role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, mission)
}

// Update sets the mission title and work details.
func (h *MissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.UpdateMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mission, err := h.Service.UpdateDetails(r.Context(), userID, role, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, mission)
}

// UpdateStatus transitions a mission.
func (h *MissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Status models.MissionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mission, err := h.Service.UpdateStatus(r.Context(), userID, role, id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, mission)
}

// AddMaterial records a material line.
func (h *MissionHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.AddMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	material, err := h.Service.AddMaterial(r.Context(), userID, role, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, material)
}

// UploadPhoto attaches a multipart photo to a mission.
func (h *MissionHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	path, ok := h.Uploads.SaveFromForm(w, r, "photo", "missions")
	if !ok {
		return
	}
	caption := r.FormValue("caption")

	photo, err := h.Service.AddPhoto(r.Context(), userID, role, id, path, caption)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, photo)
}

// AddComment appends a progress note.
func (h *MissionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req models.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.AddComment(r.Context(), userID, role, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, comment)
}

// ValidateByToken is the public client confirmation link.
// POST /api/public/missions/validate/{token}
func (h *MissionHandler) ValidateByToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	mission, err := h.Service.ValidateByToken(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, mission)
}
