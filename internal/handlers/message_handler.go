package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(s *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: s}
}

// Submit is the public contact form.
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.Service.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, msg)
}

// List returns leads for triage, optionally filtered by ?status=.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Service.List(r.Context(), models.MessageStatus(r.URL.Query().Get("status")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msgs)
}

// Get returns one lead.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	msg, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msg)
}

// MarkProcessed closes a lead.
func (h *MessageHandler) MarkProcessed(w http.ResponseWriter, r *http.Request) {
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

	msg, err := h.Service.MarkProcessed(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msg)
}

// Delete removes a lead.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
