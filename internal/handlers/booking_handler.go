package handlers

import (
	"encoding/json"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type BookingHandler struct {
	Service *services.BookingService
}

func NewBookingHandler(s *services.BookingService) *BookingHandler {
	return &BookingHandler{Service: s}
}

// Availability returns the free start times for a service on a date.
// GET /api/services/{id}/availability?date=YYYY-MM-DD
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathID(r, "id")
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.Error(w, http.StatusBadRequest, "date parameter is required")
		return
	}

	resp, err := h.Service.GetAvailability(r.Context(), serviceID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Create submits a booking.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.Service.Create(r.Context(), userID, role, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, booking)
}

// List returns the caller's bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookings, err := h.Service.List(r.Context(), userID, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

// Get returns one booking.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.Service.Get(r.Context(), userID, role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, booking)
}

// UpdateStatus transitions a booking.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.Service.UpdateStatus(r.Context(), userID, role, id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, booking)
}

// Delete removes a pending booking created by the caller.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
