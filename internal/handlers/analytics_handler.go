package handlers

import (
	"net/http"
	"strconv"

	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	Booking *services.BookingService
}

func NewAnalyticsHandler(s *services.AnalyticsService, booking *services.BookingService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s, Booking: booking}
}

// Latest returns the most recent snapshot.
func (h *AnalyticsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Service.Latest(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, snapshot)
}

// History returns the snapshots of the last ?days= days (default 30).
func (h *AnalyticsHandler) History(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	snapshots, err := h.Service.History(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, snapshots)
}

// Collect forces an immediate snapshot refresh.
func (h *AnalyticsHandler) Collect(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Service.Collect(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, snapshot)
}

// BookingCounts returns live booking counts per status.
func (h *AnalyticsHandler) BookingCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Booking.CountsByStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, counts)
}
