package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ouveo-backend/internal/middleware"
	"ouveo-backend/internal/repositories"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// writeServiceError maps service-layer errors onto HTTP statuses. Unknown
// errors become an opaque 500; the cause stays server-side.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, repositories.ErrSlotTaken):
		utils.Error(w, http.StatusConflict, "this time slot is no longer available")
	default:
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts an integer path variable.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// identity pulls the authenticated user id and role from the request.
func identity(r *http.Request) (int, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, "", false
	}
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}
