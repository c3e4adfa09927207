package handlers

import (
	"net/http"

	"ouveo-backend/internal/storage"
	"ouveo-backend/pkg/utils"
)

// UploadHelper wraps the upload store for multipart form handling shared by
// several handlers.
type UploadHelper struct {
	Store *storage.UploadStore
}

func NewUploadHelper(store *storage.UploadStore) *UploadHelper {
	return &UploadHelper{Store: store}
}

const maxMultipartMemory = 10 << 20

// SaveFromForm pulls the named file field out of a multipart form and stores
// it under subdir. On failure it writes the error response itself and
// returns ok=false.
func (u *UploadHelper) SaveFromForm(w http.ResponseWriter, r *http.Request, field, subdir string) (string, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return "", false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing file field "+field)
		return "", false
	}
	defer file.Close()

	path, err := u.Store.Save(r.Context(), file, header, subdir)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return path, true
}
