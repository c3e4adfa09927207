package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
	PDF     *services.InvoicePDFService
}

func NewInvoiceHandler(s *services.InvoiceService, pdf *services.InvoicePDFService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, PDF: pdf}
}

// Create builds a draft invoice from a mission.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.Service.Create(r.Context(), userID, role, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, invoice)
}

// List returns the caller's invoices.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	invoices, err := h.Service.List(r.Context(), userID, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// Get returns one invoice with its line items.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	invoice, err := h.Service.Get(r.Context(), userID, role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// Update edits a draft invoice.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.Service.UpdateDraft(r.Context(), userID, role, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// UpdateStatus transitions an invoice.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.Service.UpdateStatus(r.Context(), userID, role, id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// Delete removes a draft invoice.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.DeleteDraft(r.Context(), userID, role, id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DownloadPDF streams the invoice as a PDF attachment.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
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

	data, filename, err := h.PDF.Render(r.Context(), userID, role, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
