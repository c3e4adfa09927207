package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/services"
	"ouveo-backend/pkg/utils"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(s *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// Status tells the payment widget whether online payment is available.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"enabled": h.Service.Enabled(),
	})
}

// CreateOrder opens a payment order for a sent invoice.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Verify handles the checkout callback.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.VerifyPayment(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, tx)
}

// Webhook handles Razorpay webhook deliveries. The body signature is
// checked before anything else; handled events are acknowledged with 200
// even when processing fails, so Razorpay does not retry forever.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if !h.Service.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		utils.Error(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	if event.Event == "payment.captured" {
		req := &models.VerifyPaymentRequest{
			RazorpayOrderID:   event.Payload.Payment.Entity.OrderID,
			RazorpayPaymentID: event.Payload.Payment.Entity.ID,
			RazorpaySignature: "webhook",
		}
		// The webhook body signature already proved authenticity, so the
		// per-payment signature check is bypassed here.
		if _, err := h.Service.VerifyWebhookPayment(r.Context(), req); err != nil {
			log.Printf("[Payment] webhook processing failed for order %s: %v", req.RazorpayOrderID, err)
		}
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
