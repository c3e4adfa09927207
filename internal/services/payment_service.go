package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math"

	"ouveo-backend/internal/config"
	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentService lets a client pay a sent invoice online through Razorpay.
// When credentials are not configured the service reports itself disabled
// and every order attempt fails cleanly.
type PaymentService struct {
	paymentRepo    *repositories.PaymentRepository
	invoiceRepo    *repositories.InvoiceRepository
	invoiceService *InvoiceService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentService(cfg *config.Config, paymentRepo *repositories.PaymentRepository, invoiceRepo *repositories.InvoiceRepository, invoiceService *InvoiceService) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		invoiceRepo:    invoiceRepo,
		invoiceService: invoiceService,
		keyID:          cfg.Razorpay.KeyID,
		keySecret:      cfg.Razorpay.KeySecret,
		webhookSecret:  cfg.Razorpay.WebhookSecret,
	}
}

// Enabled reports whether online payment is configured.
func (s *PaymentService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *PaymentService) client() *razorpay.Client {
	if !s.Enabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// amountMinorUnits converts a euro total to cents. Totals carry float noise
// from the VAT multiplication, so round instead of truncating.
func amountMinorUnits(total float64) int {
	return int(math.Round(total * 100))
}

// CreateOrder opens a Razorpay order for a sent invoice and records the
// attempt. Draft, paid and cancelled invoices are not payable.
func (s *PaymentService) CreateOrder(ctx context.Context, req *models.CreatePaymentOrderRequest) (*models.CreateOrderResponse, error) {
	if !s.Enabled() {
		return nil, validation("online payments are currently disabled")
	}
	if req.InvoiceID == 0 {
		return nil, validation("invoice_id is required")
	}

	invoice, err := s.invoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if invoice.Status != models.InvoiceSent {
		return nil, validation(fmt.Sprintf("a %q invoice cannot be paid", invoice.Status))
	}

	client := s.client()
	amountMinor := amountMinorUnits(invoice.Total)
	orderData := map[string]interface{}{
		"amount":   amountMinor,
		"currency": "EUR",
		"receipt":  invoice.InvoiceNumber,
		"notes": map[string]interface{}{
			"invoice_id":     invoice.ID,
			"invoice_number": invoice.InvoiceNumber,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("creating razorpay order: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	tx := &models.PaymentTransaction{
		RazorpayOrderID: orderID,
		InvoiceID:       invoice.ID,
		Amount:          invoice.Total,
		Currency:        "EUR",
	}
	if err := s.paymentRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("storing payment transaction: %w", err)
	}

	log.Printf("[Payment] order %s opened for invoice %s", orderID, invoice.InvoiceNumber)
	return &models.CreateOrderResponse{
		OrderID:       orderID,
		Amount:        amountMinor,
		Currency:      "EUR",
		KeyID:         s.keyID,
		InvoiceNumber: invoice.InvoiceNumber,
		ClientName:    invoice.ClientName,
		Total:         invoice.Total,
	}, nil
}

// VerifyPayment checks the checkout callback signature, marks the
// transaction and moves the invoice to paid. Replays of an already verified
// payment return the stored transaction unchanged.
func (s *PaymentService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.PaymentTransaction, error) {
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, validation("razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
	}

	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.paymentRepo.MarkFailed(ctx, req.RazorpayOrderID, "invalid signature")
		return nil, validation("invalid payment signature")
	}

	tx, err := s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	if tx.Status == models.PaymentTxSuccess {
		return tx, nil
	}

	method := ""
	if client := s.client(); client != nil {
		if payment, err := client.Payment.Fetch(req.RazorpayPaymentID, nil, nil); err == nil {
			if m, ok := payment["method"].(string); ok {
				method = m
			}
		} else {
			log.Printf("[Payment] fetching payment %s failed: %v", req.RazorpayPaymentID, err)
		}
	}

	if err := s.paymentRepo.MarkSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, method); err != nil {
		return nil, err
	}
	if _, err := s.invoiceService.MarkPaid(ctx, tx.InvoiceID); err != nil {
		log.Printf("[Payment] marking invoice %d paid failed: %v", tx.InvoiceID, err)
	}

	tx, err = s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// VerifyWebhookPayment settles a payment reported by a webhook whose body
// signature has already been verified by the caller.
func (s *PaymentService) VerifyWebhookPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.PaymentTransaction, error) {
	tx, err := s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	if tx.Status == models.PaymentTxSuccess {
		return tx, nil
	}

	if err := s.paymentRepo.MarkSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, ""); err != nil {
		return nil, err
	}
	if _, err := s.invoiceService.MarkPaid(ctx, tx.InvoiceID); err != nil {
		log.Printf("[Payment] marking invoice %d paid failed: %v", tx.InvoiceID, err)
	}
	return s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
}

func (s *PaymentService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the signature header on a webhook delivery.
// An unset webhook secret skips verification.
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ListByInvoice returns the payment attempts recorded for an invoice.
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.PaymentTransaction, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}
