package models

import "time"

// PaymentTxStatus is the state of one online payment attempt.
type PaymentTxStatus string

const (
	PaymentTxCreated PaymentTxStatus = "created"
	PaymentTxSuccess PaymentTxStatus = "success"
	PaymentTxFailed  PaymentTxStatus = "failed"
)

// PaymentTransaction records one Razorpay order against an invoice.
type PaymentTransaction struct {
	ID                int             `json:"id"`
	RazorpayOrderID   string          `json:"razorpay_order_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id"`
	InvoiceID         int             `json:"invoice_id"`
	Amount            float64         `json:"amount"`
	Currency          string          `json:"currency"`
	Status            PaymentTxStatus `json:"status"`
	FailureReason     string          `json:"failure_reason"`
	Method            string          `json:"method"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreatePaymentOrderRequest asks for a payment order on a sent invoice.
type CreatePaymentOrderRequest struct {
	InvoiceID int `json:"invoice_id"`
}

// CreateOrderResponse carries what the payment widget needs.
type CreateOrderResponse struct {
	OrderID       string  `json:"order_id"`
	Amount        int     `json:"amount"` // minor units
	Currency      string  `json:"currency"`
	KeyID         string  `json:"key_id"`
	InvoiceNumber string  `json:"invoice_number"`
	ClientName    string  `json:"client_name"`
	Total         float64 `json:"total"`
}

// VerifyPaymentRequest is the checkout callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
