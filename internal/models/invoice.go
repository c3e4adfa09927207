package models

import "time"

// TaxRate is the VAT applied to every invoice: tax = 20% of subtotal.
const TaxRate = 0.20

// Invoice represents an invoice generated from a mission
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	MissionID     int           `json:"mission_id"`
	ArtisanID     int           `json:"artisan_id"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        InvoiceStatus `json:"status"`
	Notes         string        `json:"notes"`
	Items         []InvoiceItem `json:"items"`
	SentAt        *time.Time    `json:"sent_at"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID        int     `json:"id"`
	InvoiceID int     `json:"invoice_id"`
	Label     string  `json:"label"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	MissionID        int           `json:"mission_id"`
	Notes            string        `json:"notes"`
	Items            []InvoiceItem `json:"items"`
	IncludeMaterials bool          `json:"include_materials"` // pull mission materials in as line items
}

// UpdateInvoiceRequest represents the request to update a draft invoice
type UpdateInvoiceRequest struct {
	Notes string        `json:"notes"`
	Items []InvoiceItem `json:"items"`
}

// UpdateInvoiceStatusRequest represents a status transition request
type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status"`
}
