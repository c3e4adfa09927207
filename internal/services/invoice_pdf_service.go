package services

import (
	"bytes"
	"context"
	"fmt"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// InvoicePDFService renders invoices as downloadable PDF documents.
type InvoicePDFService struct {
	invoiceService *InvoiceService
}

func NewInvoicePDFService(invoiceService *InvoiceService) *InvoicePDFService {
	return &InvoicePDFService{invoiceService: invoiceService}
}

// Render fetches an invoice visible to the caller and renders it.
func (s *InvoicePDFService) Render(ctx context.Context, userID int, role string, invoiceID int) ([]byte, string, error) {
	invoice, err := s.invoiceService.Get(ctx, userID, role, invoiceID)
	if err != nil {
		return nil, "", err
	}
	data, err := GenerateInvoicePDF(invoice)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.pdf", invoice.InvoiceNumber), nil
}

// GenerateInvoicePDF renders one invoice to PDF bytes.
func GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Facture %s", invoice.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Emise le %s", timeutil.ToParis(invoice.CreatedAt).Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Client box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Client", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Nom: %s", invoice.ClientName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", invoice.ClientEmail), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Designation", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Quantite", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Prix unitaire", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Montant", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		label := item.Label
		if len(label) > 45 {
			label = label[:42] + "..."
		}
		pdf.CellFormat(90, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f EUR", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f EUR", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Sous-total HT", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f EUR", invoice.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "TVA (20%)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f EUR", invoice.Tax), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(150, 8, "Total TTC", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f EUR", invoice.Total), "1", 1, "R", true, 0, "")

	if invoice.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(190, 5, invoice.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
