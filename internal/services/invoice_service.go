package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"ouveo-backend/internal/metrics"
	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// InvoiceService manages invoices derived from missions. Numbers come from
// a datastore sequence, so concurrent creations cannot collide.
type InvoiceService struct {
	invoiceRepo *repositories.InvoiceRepository
	missionRepo *repositories.MissionRepository
	bookingRepo *repositories.BookingRepository
}

func NewInvoiceService(invoiceRepo *repositories.InvoiceRepository, missionRepo *repositories.MissionRepository, bookingRepo *repositories.BookingRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		missionRepo: missionRepo,
		bookingRepo: bookingRepo,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals fills each item's amount (quantity * unit price) and the
// invoice subtotal, tax (20% of subtotal) and total (subtotal + tax), all
// rounded to cents.
func ComputeTotals(items []models.InvoiceItem) ([]models.InvoiceItem, float64, float64, float64) {
	subtotal := 0.0
	for i := range items {
		items[i].Amount = roundCents(items[i].Quantity * items[i].UnitPrice)
		subtotal += items[i].Amount
	}
	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * models.TaxRate)
	total := roundCents(subtotal + tax)
	return items, subtotal, tax, total
}

func validateItems(items []models.InvoiceItem) error {
	if len(items) == 0 {
		return validation("at least one line item is required")
	}
	for i, item := range items {
		if item.Label == "" {
			return validation(fmt.Sprintf("items[%d]: label is required", i))
		}
		if item.Quantity <= 0 {
			return validation(fmt.Sprintf("items[%d]: quantity must be positive", i))
		}
		if item.UnitPrice < 0 {
			return validation(fmt.Sprintf("items[%d]: unit_price cannot be negative", i))
		}
	}
	return nil
}

// Create builds a draft invoice for a mission. Only the owning artisan or
// staff may invoice a mission; materials logged on the mission can be pulled
// in as extra line items.
func (s *InvoiceService) Create(ctx context.Context, userID int, role string, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.MissionID == 0 {
		return nil, validation("mission_id is required")
	}

	mission, err := s.missionRepo.Get(ctx, req.MissionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, validation("mission not found")
	}
	if !canManageMission(userID, role, mission) {
		return nil, ErrForbidden
	}
	if mission.Status == models.MissionCancelled {
		return nil, validation("cannot invoice a cancelled mission")
	}

	booking, err := s.bookingRepo.Get(ctx, mission.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d for mission %d not found", mission.BookingID, mission.ID)
	}

	items := req.Items
	if req.IncludeMaterials {
		for _, m := range mission.Materials {
			items = append(items, models.InvoiceItem{
				Label:     m.Name,
				Quantity:  m.Quantity,
				UnitPrice: m.UnitPrice,
			})
		}
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	items, subtotal, tax, total := ComputeTotals(items)
	invoice := &models.Invoice{
		InvoiceNumber: number,
		MissionID:     mission.ID,
		ArtisanID:     mission.ArtisanID,
		ClientName:    booking.ClientName,
		ClientEmail:   booking.ClientEmail,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Status:        models.InvoiceDraft,
		Notes:         req.Notes,
		Items:         items,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	log.Printf("[Invoice] created %s for mission %d (total %.2f)", invoice.InvoiceNumber, mission.ID, invoice.Total)
	return invoice, nil
}

// Get returns an invoice visible to the caller.
func (s *InvoiceService) Get(ctx context.Context, userID int, role string, id int) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if !canSeeInvoice(userID, role, invoice) {
		return nil, ErrForbidden
	}
	return invoice, nil
}

func canSeeInvoice(userID int, role string, invoice *models.Invoice) bool {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return true
	case models.RoleArtisan:
		return invoice.ArtisanID == userID
	}
	return false
}

// List returns the caller's invoices: staff see all, artisans their own.
func (s *InvoiceService) List(ctx context.Context, userID int, role string) ([]*models.Invoice, error) {
	switch role {
	case models.RoleSecretary, models.RoleAdmin:
		return s.invoiceRepo.ListAll(ctx)
	case models.RoleArtisan:
		return s.invoiceRepo.ListByArtisan(ctx, userID)
	}
	return nil, ErrForbidden
}

// UpdateDraft replaces the line items and notes of a draft invoice and
// recomputes its totals. Sent, paid and cancelled invoices are immutable.
func (s *InvoiceService) UpdateDraft(ctx context.Context, userID int, role string, id int, req *models.UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if !canSeeInvoice(userID, role, invoice) {
		return nil, ErrForbidden
	}
	if invoice.Status != models.InvoiceDraft {
		return nil, validation("only draft invoices can be edited")
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	items, subtotal, tax, total := ComputeTotals(req.Items)
	invoice.Items = items
	invoice.Subtotal = subtotal
	invoice.Tax = tax
	invoice.Total = total
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.UpdateDraft(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateStatus moves an invoice along draft → sent → paid, with cancellation
// allowed until payment.
func (s *InvoiceService) UpdateStatus(ctx context.Context, userID int, role string, id int, newStatus models.InvoiceStatus) (*models.Invoice, error) {
	if !models.ValidInvoiceStatus(newStatus) {
		return nil, validation(fmt.Sprintf("unknown invoice status %q", newStatus))
	}

	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if !canSeeInvoice(userID, role, invoice) {
		return nil, ErrForbidden
	}
	if !models.CanTransitionInvoice(invoice.Status, newStatus) {
		return nil, validation(fmt.Sprintf("cannot move invoice from %q to %q", invoice.Status, newStatus))
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	invoice.Status = newStatus
	if newStatus == models.InvoicePaid {
		metrics.InvoicesPaidTotal.Inc()
	}
	log.Printf("[Invoice] %s moved to %q", invoice.InvoiceNumber, newStatus)
	return invoice, nil
}

// MarkPaid is the payment-callback path: it transitions a sent invoice to
// paid regardless of caller identity, which the webhook has already proven.
func (s *InvoiceService) MarkPaid(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrNotFound
	}
	if invoice.Status == models.InvoicePaid {
		return invoice, nil
	}
	if !models.CanTransitionInvoice(invoice.Status, models.InvoicePaid) {
		return nil, validation(fmt.Sprintf("cannot mark a %q invoice paid", invoice.Status))
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, id, models.InvoicePaid); err != nil {
		return nil, err
	}
	invoice.Status = models.InvoicePaid
	metrics.InvoicesPaidTotal.Inc()
	log.Printf("[Invoice] %s paid", invoice.InvoiceNumber)
	return invoice, nil
}

// DeleteDraft removes a draft invoice.
func (s *InvoiceService) DeleteDraft(ctx context.Context, userID int, role string, id int) error {
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return ErrNotFound
	}
	if !canSeeInvoice(userID, role, invoice) {
		return ErrForbidden
	}
	if invoice.Status != models.InvoiceDraft {
		return validation("only draft invoices can be deleted")
	}
	return s.invoiceRepo.DeleteDraft(ctx, id)
}
