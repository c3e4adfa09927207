package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// GenerateInvoiceNumber draws the next number from a database sequence so
// concurrent invoice creation can never produce duplicates.
func (r *InvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}

	return fmt.Sprintf("FAC-%06d", nextNum), nil
}

const invoiceColumns = `id, invoice_number, mission_id, artisan_id, client_name, client_email,
	subtotal, tax, total, status, notes, sent_at, paid_at, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.MissionID,
		&inv.ArtisanID,
		&inv.ClientName,
		&inv.ClientEmail,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Total,
		&inv.Status,
		&inv.Notes,
		&inv.SentAt,
		&inv.PaidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Create inserts the invoice and its line items in one transaction.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	number, err := r.GenerateInvoiceNumber(ctx)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO invoices (invoice_number, mission_id, artisan_id, client_name, client_email, subtotal, tax, total, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		number,
		invoice.MissionID,
		invoice.ArtisanID,
		invoice.ClientName,
		invoice.ClientEmail,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Total,
		invoice.Status,
		invoice.Notes,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.InvoiceID = invoice.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO invoice_items (invoice_id, label, quantity, unit_price, amount) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.InvoiceID, item.Label, item.Quantity, item.UnitPrice, item.Amount,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	invoice.InvoiceNumber = number
	return nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	inv.Items, err = r.listItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, number))
	if err != nil {
		return nil, err
	}
	inv.Items, err = r.listItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) ListByArtisan(ctx context.Context, artisanID int) ([]*models.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE artisan_id = $1 ORDER BY created_at DESC`, artisanID)
}

func (r *InvoiceRepository) ListAll(ctx context.Context) ([]*models.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

func (r *InvoiceRepository) list(ctx context.Context, query string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		inv.Items, err = r.listItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

func (r *InvoiceRepository) listItems(ctx context.Context, invoiceID int) ([]models.InvoiceItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, label, quantity, unit_price, amount FROM invoice_items WHERE invoice_id = $1 ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Label, &item.Quantity, &item.UnitPrice, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateDraft replaces the notes, items and totals of a draft invoice.
func (r *InvoiceRepository) UpdateDraft(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET notes = $1, subtotal = $2, tax = $3, total = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'draft'
	`, invoice.Notes, invoice.Subtotal, invoice.Tax, invoice.Total, invoice.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d is not an editable draft", invoice.ID)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", invoice.ID); err != nil {
		return err
	}
	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.InvoiceID = invoice.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO invoice_items (invoice_id, label, quantity, unit_price, amount) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.InvoiceID, item.Label, item.Quantity, item.UnitPrice, item.Amount,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status models.InvoiceStatus) error {
	query := "UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2"
	switch status {
	case models.InvoiceSent:
		query = "UPDATE invoices SET status = $1, sent_at = NOW(), updated_at = NOW() WHERE id = $2"
	case models.InvoicePaid:
		query = "UPDATE invoices SET status = $1, paid_at = NOW(), updated_at = NOW() WHERE id = $2"
	}

	tag, err := r.DB.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d not found", id)
	}
	return nil
}

// DeleteDraft removes a draft invoice; items cascade.
func (r *InvoiceRepository) DeleteDraft(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM invoices WHERE id = $1 AND status = 'draft'", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d is not a deletable draft", id)
	}
	return nil
}

// PaidRevenue returns the total of paid invoices (for analytics)
func (r *InvoiceRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.DB.QueryRow(ctx, "SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = 'paid'").Scan(&revenue)
	return revenue, err
}
