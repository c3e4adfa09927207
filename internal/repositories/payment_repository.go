package repositories

import (
	"context"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, razorpay_order_id, razorpay_payment_id, invoice_id, amount, currency,
	status, failure_reason, method, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.PaymentTransaction, error) {
	p := &models.PaymentTransaction{}
	err := row.Scan(
		&p.ID,
		&p.RazorpayOrderID,
		&p.RazorpayPaymentID,
		&p.InvoiceID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.FailureReason,
		&p.Method,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a transaction in "created" state.
func (r *PaymentRepository) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO payment_transactions (razorpay_order_id, invoice_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, 'created')
		RETURNING id, created_at, updated_at`,
		tx.RazorpayOrderID, tx.InvoiceID, tx.Amount, tx.Currency,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

// GetByOrderID looks a transaction up by its Razorpay order id.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		"SELECT "+paymentColumns+" FROM payment_transactions WHERE razorpay_order_id = $1", orderID))
}

// ListByInvoice returns all payment attempts for an invoice, newest first.
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.PaymentTransaction, error) {
	rows, err := r.DB.Query(ctx,
		"SELECT "+paymentColumns+" FROM payment_transactions WHERE invoice_id = $1 ORDER BY created_at DESC", invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*models.PaymentTransaction
	for rows.Next() {
		tx, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// MarkSuccess records a verified payment.
func (r *PaymentRepository) MarkSuccess(ctx context.Context, orderID, paymentID, method string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE payment_transactions
		SET razorpay_payment_id = $1, method = $2, status = 'success', updated_at = NOW()
		WHERE razorpay_order_id = $3`,
		paymentID, method, orderID)
	return err
}

// MarkFailed records a rejected payment attempt.
func (r *PaymentRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE payment_transactions
		SET status = 'failed', failure_reason = $1, updated_at = NOW()
		WHERE razorpay_order_id = $2`,
		reason, orderID)
	return err
}
