package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSlotTaken is returned when a booking insert loses the race for a time
// slot and the exclusion constraint rejects it.
var ErrSlotTaken = errors.New("time slot already booked")

type BookingRepository struct {
	DB *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingColumns = `id, service_id, artisan_id, client_user_id, client_name, client_phone, client_email,
	address, booking_date, start_time, end_time, status, notes, created_by_id, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.ArtisanID,
		&b.ClientUserID,
		&b.ClientName,
		&b.ClientPhone,
		&b.ClientEmail,
		&b.Address,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Notes,
		&b.CreatedByID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a booking. startMinute/endMinute are the minutes-from-
// midnight mirrors of the clock strings; the bookings_no_overlap exclusion
// constraint uses them, so a lost race surfaces as ErrSlotTaken rather than
// a double-booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking, startMinute, endMinute int) error {
	query := `
		INSERT INTO bookings (service_id, artisan_id, client_user_id, client_name, client_phone, client_email,
		                      address, booking_date, start_time, end_time, start_minute, end_minute, status, notes, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		booking.ServiceID,
		booking.ArtisanID,
		booking.ClientUserID,
		booking.ClientName,
		booking.ClientPhone,
		booking.ClientEmail,
		booking.Address,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		startMinute,
		endMinute,
		booking.Status,
		booking.Notes,
		booking.CreatedByID,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return translateBookingInsertError(err)
	}
	return nil
}

// translateBookingInsertError maps an exclusion violation on the overlap
// constraint to ErrSlotTaken.
func translateBookingInsertError(err error) error {
	var pgErr *pgconn.PgError
	// 23P01 = exclusion_violation
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
		return ErrSlotTaken
	}
	return fmt.Errorf("failed to create booking: %w", err)
}

func (r *BookingRepository) Get(ctx context.Context, id int) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.DB.QueryRow(ctx, query, id))
}

// ListActiveByServiceDate returns pending and accepted bookings for a
// service on a date, ordered by start time. The availability computation
// tests overlap against these.
func (r *BookingRepository) ListActiveByServiceDate(ctx context.Context, serviceID int, date time.Time) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE service_id = $1 AND booking_date = $2 AND status IN ('en attente', 'acceptée')
		ORDER BY start_time
	`

	rows, err := r.DB.Query(ctx, query, serviceID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// ListByArtisan returns bookings addressed to an artisan, newest date first
func (r *BookingRepository) ListByArtisan(ctx context.Context, artisanID int) ([]*models.BookingWithService, error) {
	query := `
		SELECT b.id, b.service_id, b.artisan_id, b.client_user_id, b.client_name, b.client_phone, b.client_email,
		       b.address, b.booking_date, b.start_time, b.end_time, b.status, b.notes, b.created_by_id, b.created_at, b.updated_at,
		       COALESCE(s.title, ''), COALESCE(s.price, 0), u.name
		FROM bookings b
		LEFT JOIN services s ON b.service_id = s.id
		JOIN users u ON b.artisan_id = u.id
		WHERE b.artisan_id = $1
		ORDER BY b.booking_date DESC, b.start_time DESC
	`
	return r.listWithService(ctx, query, artisanID)
}

// ListByCreator returns bookings submitted by a user (client or secretary)
func (r *BookingRepository) ListByCreator(ctx context.Context, userID int) ([]*models.BookingWithService, error) {
	query := `
		SELECT b.id, b.service_id, b.artisan_id, b.client_user_id, b.client_name, b.client_phone, b.client_email,
		       b.address, b.booking_date, b.start_time, b.end_time, b.status, b.notes, b.created_by_id, b.created_at, b.updated_at,
		       COALESCE(s.title, ''), COALESCE(s.price, 0), u.name
		FROM bookings b
		LEFT JOIN services s ON b.service_id = s.id
		JOIN users u ON b.artisan_id = u.id
		WHERE b.created_by_id = $1
		ORDER BY b.booking_date DESC, b.start_time DESC
	`
	return r.listWithService(ctx, query, userID)
}

// ListAll returns every booking with service details (staff view)
func (r *BookingRepository) ListAll(ctx context.Context) ([]*models.BookingWithService, error) {
	query := `
		SELECT b.id, b.service_id, b.artisan_id, b.client_user_id, b.client_name, b.client_phone, b.client_email,
		       b.address, b.booking_date, b.start_time, b.end_time, b.status, b.notes, b.created_by_id, b.created_at, b.updated_at,
		       COALESCE(s.title, ''), COALESCE(s.price, 0), u.name
		FROM bookings b
		LEFT JOIN services s ON b.service_id = s.id
		JOIN users u ON b.artisan_id = u.id
		ORDER BY b.booking_date DESC, b.start_time DESC
	`
	return r.listWithService(ctx, query)
}

func (r *BookingRepository) listWithService(ctx context.Context, query string, args ...any) ([]*models.BookingWithService, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.BookingWithService
	for rows.Next() {
		b := &models.BookingWithService{}
		err := rows.Scan(
			&b.ID,
			&b.ServiceID,
			&b.ArtisanID,
			&b.ClientUserID,
			&b.ClientName,
			&b.ClientPhone,
			&b.ClientEmail,
			&b.Address,
			&b.BookingDate,
			&b.StartTime,
			&b.EndTime,
			&b.Status,
			&b.Notes,
			&b.CreatedByID,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.ServiceTitle,
			&b.ServicePrice,
			&b.ArtisanName,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status models.BookingStatus) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// Delete removes a booking. The service layer verifies the pending-only and
// creator-only rules; the WHERE clause enforces them again.
func (r *BookingRepository) Delete(ctx context.Context, id, createdByID int) error {
	tag, err := r.DB.Exec(ctx,
		"DELETE FROM bookings WHERE id = $1 AND created_by_id = $2 AND status = 'en attente'",
		id, createdByID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d not deletable", id)
	}
	return nil
}

// CountByStatus returns the number of bookings in a status (for analytics)
func (r *BookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM bookings WHERE status = $1", status).Scan(&count)
	return count, err
}
