package repositories

import (
	"context"
	"fmt"
	"time"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	DB *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// Upsert writes the snapshot for its date, replacing an earlier run from
// the same day.
func (r *AnalyticsRepository) Upsert(ctx context.Context, s *models.AnalyticsSnapshot) error {
	query := `
		INSERT INTO analytics_snapshots (snapshot_date, total_users, total_artisans, total_clients, total_services,
		                                 pending_bookings, accepted_bookings, completed_bookings, cancelled_bookings,
		                                 open_reports, paid_revenue)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total_users = EXCLUDED.total_users,
			total_artisans = EXCLUDED.total_artisans,
			total_clients = EXCLUDED.total_clients,
			total_services = EXCLUDED.total_services,
			pending_bookings = EXCLUDED.pending_bookings,
			accepted_bookings = EXCLUDED.accepted_bookings,
			completed_bookings = EXCLUDED.completed_bookings,
			cancelled_bookings = EXCLUDED.cancelled_bookings,
			open_reports = EXCLUDED.open_reports,
			paid_revenue = EXCLUDED.paid_revenue
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query,
		s.SnapshotDate,
		s.TotalUsers,
		s.TotalArtisans,
		s.TotalClients,
		s.TotalServices,
		s.PendingBookings,
		s.AcceptedBookings,
		s.CompletedBookings,
		s.CancelledBookings,
		s.OpenReports,
		s.PaidRevenue,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert analytics snapshot: %w", err)
	}
	return nil
}

// ListSince returns snapshots from the given date onward, oldest first.
func (r *AnalyticsRepository) ListSince(ctx context.Context, since time.Time) ([]*models.AnalyticsSnapshot, error) {
	query := `
		SELECT id, snapshot_date, total_users, total_artisans, total_clients, total_services,
		       pending_bookings, accepted_bookings, completed_bookings, cancelled_bookings,
		       open_reports, paid_revenue, created_at
		FROM analytics_snapshots
		WHERE snapshot_date >= $1
		ORDER BY snapshot_date
	`

	rows, err := r.DB.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.AnalyticsSnapshot
	for rows.Next() {
		s := &models.AnalyticsSnapshot{}
		err := rows.Scan(
			&s.ID,
			&s.SnapshotDate,
			&s.TotalUsers,
			&s.TotalArtisans,
			&s.TotalClients,
			&s.TotalServices,
			&s.PendingBookings,
			&s.AcceptedBookings,
			&s.CompletedBookings,
			&s.CancelledBookings,
			&s.OpenReports,
			&s.PaidRevenue,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// Latest returns the most recent snapshot.
func (r *AnalyticsRepository) Latest(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	query := `
		SELECT id, snapshot_date, total_users, total_artisans, total_clients, total_services,
		       pending_bookings, accepted_bookings, completed_bookings, cancelled_bookings,
		       open_reports, paid_revenue, created_at
		FROM analytics_snapshots
		ORDER BY snapshot_date DESC
		LIMIT 1
	`

	s := &models.AnalyticsSnapshot{}
	err := r.DB.QueryRow(ctx, query).Scan(
		&s.ID,
		&s.SnapshotDate,
		&s.TotalUsers,
		&s.TotalArtisans,
		&s.TotalClients,
		&s.TotalServices,
		&s.PendingBookings,
		&s.AcceptedBookings,
		&s.CompletedBookings,
		&s.CancelledBookings,
		&s.OpenReports,
		&s.PaidRevenue,
		&s.CreatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
