package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

// Create inserts the service and its weekly time slots in one transaction.
func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO services (artisan_id, title, description, category, price, duration, buffer_minutes, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		service.ArtisanID,
		service.Title,
		service.Description,
		service.Category,
		service.Price,
		service.Duration,
		service.BufferMinutes,
		service.ImagePath,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	for i := range service.TimeSlots {
		slot := &service.TimeSlots[i]
		slot.ServiceID = service.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO service_time_slots (service_id, day, start_time, end_time) VALUES ($1, $2, $3, $4) RETURNING id`,
			slot.ServiceID, slot.Day, slot.Start, slot.End,
		).Scan(&slot.ID)
		if err != nil {
			return fmt.Errorf("failed to create time slot: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (*models.Service, error) {
	query := `
		SELECT id, artisan_id, title, description, category, price, duration, buffer_minutes, image_path, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	service := &models.Service{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.ArtisanID,
		&service.Title,
		&service.Description,
		&service.Category,
		&service.Price,
		&service.Duration,
		&service.BufferMinutes,
		&service.ImagePath,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	service.TimeSlots, err = r.getTimeSlots(ctx, service.ID)
	if err != nil {
		return nil, err
	}

	return service, nil
}

func (r *ServiceRepository) getTimeSlots(ctx context.Context, serviceID int) ([]models.TimeSlot, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, service_id, day, start_time, end_time FROM service_time_slots WHERE service_id = $1 ORDER BY id`,
		serviceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.ServiceID, &slot.Day, &slot.Start, &slot.End); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// List returns all services with the owning artisan's public details,
// optionally filtered by category.
func (r *ServiceRepository) List(ctx context.Context, category string) ([]*models.ServiceWithArtisan, error) {
	query := `
		SELECT s.id, s.artisan_id, s.title, s.description, s.category, s.price, s.duration,
		       s.buffer_minutes, s.image_path, s.created_at, s.updated_at,
		       u.name, u.speciality
		FROM services s
		JOIN users u ON s.artisan_id = u.id
		WHERE u.is_active = TRUE
	`
	args := []any{}
	if category != "" {
		query += ` AND s.category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectWithArtisan(ctx, rows)
}

// ListByArtisan returns all services owned by an artisan
func (r *ServiceRepository) ListByArtisan(ctx context.Context, artisanID int) ([]*models.Service, error) {
	query := `
		SELECT id, artisan_id, title, description, category, price, duration, buffer_minutes, image_path, created_at, updated_at
		FROM services
		WHERE artisan_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, artisanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service := &models.Service{}
		err := rows.Scan(
			&service.ID,
			&service.ArtisanID,
			&service.Title,
			&service.Description,
			&service.Category,
			&service.Price,
			&service.Duration,
			&service.BufferMinutes,
			&service.ImagePath,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, service := range services {
		service.TimeSlots, err = r.getTimeSlots(ctx, service.ID)
		if err != nil {
			return nil, err
		}
	}

	return services, nil
}

func (r *ServiceRepository) collectWithArtisan(ctx context.Context, rows pgx.Rows) ([]*models.ServiceWithArtisan, error) {
	var services []*models.ServiceWithArtisan
	for rows.Next() {
		service := &models.ServiceWithArtisan{}
		err := rows.Scan(
			&service.ID,
			&service.ArtisanID,
			&service.Title,
			&service.Description,
			&service.Category,
			&service.Price,
			&service.Duration,
			&service.BufferMinutes,
			&service.ImagePath,
			&service.CreatedAt,
			&service.UpdatedAt,
			&service.ArtisanName,
			&service.ArtisanSpeciality,
		)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, service := range services {
		var err error
		service.TimeSlots, err = r.getTimeSlots(ctx, service.ID)
		if err != nil {
			return nil, err
		}
	}

	return services, nil
}

// SetImage stores the illustration path for a service.
func (r *ServiceRepository) SetImage(ctx context.Context, id int, path string) error {
	_, err := r.DB.Exec(ctx,
		"UPDATE services SET image_path = $1, updated_at = NOW() WHERE id = $2",
		path, id)
	return err
}

// Delete removes a service; its time slots cascade, bookings are preserved.
func (r *ServiceRepository) Delete(ctx context.Context, id, artisanID int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM services WHERE id = $1 AND artisan_id = $2", id, artisanID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %d not found for artisan %d", id, artisanID)
	}
	return nil
}

// Count returns the total number of services (for analytics)
func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM services").Scan(&count)
	return count, err
}
