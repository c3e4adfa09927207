package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionRepository struct {
	DB *pgxpool.Pool
}

func NewMissionRepository(db *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{DB: db}
}

const missionColumns = `id, booking_id, artisan_id, title, work_details, status, validation_token, validated_at, created_at, updated_at`

func scanMission(row interface{ Scan(...any) error }) (*models.Mission, error) {
	m := &models.Mission{}
	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.ArtisanID,
		&m.Title,
		&m.WorkDetails,
		&m.Status,
		&m.ValidationToken,
		&m.ValidatedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	query := `
		INSERT INTO missions (booking_id, artisan_id, title, work_details, status, validation_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		mission.BookingID,
		mission.ArtisanID,
		mission.Title,
		mission.WorkDetails,
		mission.Status,
		mission.ValidationToken,
	).Scan(&mission.ID, &mission.CreatedAt, &mission.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	return nil
}

func (r *MissionRepository) Get(ctx context.Context, id int) (*models.Mission, error) {
	mission, err := scanMission(r.DB.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, mission)
}

func (r *MissionRepository) GetByBooking(ctx context.Context, bookingID int) (*models.Mission, error) {
	mission, err := scanMission(r.DB.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE booking_id = $1`, bookingID))
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, mission)
}

// GetByToken resolves the public validation token. Tokens are single-use in
// effect: once validated the status transition check refuses a second call.
func (r *MissionRepository) GetByToken(ctx context.Context, token string) (*models.Mission, error) {
	mission, err := scanMission(r.DB.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE validation_token = $1`, token))
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, mission)
}

func (r *MissionRepository) loadRelations(ctx context.Context, mission *models.Mission) (*models.Mission, error) {
	var err error
	mission.Materials, err = r.listMaterials(ctx, mission.ID)
	if err != nil {
		return nil, err
	}
	mission.Photos, err = r.listPhotos(ctx, mission.ID)
	if err != nil {
		return nil, err
	}
	mission.Comments, err = r.listComments(ctx, mission.ID)
	if err != nil {
		return nil, err
	}
	return mission, nil
}

func (r *MissionRepository) ListByArtisan(ctx context.Context, artisanID int) ([]*models.Mission, error) {
	return r.list(ctx, `SELECT `+missionColumns+` FROM missions WHERE artisan_id = $1 ORDER BY created_at DESC`, artisanID)
}

func (r *MissionRepository) ListAll(ctx context.Context) ([]*models.Mission, error) {
	return r.list(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY created_at DESC`)
}

func (r *MissionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Mission, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []*models.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range missions {
		if _, err := r.loadRelations(ctx, m); err != nil {
			return nil, err
		}
	}
	return missions, nil
}

func (r *MissionRepository) UpdateDetails(ctx context.Context, id int, title, workDetails string) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE missions SET title = $1, work_details = $2, updated_at = NOW() WHERE id = $3",
		title, workDetails, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mission %d not found", id)
	}
	return nil
}

func (r *MissionRepository) UpdateStatus(ctx context.Context, id int, status models.MissionStatus) error {
	query := "UPDATE missions SET status = $1, updated_at = NOW() WHERE id = $2"
	if status == models.MissionValidated {
		query = "UPDATE missions SET status = $1, validated_at = NOW(), updated_at = NOW() WHERE id = $2"
	}
	tag, err := r.DB.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mission %d not found", id)
	}
	return nil
}

func (r *MissionRepository) AddMaterial(ctx context.Context, material *models.MissionMaterial) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO mission_materials (mission_id, name, quantity, unit_price) VALUES ($1, $2, $3, $4) RETURNING id`,
		material.MissionID, material.Name, material.Quantity, material.UnitPrice,
	).Scan(&material.ID)
}

func (r *MissionRepository) AddPhoto(ctx context.Context, photo *models.MissionPhoto) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO mission_photos (mission_id, path, caption) VALUES ($1, $2, $3) RETURNING id, created_at`,
		photo.MissionID, photo.Path, photo.Caption,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *MissionRepository) AddComment(ctx context.Context, comment *models.MissionComment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO mission_comments (mission_id, author_id, body) VALUES ($1, $2, $3) RETURNING id, created_at`,
		comment.MissionID, comment.AuthorID, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *MissionRepository) listMaterials(ctx context.Context, missionID int) ([]models.MissionMaterial, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, mission_id, name, quantity, unit_price FROM mission_materials WHERE mission_id = $1 ORDER BY id`,
		missionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []models.MissionMaterial
	for rows.Next() {
		var m models.MissionMaterial
		if err := rows.Scan(&m.ID, &m.MissionID, &m.Name, &m.Quantity, &m.UnitPrice); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *MissionRepository) listPhotos(ctx context.Context, missionID int) ([]models.MissionPhoto, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, mission_id, path, caption, created_at FROM mission_photos WHERE mission_id = $1 ORDER BY id`,
		missionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.MissionPhoto
	for rows.Next() {
		var p models.MissionPhoto
		if err := rows.Scan(&p.ID, &p.MissionID, &p.Path, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *MissionRepository) listComments(ctx context.Context, missionID int) ([]models.MissionComment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, mission_id, author_id, body, created_at FROM mission_comments WHERE mission_id = $1 ORDER BY id`,
		missionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.MissionComment
	for rows.Next() {
		var c models.MissionComment
		if err := rows.Scan(&c.ID, &c.MissionID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
