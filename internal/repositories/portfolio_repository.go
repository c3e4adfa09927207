package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PortfolioRepository struct {
	DB *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{DB: db}
}

func (r *PortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	query := `
		INSERT INTO portfolio_items (artisan_id, title, description, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		item.ArtisanID,
		item.Title,
		item.Description,
		item.ImagePath,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return nil
}

func (r *PortfolioRepository) Get(ctx context.Context, id int) (*models.PortfolioItem, error) {
	query := `
		SELECT id, artisan_id, title, description, image_path, created_at, updated_at
		FROM portfolio_items
		WHERE id = $1
	`

	item := &models.PortfolioItem{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ArtisanID,
		&item.Title,
		&item.Description,
		&item.ImagePath,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PortfolioRepository) ListByArtisan(ctx context.Context, artisanID int) ([]*models.PortfolioItem, error) {
	query := `
		SELECT id, artisan_id, title, description, image_path, created_at, updated_at
		FROM portfolio_items
		WHERE artisan_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, artisanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PortfolioItem
	for rows.Next() {
		item := &models.PortfolioItem{}
		err := rows.Scan(
			&item.ID,
			&item.ArtisanID,
			&item.Title,
			&item.Description,
			&item.ImagePath,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *PortfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE portfolio_items
		SET title = $1, description = $2, image_path = $3, updated_at = NOW()
		WHERE id = $4 AND artisan_id = $5
	`, item.Title, item.Description, item.ImagePath, item.ID, item.ArtisanID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("portfolio item %d not found for artisan %d", item.ID, item.ArtisanID)
	}
	return nil
}

func (r *PortfolioRepository) Delete(ctx context.Context, id, artisanID int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM portfolio_items WHERE id = $1 AND artisan_id = $2", id, artisanID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("portfolio item %d not found for artisan %d", id, artisanID)
	}
	return nil
}
