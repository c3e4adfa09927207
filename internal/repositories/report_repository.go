package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	DB *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

const reportColumns = `id, reporter_id, target_user_id, reason, details, status, resolved_by_id, resolution, created_at, updated_at`

func scanReport(row interface{ Scan(...any) error }) (*models.Report, error) {
	rep := &models.Report{}
	err := row.Scan(
		&rep.ID,
		&rep.ReporterID,
		&rep.TargetUserID,
		&rep.Reason,
		&rep.Details,
		&rep.Status,
		&rep.ResolvedByID,
		&rep.Resolution,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (reporter_id, target_user_id, reason, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		report.ReporterID,
		report.TargetUserID,
		report.Reason,
		report.Details,
	).Scan(&report.ID, &report.Status, &report.CreatedAt, &report.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, id int) (*models.Report, error) {
	return scanReport(r.DB.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
}

func (r *ReportRepository) List(ctx context.Context, status models.ReportStatus) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

func (r *ReportRepository) Resolve(ctx context.Context, id, resolvedByID int, status models.ReportStatus, resolution string) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE reports SET status = $1, resolved_by_id = $2, resolution = $3, updated_at = NOW() WHERE id = $4",
		status, resolvedByID, resolution, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %d not found", id)
	}
	return nil
}

// CountOpen returns the number of open reports (for analytics)
func (r *ReportRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM reports WHERE status = 'ouvert'").Scan(&count)
	return count, err
}
