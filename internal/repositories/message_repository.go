package repositories

import (
	"context"
	"fmt"

	"ouveo-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	DB *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (name, email, phone, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Body,
	).Scan(&msg.ID, &msg.Status, &msg.CreatedAt, &msg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) Get(ctx context.Context, id int) (*models.Message, error) {
	query := `
		SELECT id, name, email, phone, subject, body, status, handled_by_id, created_at, updated_at
		FROM messages
		WHERE id = $1
	`

	msg := &models.Message{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Phone,
		&msg.Subject,
		&msg.Body,
		&msg.Status,
		&msg.HandledByID,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *MessageRepository) List(ctx context.Context, status models.MessageStatus) ([]*models.Message, error) {
	query := `
		SELECT id, name, email, phone, subject, body, status, handled_by_id, created_at, updated_at
		FROM messages
		ORDER BY created_at DESC
	`
	args := []any{}
	if status != "" {
		query = `
			SELECT id, name, email, phone, subject, body, status, handled_by_id, created_at, updated_at
			FROM messages
			WHERE status = $1
			ORDER BY created_at DESC
		`
		args = append(args, status)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Subject,
			&msg.Body,
			&msg.Status,
			&msg.HandledByID,
			&msg.CreatedAt,
			&msg.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// MarkProcessed records who triaged the message.
func (r *MessageRepository) MarkProcessed(ctx context.Context, id, handledByID int) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE messages SET status = $1, handled_by_id = $2, updated_at = NOW() WHERE id = $3",
		models.MessageProcessed, handledByID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %d not found", id)
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %d not found", id)
	}
	return nil
}
