package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/msgdrop/internal/domain"
)

// MessageRepository implements domain.MessageRepository using Postgres.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (content, type, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		msg.Content, msg.Type, now,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	msg.CreatedAt = now
	return nil
}

func (r *MessageRepository) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, content, type, created_at
		 FROM messages ORDER BY id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.Type, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	msg := &domain.Message{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, content, type, created_at
		 FROM messages WHERE id = $1`, id,
	).Scan(&msg.ID, &msg.Content, &msg.Type, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query message by id: %w", err)
	}
	return msg, nil
}
