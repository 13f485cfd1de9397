package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/msgdrop/internal/domain"
)

// MessageRepository implements domain.MessageRepository using SQLite.
type MessageRepository struct {
	db *sql.DB
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (content, type, created_at)
		 VALUES (?, ?, ?)`,
		msg.Content, msg.Type, now,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	msg.CreatedAt = now
	return nil
}

func (r *MessageRepository) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, type, created_at
		 FROM messages ORDER BY id DESC LIMIT ? OFFSET ?`,
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
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content, type, created_at
		 FROM messages WHERE id = ?`, id,
	).Scan(&msg.ID, &msg.Content, &msg.Type, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query message by id: %w", err)
	}
	return msg, nil
}
