package domain

import (
	"context"
	"time"
)

// MessageType discriminates how a message's Content field is interpreted.
type MessageType string

const (
	// TypeText marks Content as the literal message body.
	TypeText MessageType = "text"
	// TypeFile marks Content as a blob locator.
	TypeFile MessageType = "file"
)

// Message is a stored message. Messages are immutable once created; ID is
// assigned by the repository and is the sole ordering key for listing.
type Message struct {
	ID        int64
	Content   string
	Type      MessageType
	CreatedAt time.Time
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// Insert persists the message and sets its ID. The record is durably
	// visible to subsequent reads before Insert returns.
	Insert(ctx context.Context, msg *Message) error
	// List returns up to limit messages ordered by id descending,
	// skipping offset.
	List(ctx context.Context, limit, offset int) ([]Message, error)
	GetByID(ctx context.Context, id int64) (*Message, error)
}
