package domain

import (
	"context"
	"time"
)

// User represents a registered account. Users are immutable after
// registration and are uniquely keyed by username.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
