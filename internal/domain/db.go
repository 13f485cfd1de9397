package domain

import "context"

// Store defines lifecycle and repository access for the backing database.
// Each implementation (SQLite, Postgres, etc.) owns its own migration
// strategy, ensuring the entire backend is swappable.
type Store interface {
	Users() UserRepository
	Messages() MessageRepository
	Migrate(ctx context.Context) error
	Close() error
}
