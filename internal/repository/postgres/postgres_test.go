package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/msomdec/msgdrop/internal/domain"
	"github.com/msomdec/msgdrop/internal/repository/postgres"
)

// Verify that *postgres.DB implements domain.Store at compile time.
var _ domain.Store = (*postgres.DB)(nil)

// newTestDB connects to the database named by TEST_DATABASE_URL. Tests are
// skipped when the variable is unset so the suite runs without a server.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, url)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), "TRUNCATE users, messages RESTART IDENTITY")
		db.Close()
	})
	return db
}

func TestUserRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{Username: "pg-alice", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}

	dup := &domain.User{Username: "pg-alice", PasswordHash: "other"}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	found, err := repo.GetByUsername(ctx, "pg-alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}

	if _, err := repo.GetByUsername(ctx, "pg-nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessageRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := db.Messages()
	ctx := context.Background()

	for i := range 12 {
		msg := &domain.Message{Content: fmt.Sprintf("msg-%d", i), Type: domain.TypeText}
		if err := repo.Insert(ctx, msg); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	messages, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(messages) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(messages))
	}
	if messages[0].Content != "msg-11" {
		t.Fatalf("expected newest message first, got %q", messages[0].Content)
	}

	found, err := repo.GetByID(ctx, messages[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Content != messages[0].Content {
		t.Fatalf("expected content %q, got %q", messages[0].Content, found.Content)
	}

	if _, err := repo.GetByID(ctx, 999999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
