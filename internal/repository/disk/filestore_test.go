package disk_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/msgdrop/internal/domain"
	"github.com/msomdec/msgdrop/internal/repository/disk"
)

// Verify that *disk.FileStore implements domain.BlobStore at compile time.
var _ domain.BlobStore = (*disk.FileStore)(nil)

func newTestStore(t *testing.T) (*disk.FileStore, string) {
	t.Helper()
	root := t.TempDir()
	store, err := disk.New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store, root
}

func TestFileStore_SaveGetRoundTrip(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	payload := []byte("binary\x00payload")
	locator, err := store.Save(ctx, "report.pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !filepath.IsAbs(locator) {
		t.Fatalf("expected absolute locator, got %q", locator)
	}
	if filepath.Dir(locator) != root {
		t.Fatalf("expected locator under %q, got %q", root, locator)
	}

	got, err := store.Get(ctx, locator)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected payload %q, got %q", payload, got)
	}
}

func TestFileStore_Get_NotFound(t *testing.T) {
	store, root := newTestStore(t)

	_, err := store.Get(context.Background(), filepath.Join(root, "missing.bin"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_Save_RejectsTraversal(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../escape.txt", `..\escape.txt`} {
		_, err := store.Save(ctx, name, strings.NewReader("x"))
		if name == "../escape.txt" {
			// Base name is fine once the traversal prefix is stripped.
			if err != nil {
				t.Fatalf("Save(%q): %v", name, err)
			}
			continue
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Save(%q): expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestFileStore_Save_TraversalStaysInRoot(t *testing.T) {
	store, root := newTestStore(t)

	locator, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(locator) != root {
		t.Fatalf("expected locator under %q, got %q", root, locator)
	}
	if filepath.Base(locator) != "passwd" {
		t.Fatalf("expected base name passwd, got %q", locator)
	}
}

func TestFileStore_Save_LastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "dup.txt", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Save first: %v", err)
	}
	second, err := store.Save(ctx, "dup.txt", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Save second: %v", err)
	}

	if first != second {
		t.Fatalf("expected same locator for same filename, got %q and %q", first, second)
	}

	got, err := store.Get(ctx, second)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestFileStore_Remove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	locator, err := store.Save(ctx, "gone.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Remove(ctx, locator); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, locator); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an already-missing locator is not an error.
	if err := store.Remove(ctx, locator); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
}
