package domain

import (
	"context"
	"io"
)

// BlobStore stores binary message payloads outside the relational store,
// addressed by the locator returned from Save.
type BlobStore interface {
	// Save drains r into durable storage under the given filename and
	// returns the locator once the stream is fully written.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Get returns the full payload for a locator, or ErrNotFound if the
	// locator no longer resolves.
	Get(ctx context.Context, locator string) ([]byte, error)
	// Remove deletes the payload for a locator.
	Remove(ctx context.Context, locator string) error
}
