package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/msomdec/msgdrop/internal/domain"
)

const (
	defaultPageSize = 10
	// maxPageSize bounds a single listing; the store would otherwise
	// accept any limit the client sends.
	maxPageSize = 100

	fallbackContentType = "application/octet-stream"
	textContentType     = "text/plain; charset=utf-8"
)

// MessageService orchestrates message writes and type-dispatched reads.
type MessageService struct {
	messages domain.MessageRepository
	blobs    domain.BlobStore
}

// NewMessageService creates a new MessageService.
func NewMessageService(messages domain.MessageRepository, blobs domain.BlobStore) *MessageService {
	return &MessageService{messages: messages, blobs: blobs}
}

// PostText stores a plain text message.
func (s *MessageService) PostText(ctx context.Context, content string) (*domain.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	msg := &domain.Message{
		Content: content,
		Type:    domain.TypeText,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// PostFile drains the upload stream into the blob store and records the
// returned locator as a file message.
func (s *MessageService) PostFile(ctx context.Context, filename string, r io.Reader) (*domain.Message, error) {
	locator, err := s.blobs.Save(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("save blob: %w", err)
	}

	msg := &domain.Message{
		Content: locator,
		Type:    domain.TypeFile,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		// Best-effort cleanup of the stored blob.
		s.blobs.Remove(ctx, locator)
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// List returns a page of messages, newest first. Page numbers start at 1;
// limit defaults to 10 and is capped at 100.
func (s *MessageService) List(ctx context.Context, page, limit int) ([]domain.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	messages, err := s.messages.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// GetContent returns the wire representation of a message: the literal body
// as text/plain for text messages, or the blob bytes with a content type
// inferred from the locator's extension for file messages.
func (s *MessageService) GetContent(ctx context.Context, id int64) ([]byte, string, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	switch msg.Type {
	case domain.TypeText:
		return []byte(msg.Content), textContentType, nil
	case domain.TypeFile:
		data, err := s.blobs.Get(ctx, msg.Content)
		if err != nil {
			return nil, "", err
		}
		contentType := mime.TypeByExtension(filepath.Ext(msg.Content))
		if contentType == "" {
			contentType = fallbackContentType
		}
		return data, contentType, nil
	default:
		return nil, "", fmt.Errorf("unknown message type %q", msg.Type)
	}
}
