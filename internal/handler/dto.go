package handler

import (
	"time"

	"github.com/msomdec/msgdrop/internal/domain"
)

// MessageDTO is the JSON representation of a message record. Content holds
// the literal body for text messages and the blob locator for file messages.
type MessageDTO struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

func toMessageDTO(m domain.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Content:   m.Content,
		Type:      string(m.Type),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func toMessageDTOs(messages []domain.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = toMessageDTO(m)
	}
	return dtos
}
