package contract

import (
	"context"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error)
	// FindBySession returns every message of the session, oldest first.
	FindBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	// FindLatestBySession returns up to limit messages, newest first.
	FindLatestBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}
