package contract

import (
	"context"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationSignalRepository interface {
	Create(ctx context.Context, signal *entity.ConversationSignal) error
	// FindRecentByUser returns up to limit signals, newest first.
	FindRecentByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.ConversationSignal, error)
}
