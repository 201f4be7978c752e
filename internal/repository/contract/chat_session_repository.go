package contract

import (
	"context"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// FindOwned returns (nil, nil) when the session is absent, soft-deleted or owned by someone else.
	FindOwned(ctx context.Context, id, userId uuid.UUID) (*entity.ChatSession, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.ChatSession, error)
	TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
