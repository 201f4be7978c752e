package contract

import (
	"context"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type DiaryEntryRepository interface {
	Create(ctx context.Context, entry *entity.DiaryEntry) error
	Update(ctx context.Context, entry *entity.DiaryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOwned(ctx context.Context, id, userId uuid.UUID) (*entity.DiaryEntry, error)
	// FindAllByUser orders by entry date, newest first.
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.DiaryEntry, error)
	// FindByEntryDate returns entries dated within [from, to].
	FindByEntryDate(ctx context.Context, userId uuid.UUID, from, to time.Time, newestFirst bool) ([]*entity.DiaryEntry, error)
}

type DiaryAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.DiaryAnalysis) error
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.DiaryAnalysis, error)
}
