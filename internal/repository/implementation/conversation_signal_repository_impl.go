package implementation

import (
	"context"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/mapper"
	"mindcare-be/internal/model"
	"mindcare-be/internal/repository/contract"
	"mindcare-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationSignalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SignalMapper
}

func NewConversationSignalRepository(db *gorm.DB) contract.ConversationSignalRepository {
	return &ConversationSignalRepositoryImpl{
		db:     db,
		mapper: mapper.NewSignalMapper(),
	}
}

func (r *ConversationSignalRepositoryImpl) Create(ctx context.Context, signal *entity.ConversationSignal) error {
	m := r.mapper.ToModel(signal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*signal = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationSignalRepositoryImpl) FindRecentByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.ConversationSignal, error) {
	var models []*model.ConversationSignal
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConversationSignal, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
