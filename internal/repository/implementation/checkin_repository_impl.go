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

type CheckInRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CheckInMapper
}

func NewCheckInRepository(db *gorm.DB) contract.CheckInRepository {
	return &CheckInRepositoryImpl{
		db:     db,
		mapper: mapper.NewCheckInMapper(),
	}
}

func (r *CheckInRepositoryImpl) Create(ctx context.Context, checkIn *entity.CheckIn) error {
	m := r.mapper.ToModel(checkIn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*checkIn = *r.mapper.ToEntity(m)
	return nil
}

func (r *CheckInRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.CheckIn, error) {
	var models []*model.CheckIn
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "entry_date", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CheckIn, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
