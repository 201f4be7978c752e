package implementation

import (
	"context"
	"errors"
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/mapper"
	"mindcare-be/internal/model"
	"mindcare-be/internal/repository/contract"
	"mindcare-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiaryEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DiaryMapper
}

func NewDiaryEntryRepository(db *gorm.DB) contract.DiaryEntryRepository {
	return &DiaryEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewDiaryMapper(),
	}
}

func (r *DiaryEntryRepositoryImpl) Create(ctx context.Context, entry *entity.DiaryEntry) error {
	m := r.mapper.EntryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.EntryToEntity(m)
	return nil
}

func (r *DiaryEntryRepositoryImpl) Update(ctx context.Context, entry *entity.DiaryEntry) error {
	m := r.mapper.EntryToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.EntryToEntity(m)
	return nil
}

func (r *DiaryEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DiaryEntry{}, id).Error
}

func (r *DiaryEntryRepositoryImpl) FindOwned(ctx context.Context, id, userId uuid.UUID) (*entity.DiaryEntry, error) {
	var m model.DiaryEntry
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EntryToEntity(&m), nil
}

func (r *DiaryEntryRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.DiaryEntry, error) {
	return r.find(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "entry_date", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}

func (r *DiaryEntryRepositoryImpl) FindByEntryDate(ctx context.Context, userId uuid.UUID, from, to time.Time, newestFirst bool) ([]*entity.DiaryEntry, error) {
	return r.find(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.EntryDateBetween{From: from, To: to},
		specification.OrderBy{Field: "entry_date", Desc: newestFirst},
		specification.OrderBy{Field: "created_at", Desc: newestFirst},
	)
}

func (r *DiaryEntryRepositoryImpl) find(ctx context.Context, specs ...specification.Specification) ([]*entity.DiaryEntry, error) {
	var models []*model.DiaryEntry
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EntriesToEntities(models), nil
}

type DiaryAnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DiaryMapper
}

func NewDiaryAnalysisRepository(db *gorm.DB) contract.DiaryAnalysisRepository {
	return &DiaryAnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewDiaryMapper(),
	}
}

func (r *DiaryAnalysisRepositoryImpl) Create(ctx context.Context, analysis *entity.DiaryAnalysis) error {
	m := r.mapper.AnalysisToModel(analysis)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*analysis = *r.mapper.AnalysisToEntity(m)
	return nil
}

func (r *DiaryAnalysisRepositoryImpl) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.DiaryAnalysis, error) {
	var m model.DiaryAnalysis
	query := applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AnalysisToEntity(&m), nil
}
