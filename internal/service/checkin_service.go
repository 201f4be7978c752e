package service

import (
	"context"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/dto"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICheckInService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckInRequest) (*dto.CheckInResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.CheckInResponse, error)
}

type checkInService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewCheckInService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICheckInService {
	return &checkInService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

func validateReading(name string, r dto.Reading) error {
	if !constant.IsRating(r.Description) {
		return apperror.InvalidInput("%s description %q is not one of awful, bad, okay, good, great", name, r.Description)
	}
	if r.Value < constant.CheckInValueMin || r.Value > constant.CheckInValueMax {
		return apperror.InvalidInput("%s value must be between %d and %d", name, constant.CheckInValueMin, constant.CheckInValueMax)
	}
	return nil
}

func (cs *checkInService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckInRequest) (*dto.CheckInResponse, error) {
	for _, r := range []struct {
		name    string
		reading dto.Reading
	}{
		{"physical", req.Physical},
		{"mood", req.Mood},
		{"sleep", req.Sleep},
		{"energy", req.Energy},
		{"appetite", req.Appetite},
	} {
		if err := validateReading(r.name, r.reading); err != nil {
			return nil, err
		}
	}

	now := cs.now()
	checkIn := &entity.CheckIn{
		Id:        uuid.New(),
		UserId:    userId,
		Physical:  entity.Reading(req.Physical),
		Mood:      entity.Reading(req.Mood),
		Sleep:     entity.Reading(req.Sleep),
		Energy:    entity.Reading(req.Energy),
		Appetite:  entity.Reading(req.Appetite),
		EntryDate: now,
		CreatedAt: now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CheckInRepository().Create(ctx, checkIn); err != nil {
		return nil, apperror.Persistence("create check-in", err)
	}

	cs.logger.Info("CHECKIN", "Check-in recorded", map[string]interface{}{
		"user_id":    userId.String(),
		"check_in":   checkIn.Id.String(),
		"mood_value": checkIn.Mood.Value,
	})
	return toCheckInResponse(checkIn), nil
}

func (cs *checkInService) List(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.CheckInResponse, error) {
	limit, offset := pageBounds(req)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	checkIns, err := uow.CheckInRepository().FindByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, apperror.Persistence("list check-ins", err)
	}

	res := make([]*dto.CheckInResponse, 0, len(checkIns))
	for _, c := range checkIns {
		res = append(res, toCheckInResponse(c))
	}
	return res, nil
}

func toCheckInResponse(c *entity.CheckIn) *dto.CheckInResponse {
	return &dto.CheckInResponse{
		Id:        c.Id,
		Physical:  dto.Reading(c.Physical),
		Mood:      dto.Reading(c.Mood),
		Sleep:     dto.Reading(c.Sleep),
		Energy:    dto.Reading(c.Energy),
		Appetite:  dto.Reading(c.Appetite),
		EntryDate: c.EntryDate,
		CreatedAt: c.CreatedAt,
	}
}
