package service

import (
	"context"
	"time"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/advice"
	"mindcare-be/pkg/dateutil"

	"github.com/google/uuid"
)

type IHealthService interface {
	// CreateAdvice scores metrics the client collected over a date range.
	CreateAdvice(ctx context.Context, userId uuid.UUID, req *dto.HealthAdviceRequest) (*advice.Advice, error)
	// GetAdvice answers for a range with no metrics attached.
	GetAdvice(ctx context.Context, userId uuid.UUID, r dto.DateRange) (*advice.Advice, error)
}

type healthService struct {
	logger logger.ILogger
}

func NewHealthService(log logger.ILogger) IHealthService {
	return &healthService{logger: log}
}

func validateRange(r dto.DateRange) error {
	if r.StartDate == "" || r.EndDate == "" {
		return apperror.InvalidInput("start_date and end_date are required")
	}
	start, err := time.Parse(dateutil.Layout, r.StartDate)
	if err != nil {
		return apperror.InvalidInput("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateutil.Layout, r.EndDate)
	if err != nil {
		return apperror.InvalidInput("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return apperror.InvalidInput("end_date is before start_date")
	}
	return nil
}

func (hs *healthService) CreateAdvice(ctx context.Context, userId uuid.UUID, req *dto.HealthAdviceRequest) (*advice.Advice, error) {
	if err := validateRange(req.Range); err != nil {
		return nil, err
	}
	if req.Metrics == nil {
		return nil, apperror.InvalidInput("metrics are required")
	}

	res := advice.Build(*req.Metrics)
	hs.logger.Debug("HEALTH", "Advice built", map[string]interface{}{
		"user_id": userId.String(),
		"summary": res.Summary,
		"items":   len(res.Items),
	})
	return res, nil
}

func (hs *healthService) GetAdvice(ctx context.Context, userId uuid.UUID, r dto.DateRange) (*advice.Advice, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}
	return advice.NoData(), nil
}
