package contract

import (
	"context"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *entity.CheckIn) error
	// FindByUser returns check-ins newest entry first.
	FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.CheckIn, error)
}
