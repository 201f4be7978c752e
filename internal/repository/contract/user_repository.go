package contract

import (
	"context"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// AdvanceLastAnalysis sets last_analysis_at to at only if it still equals
	// expected (nil matches NULL). It reports whether the row was updated.
	AdvanceLastAnalysis(ctx context.Context, id uuid.UUID, expected *time.Time, at time.Time) (bool, error)
}
