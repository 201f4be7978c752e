package memory

import (
	"context"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	user.CreatedAt = stamp(user.CreatedAt)
	user.UpdatedAt = user.CreatedAt
	r.tx.set(r.store.users, key(user.Id), *user)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := get[entity.User](r.store.users, id)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) AdvanceLastAnalysis(ctx context.Context, id uuid.UUID, expected *time.Time, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return false, err
	}

	u, ok := get[entity.User](r.store.users, id)
	if !ok {
		return false, nil
	}

	switch {
	case expected == nil && u.LastAnalysisAt != nil:
		return false, nil
	case expected != nil && (u.LastAnalysisAt == nil || !u.LastAnalysisAt.Equal(*expected)):
		return false, nil
	}

	u.LastAnalysisAt = &at
	u.UpdatedAt = at
	r.tx.set(r.store.users, key(id), u)
	return true, nil
}
