package memory

import (
	"context"
	"sort"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type checkInRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *entity.CheckIn) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if checkIn.Id == uuid.Nil {
		checkIn.Id = uuid.New()
	}
	checkIn.CreatedAt = stamp(checkIn.CreatedAt)
	if checkIn.EntryDate.IsZero() {
		checkIn.EntryDate = checkIn.CreatedAt
	}
	r.tx.set(r.store.checkIns, key(checkIn.Id), *checkIn)
	return nil
}

func (r *checkInRepository) FindByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.CheckIn, error) {
	var out []*entity.CheckIn
	for _, c := range all[entity.CheckIn](r.store.checkIns) {
		if c.UserId == userId {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.After(out[j].EntryDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}
