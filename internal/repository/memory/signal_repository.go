package memory

import (
	"context"
	"sort"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type signalRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *signalRepository) Create(ctx context.Context, signal *entity.ConversationSignal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if signal.Id == uuid.Nil {
		signal.Id = uuid.New()
	}
	signal.CreatedAt = stamp(signal.CreatedAt)
	r.tx.set(r.store.signals, key(signal.Id), *signal)
	return nil
}

func (r *signalRepository) FindRecentByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.ConversationSignal, error) {
	var out []*entity.ConversationSignal
	for _, s := range all[entity.ConversationSignal](r.store.signals) {
		if s.UserId == userId {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, 0), nil
}
