package memory

import (
	"context"
	"sort"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

type chatSessionRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *chatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	session.CreatedAt = stamp(session.CreatedAt)
	if session.LastActivityAt.IsZero() {
		session.LastActivityAt = session.CreatedAt
	}
	r.tx.set(r.store.sessions, key(session.Id), *session)
	return nil
}

func (r *chatSessionRepository) FindOwned(ctx context.Context, id, userId uuid.UUID) (*entity.ChatSession, error) {
	s, ok := get[entity.ChatSession](r.store.sessions, id)
	if !ok || s.IsDeleted || s.UserId != userId {
		return nil, nil
	}
	return &s, nil
}

func (r *chatSessionRepository) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range all[entity.ChatSession](r.store.sessions) {
		if s.UserId == userId && !s.IsDeleted {
			s := s
			out = append(out, &s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivityAt.After(out[j].LastActivityAt)
	})
	return paginate(out, limit, offset), nil
}

func (r *chatSessionRepository) TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	s, ok := get[entity.ChatSession](r.store.sessions, id)
	if !ok {
		return nil
	}
	s.LastActivityAt = at
	r.tx.set(r.store.sessions, key(id), s)
	return nil
}

func (r *chatSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	s, ok := get[entity.ChatSession](r.store.sessions, id)
	if !ok {
		return nil
	}
	now := time.Now()
	s.DeletedAt = &now
	s.IsDeleted = true
	r.tx.set(r.store.sessions, key(id), s)
	return nil
}

type chatMessageRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *chatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	message.Seq = r.store.nextSeq()
	message.CreatedAt = stamp(message.CreatedAt)
	r.tx.set(r.store.messages, key(message.Id), *message)
	return nil
}

func (r *chatMessageRepository) bySession(sessionId uuid.UUID) []*entity.ChatMessage {
	var out []*entity.ChatMessage
	for _, m := range all[entity.ChatMessage](r.store.messages) {
		if m.ChatSessionId == sessionId {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (r *chatMessageRepository) CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	return int64(len(r.bySession(sessionId))), nil
}

func (r *chatMessageRepository) FindBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	return r.bySession(sessionId), nil
}

func (r *chatMessageRepository) FindLatestBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	msgs := r.bySession(sessionId)
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return paginate(msgs, limit, 0), nil
}
