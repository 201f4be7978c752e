package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindcare-be/internal/repository/contract"
	"mindcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps every table in its own go-cache instance with no expiration.
// It backs the unit of work when no database is configured and in service
// tests. Transactions keep an undo log of their own writes and are not
// isolated from each other.
type Store struct {
	mu  sync.Mutex
	seq int64

	users    *cache.Cache
	sessions *cache.Cache
	messages *cache.Cache
	entries  *cache.Cache
	analyses *cache.Cache
	signals  *cache.Cache
	checkIns *cache.Cache

	// FailWrites makes every write return an error. Tests use it to simulate
	// persistence failures.
	FailWrites bool
}

func NewStore() *Store {
	newTable := func() *cache.Cache { return cache.New(cache.NoExpiration, 0) }
	return &Store{
		users:    newTable(),
		sessions: newTable(),
		messages: newTable(),
		entries:  newTable(),
		analyses: newTable(),
		signals:  newTable(),
		checkIns: newTable(),
	}
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: s}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) checkWrite() error {
	if s.FailWrites {
		return fmt.Errorf("memory store: writes disabled")
	}
	return nil
}

func key(id uuid.UUID) string {
	return id.String()
}

func get[T any](c *cache.Cache, id uuid.UUID) (T, bool) {
	var zero T
	x, found := c.Get(key(id))
	if !found {
		return zero, false
	}
	return x.(T), true
}

func all[T any](c *cache.Cache) []T {
	items := c.Items()
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, it.Object.(T))
	}
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// undoRecord holds the value a key had before a write inside a transaction.
type undoRecord struct {
	table *cache.Cache
	key   string
	prior any
	found bool
}

type unitOfWork struct {
	store  *Store
	active bool
	undo   []undoRecord
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	u.undo = nil
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	u.undo = nil
	return nil
}

// Rollback restores only the keys this unit of work wrote, newest write
// first, so concurrent writers keep their rows.
func (u *unitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for i := len(u.undo) - 1; i >= 0; i-- {
		rec := u.undo[i]
		if rec.found {
			rec.table.Set(rec.key, rec.prior, cache.NoExpiration)
		} else {
			rec.table.Delete(rec.key)
		}
	}
	u.active = false
	u.undo = nil
	return nil
}

// set writes a row. Callers hold store.mu.
func (u *unitOfWork) set(table *cache.Cache, k string, v any) {
	if u.active {
		prior, found := table.Get(k)
		u.undo = append(u.undo, undoRecord{table: table, key: k, prior: prior, found: found})
	}
	table.Set(k, v, cache.NoExpiration)
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store, tx: u}
}

func (u *unitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &chatSessionRepository{store: u.store, tx: u}
}

func (u *unitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &chatMessageRepository{store: u.store, tx: u}
}

func (u *unitOfWork) DiaryEntryRepository() contract.DiaryEntryRepository {
	return &diaryEntryRepository{store: u.store, tx: u}
}

func (u *unitOfWork) DiaryAnalysisRepository() contract.DiaryAnalysisRepository {
	return &diaryAnalysisRepository{store: u.store, tx: u}
}

func (u *unitOfWork) ConversationSignalRepository() contract.ConversationSignalRepository {
	return &signalRepository{store: u.store, tx: u}
}

func (u *unitOfWork) CheckInRepository() contract.CheckInRepository {
	return &checkInRepository{store: u.store, tx: u}
}
