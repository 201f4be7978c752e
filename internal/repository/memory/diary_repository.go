package memory

import (
	"context"
	"sort"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
)

// diary entries are stored with a deleted flag alongside the entity
type storedEntry struct {
	entry   entity.DiaryEntry
	deleted bool
}

type diaryEntryRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *diaryEntryRepository) Create(ctx context.Context, entry *entity.DiaryEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	entry.CreatedAt = stamp(entry.CreatedAt)
	entry.UpdatedAt = entry.CreatedAt
	r.tx.set(r.store.entries, key(entry.Id), storedEntry{entry: *entry})
	return nil
}

func (r *diaryEntryRepository) Update(ctx context.Context, entry *entity.DiaryEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	entry.UpdatedAt = time.Now()
	r.tx.set(r.store.entries, key(entry.Id), storedEntry{entry: *entry})
	return nil
}

func (r *diaryEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	stored, ok := get[storedEntry](r.store.entries, id)
	if !ok {
		return nil
	}
	stored.deleted = true
	r.tx.set(r.store.entries, key(id), stored)
	return nil
}

func (r *diaryEntryRepository) FindOwned(ctx context.Context, id, userId uuid.UUID) (*entity.DiaryEntry, error) {
	stored, ok := get[storedEntry](r.store.entries, id)
	if !ok || stored.deleted || stored.entry.UserId != userId {
		return nil, nil
	}
	e := stored.entry
	return &e, nil
}

func (r *diaryEntryRepository) byUser(userId uuid.UUID, keep func(*entity.DiaryEntry) bool, newestFirst bool) []*entity.DiaryEntry {
	var out []*entity.DiaryEntry
	for _, stored := range all[storedEntry](r.store.entries) {
		e := stored.entry
		if stored.deleted || e.UserId != userId || !keep(&e) {
			continue
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			if newestFirst {
				return a.EntryDate.After(b.EntryDate)
			}
			return a.EntryDate.Before(b.EntryDate)
		}
		if newestFirst {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

func (r *diaryEntryRepository) FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.DiaryEntry, error) {
	entries := r.byUser(userId, func(*entity.DiaryEntry) bool { return true }, true)
	return paginate(entries, limit, offset), nil
}

func (r *diaryEntryRepository) FindByEntryDate(ctx context.Context, userId uuid.UUID, from, to time.Time, newestFirst bool) ([]*entity.DiaryEntry, error) {
	return r.byUser(userId, func(e *entity.DiaryEntry) bool {
		return !e.EntryDate.Before(from) && !e.EntryDate.After(to)
	}, newestFirst), nil
}

type diaryAnalysisRepository struct {
	store *Store
	tx    *unitOfWork
}

func (r *diaryAnalysisRepository) Create(ctx context.Context, analysis *entity.DiaryAnalysis) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkWrite(); err != nil {
		return err
	}

	if analysis.Id == uuid.Nil {
		analysis.Id = uuid.New()
	}
	analysis.CreatedAt = stamp(analysis.CreatedAt)
	r.tx.set(r.store.analyses, key(analysis.Id), *analysis)
	return nil
}

func (r *diaryAnalysisRepository) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.DiaryAnalysis, error) {
	var latest *entity.DiaryAnalysis
	for _, a := range all[entity.DiaryAnalysis](r.store.analyses) {
		if a.UserId != userId {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			a := a
			latest = &a
		}
	}
	return latest, nil
}

// AnalysisCount is a test helper.
func (s *Store) AnalysisCount(userId uuid.UUID) int {
	n := 0
	for _, a := range all[entity.DiaryAnalysis](s.analyses) {
		if a.UserId == userId {
			n++
		}
	}
	return n
}
