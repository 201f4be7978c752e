package memory

import (
	"context"
	"testing"
	"time"

	"mindcare-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessageRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.NewUnitOfWork(ctx).ChatMessageRepository()
	sessionId := uuid.New()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(ctx, &entity.ChatMessage{ChatSessionId: sessionId, Chat: text}))
	}
	require.NoError(t, repo.Create(ctx, &entity.ChatMessage{ChatSessionId: uuid.New(), Chat: "other"}))

	count, err := repo.CountBySession(ctx, sessionId)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	asc, err := repo.FindBySession(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "one", asc[0].Chat)
	assert.Equal(t, "three", asc[2].Chat)
	assert.Less(t, asc[0].Seq, asc[1].Seq)

	latest, err := repo.FindLatestBySession(ctx, sessionId, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "three", latest[0].Chat)
	assert.Equal(t, "two", latest[1].Chat)
}

func TestUnitOfWork_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	uow := store.NewUnitOfWork(ctx)

	user := &entity.User{Email: "a@example.com"}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.DiaryAnalysisRepository().Create(ctx, &entity.DiaryAnalysis{UserId: user.Id}))
	ok, err := uow.UserRepository().AdvanceLastAnalysis(ctx, user.Id, nil, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, uow.Rollback())

	assert.Equal(t, 0, store.AnalysisCount(user.Id))
	got, err := uow.UserRepository().FindByID(ctx, user.Id)
	require.NoError(t, err)
	assert.Nil(t, got.LastAnalysisAt)
}

func TestUnitOfWork_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	sessionId := uuid.New()
	otherSession := uuid.New()

	kept := &entity.ChatMessage{ChatSessionId: sessionId, Chat: "before"}
	require.NoError(t, store.NewUnitOfWork(ctx).ChatMessageRepository().Create(ctx, kept))

	a := store.NewUnitOfWork(ctx)
	require.NoError(t, a.Begin(ctx))
	require.NoError(t, a.ChatMessageRepository().Create(ctx, &entity.ChatMessage{ChatSessionId: sessionId, Chat: "discarded"}))

	b := store.NewUnitOfWork(ctx)
	require.NoError(t, b.Begin(ctx))
	require.NoError(t, b.ChatMessageRepository().Create(ctx, &entity.ChatMessage{ChatSessionId: otherSession, Chat: "unrelated"}))
	require.NoError(t, b.Commit())

	require.NoError(t, a.Rollback())

	repo := store.NewUnitOfWork(ctx).ChatMessageRepository()
	msgs, err := repo.FindBySession(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "before", msgs[0].Chat)

	others, err := repo.FindBySession(ctx, otherSession)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "unrelated", others[0].Chat)
}

func TestUnitOfWork_RollbackRestoresUpdatedRow(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.NewUnitOfWork(ctx).DiaryEntryRepository()
	userId := uuid.New()
	entry := &entity.DiaryEntry{UserId: userId, Content: "first", EntryDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, entry))

	uow := store.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	changed := *entry
	changed.Content = "second"
	require.NoError(t, uow.DiaryEntryRepository().Update(ctx, &changed))
	changed.Content = "third"
	require.NoError(t, uow.DiaryEntryRepository().Update(ctx, &changed))
	require.NoError(t, uow.Rollback())

	found, err := repo.FindOwned(ctx, entry.Id, userId)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Content)
}

func TestUserRepository_AdvanceLastAnalysis(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().NewUnitOfWork(ctx).UserRepository()
	user := &entity.User{Email: "b@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ok, err := repo.AdvanceLastAnalysis(ctx, user.Id, nil, first)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second writer still expecting NULL loses
	ok, err = repo.AdvanceLastAnalysis(ctx, user.Id, nil, first.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AdvanceLastAnalysis(ctx, user.Id, &first, first.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDiaryEntryRepository_FindByEntryDate(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().NewUnitOfWork(ctx).DiaryEntryRepository()
	userId := uuid.New()
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

	for _, d := range []int{3, 1, 5, 9} {
		require.NoError(t, repo.Create(ctx, &entity.DiaryEntry{UserId: userId, EntryDate: day(d), Content: "x"}))
	}
	deleted := &entity.DiaryEntry{UserId: userId, EntryDate: day(4)}
	require.NoError(t, repo.Create(ctx, deleted))
	require.NoError(t, repo.Delete(ctx, deleted.Id))

	entries, err := repo.FindByEntryDate(ctx, userId, day(1), day(5), false)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, day(1), entries[0].EntryDate)
	assert.Equal(t, day(5), entries[2].EntryDate)

	entries, err = repo.FindByEntryDate(ctx, userId, day(1), day(9), true)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, day(9), entries[0].EntryDate)

	found, err := repo.FindOwned(ctx, deleted.Id, userId)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestChatSessionRepository_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().NewUnitOfWork(ctx).ChatSessionRepository()
	owner := uuid.New()
	session := &entity.ChatSession{UserId: owner, Title: "t"}
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.FindOwned(ctx, session.Id, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindOwned(ctx, session.Id, owner)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, session.CreatedAt, found.LastActivityAt)

	require.NoError(t, repo.Delete(ctx, session.Id))
	found, err = repo.FindOwned(ctx, session.Id, owner)
	require.NoError(t, err)
	assert.Nil(t, found)
}
