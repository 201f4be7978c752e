package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/memory"
	"mindcare-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	err        error
	calls      int
	provider   string
	system     string
	historyLen int
	userText   string
}

func (f *fakeGenerator) Generate(ctx context.Context, providerID, systemPrompt string, history []llm.Message, userText string) (*llm.Result, string, error) {
	f.calls++
	f.provider = providerID
	f.system = systemPrompt
	f.historyLen = len(history)
	f.userText = userText
	if f.err != nil {
		return nil, "", f.err
	}
	name := providerID
	if name == "" {
		name = constant.ProviderGemini
	}
	return &llm.Result{Text: "echo: " + userText, Usage: llm.Usage{InputTokens: 10, OutputTokens: 3}}, name, nil
}

type fixture struct {
	store   *memory.Store
	session *entity.ChatSession
	gen     *fakeGenerator
	orch    *Orchestrator
	now     time.Time
}

func newFixture(t *testing.T, provider, conversationType string, priorMessages int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	uow := store.NewUnitOfWork(ctx)
	now := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

	session := &entity.ChatSession{
		Id:               uuid.New(),
		UserId:           uuid.New(),
		ConversationType: conversationType,
		Provider:         provider,
		CreatedAt:        now.Add(-24 * time.Hour),
		LastActivityAt:   now.Add(-time.Hour),
	}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))
	for i := 0; i < priorMessages; i++ {
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
			ChatSessionId: session.Id,
			Role:          constant.ChatMessageRoleUser,
			Chat:          fmt.Sprintf("old %d", i),
		}))
	}

	gen := &fakeGenerator{}
	orch := New(store, gen, logger.NewNop()).WithClock(func() time.Time { return now })
	return &fixture{store: store, session: session, gen: gen, orch: orch, now: now}
}

func (f *fixture) messages(t *testing.T) []*entity.ChatMessage {
	msgs, err := f.store.NewUnitOfWork(context.Background()).ChatMessageRepository().FindBySession(context.Background(), f.session.Id)
	require.NoError(t, err)
	return msgs
}

func TestHandleMessage_Success(t *testing.T) {
	f := newFixture(t, constant.ProviderAnthropic, constant.ConversationTypeCBT, 2)

	reply, err := f.orch.HandleMessage(context.Background(), f.session.UserId, f.session.Id, "I keep overthinking")
	require.NoError(t, err)

	assert.Equal(t, "echo: I keep overthinking", reply.Text)
	assert.Equal(t, constant.ProviderAnthropic, reply.Provider)
	assert.Equal(t, f.now, reply.Timestamp)
	assert.Equal(t, 10, reply.Usage.InputTokens)

	assert.Equal(t, constant.PersonaCBTPrompt, f.gen.system)
	assert.Equal(t, 2, f.gen.historyLen, "history excludes the new message")
	assert.Equal(t, "I keep overthinking", f.gen.userText)

	msgs := f.messages(t)
	require.Len(t, msgs, 4)
	assert.Equal(t, constant.ChatMessageRoleUser, msgs[2].Role)
	assert.Equal(t, "I keep overthinking", msgs[2].Chat)
	assert.Equal(t, constant.ChatMessageRoleModel, msgs[3].Role)
	assert.Equal(t, constant.ProviderAnthropic, msgs[3].Provider)
	assert.Equal(t, reply.MessageID, msgs[3].Id)

	session, err := f.store.NewUnitOfWork(context.Background()).ChatSessionRepository().FindOwned(context.Background(), f.session.Id, f.session.UserId)
	require.NoError(t, err)
	assert.Equal(t, f.now, session.LastActivityAt)
}

func TestHandleMessage_DefaultProvider(t *testing.T) {
	f := newFixture(t, "", "unknown-type", 0)

	reply, err := f.orch.HandleMessage(context.Background(), f.session.UserId, f.session.Id, "hi")
	require.NoError(t, err)
	assert.Equal(t, constant.ProviderGemini, reply.Provider)
	assert.Equal(t, constant.PersonaDefaultPrompt, f.gen.system)
}

func TestHandleMessage_SessionNotFound(t *testing.T) {
	f := newFixture(t, "", constant.ConversationTypeDefault, 0)

	_, err := f.orch.HandleMessage(context.Background(), uuid.New(), f.session.Id, "hi")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.orch.HandleMessage(context.Background(), f.session.UserId, uuid.New(), "hi")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, f.store.NewUnitOfWork(context.Background()).ChatSessionRepository().Delete(context.Background(), f.session.Id))
	_, err = f.orch.HandleMessage(context.Background(), f.session.UserId, f.session.Id, "hi")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	assert.Equal(t, 0, f.gen.calls)
	assert.Empty(t, f.messages(t))
}

func TestHandleMessage_GenerationFailureKeepsUserMessage(t *testing.T) {
	f := newFixture(t, constant.ProviderGemini, constant.ConversationTypeDefault, 1)
	f.gen.err = errors.New("connection reset")

	_, err := f.orch.HandleMessage(context.Background(), f.session.UserId, f.session.Id, "are you there?")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindUpstreamFailure))

	msgs := f.messages(t)
	require.Len(t, msgs, 2)
	assert.Equal(t, "are you there?", msgs[1].Chat)
	assert.Equal(t, constant.ChatMessageRoleUser, msgs[1].Role)

	session, err := f.store.NewUnitOfWork(context.Background()).ChatSessionRepository().FindOwned(context.Background(), f.session.Id, f.session.UserId)
	require.NoError(t, err)
	assert.Equal(t, f.session.LastActivityAt, session.LastActivityAt)
}

func TestHandleMessage_InvalidProviderPassesThrough(t *testing.T) {
	f := newFixture(t, "mystery", constant.ConversationTypeDefault, 0)
	f.gen.err = apperror.InvalidInput("unknown provider")

	_, err := f.orch.HandleMessage(context.Background(), f.session.UserId, f.session.Id, "hi")
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
}
