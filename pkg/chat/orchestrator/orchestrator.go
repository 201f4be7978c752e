package orchestrator

import (
	"context"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/chat/history"
	"mindcare-be/pkg/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("mindcare-be/pkg/chat/orchestrator")

// Generator produces a reply for userText. *llm.Registry implements it.
type Generator interface {
	Generate(ctx context.Context, providerID, systemPrompt string, history []llm.Message, userText string) (*llm.Result, string, error)
}

type Reply struct {
	Text      string
	MessageID uuid.UUID
	SessionID uuid.UUID
	Timestamp time.Time
	Provider  string
	Usage     llm.Usage
}

type Orchestrator struct {
	uowFactory unitofwork.RepositoryFactory
	generator  Generator
	logger     logger.ILogger
	now        func() time.Time
}

func New(uowFactory unitofwork.RepositoryFactory, generator Generator, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		uowFactory: uowFactory,
		generator:  generator,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// HandleMessage runs one conversational turn. The user message is stored
// before the model is called and is kept when generation fails.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, sessionID uuid.UUID, text string) (*Reply, error) {
	ctx, span := tracer.Start(ctx, "orchestrator.HandleMessage")
	defer span.End()
	span.SetAttributes(attribute.String("chat.session_id", sessionID.String()))

	uow := o.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, apperror.Persistence("load chat session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("chat session %s not found", sessionID)
	}

	turns, err := history.NewSelector(uow.ChatMessageRepository()).Select(ctx, session, o.now())
	if err != nil {
		return nil, err
	}

	userMessage := &entity.ChatMessage{
		Id:               uuid.New(),
		ChatSessionId:    session.Id,
		UserId:           userID,
		Role:             constant.ChatMessageRoleUser,
		ConversationType: session.ConversationType,
		Chat:             text,
		CreatedAt:        o.now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, apperror.Persistence("store user message", err)
	}

	result, provider, err := o.generator.Generate(ctx, session.Provider, constant.PersonaPrompt(session.ConversationType), turns, text)
	if err != nil {
		span.RecordError(err)
		o.logger.Warn("CHAT", "Generation failed, user message kept without reply", map[string]interface{}{
			"session_id": session.Id.String(),
			"message_id": userMessage.Id.String(),
			"error":      err.Error(),
		})
		if apperror.KindOf(err) == "" {
			err = apperror.Upstream("generate reply", err)
		}
		return nil, err
	}

	now := o.now()
	modelMessage := &entity.ChatMessage{
		Id:               uuid.New(),
		ChatSessionId:    session.Id,
		UserId:           userID,
		Role:             constant.ChatMessageRoleModel,
		ConversationType: session.ConversationType,
		Chat:             result.Text,
		Provider:         provider,
		CreatedAt:        now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence("begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, modelMessage); err != nil {
		return nil, apperror.Persistence("store model message", err)
	}
	if err := uow.ChatSessionRepository().TouchActivity(ctx, session.Id, now); err != nil {
		return nil, apperror.Persistence("refresh session activity", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence("commit reply", err)
	}

	o.logger.Info("CHAT", "Message exchanged", map[string]interface{}{
		"session_id":    session.Id.String(),
		"provider":      provider,
		"history_len":   len(turns),
		"input_tokens":  result.Usage.InputTokens,
		"output_tokens": result.Usage.OutputTokens,
	})

	return &Reply{
		Text:      result.Text,
		MessageID: modelMessage.Id,
		SessionID: session.Id,
		Timestamp: now,
		Provider:  provider,
		Usage:     result.Usage,
	}, nil
}
