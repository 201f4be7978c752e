package service

import (
	"context"
	"strings"
	"time"

	"mindcare-be/internal/constant"
	"mindcare-be/internal/dto"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/pkg/sessionlock"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/chat/orchestrator"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New conversation"
	defaultPageSize     = 20
	maxPageSize         = 100
)

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.SessionResponse, error)
	SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ListMessages(ctx context.Context, userId, sessionId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	orchestrator     *orchestrator.Orchestrator
	guard            sessionlock.Guard
	publisherService IPublisherService
	logger           logger.ILogger
	requestTimeout   time.Duration
	now              func() time.Time
}

// NewChatService wires the chat use cases. publisherService may be nil.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	orch *orchestrator.Orchestrator,
	guard sessionlock.Guard,
	publisherService IPublisherService,
	log logger.ILogger,
	requestTimeout time.Duration,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		orchestrator:     orch,
		guard:            guard,
		publisherService: publisherService,
		logger:           log,
		requestTimeout:   requestTimeout,
		now:              time.Now,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	conversationType := req.ConversationType
	if conversationType == "" {
		conversationType = constant.ConversationTypeDefault
	}
	if !constant.IsConversationType(conversationType) {
		return nil, apperror.InvalidInput("unknown conversation type %q", req.ConversationType)
	}

	provider, err := llm.Normalize(req.Provider)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultSessionTitle
	}

	now := cs.now()
	session := &entity.ChatSession{
		Id:               uuid.New(),
		UserId:           userId,
		Title:            title,
		ConversationType: conversationType,
		Provider:         provider,
		CreatedAt:        now,
		LastActivityAt:   now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.Persistence("create chat session", err)
	}

	cs.logger.Info("CHAT", "Session created", map[string]interface{}{
		"session_id":        session.Id.String(),
		"user_id":           userId.String(),
		"conversation_type": conversationType,
		"provider":          provider,
	})

	return toSessionResponse(session), nil
}

func (cs *chatService) ListSessions(ctx context.Context, userId uuid.UUID, req *dto.ListRequest) ([]*dto.SessionResponse, error) {
	limit, offset := pageBounds(req)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAllByUser(ctx, userId, limit, offset)
	if err != nil {
		return nil, apperror.Persistence("list chat sessions", err)
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, toSessionResponse(s))
	}
	return res, nil
}

func (cs *chatService) SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, apperror.InvalidInput("message must not be empty")
	}

	release, ok, err := cs.guard.TryAcquire(ctx, sessionId.String())
	if err != nil {
		return nil, apperror.Persistence("acquire session lock", err)
	}
	if !ok {
		return nil, apperror.Conflict("session %s is already processing a message", sessionId)
	}
	defer release()

	if cs.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cs.requestTimeout)
		defer cancel()
	}

	reply, err := cs.orchestrator.HandleMessage(ctx, userId, sessionId, text)
	if err != nil {
		return nil, err
	}

	cs.publish(ctx, events.New(events.MessageExchanged, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": reply.SessionID.String(),
		"message_id": reply.MessageID.String(),
		"provider":   reply.Provider,
	}, reply.Timestamp))

	return &dto.SendMessageResponse{
		ChatSessionId: reply.SessionID,
		MessageId:     reply.MessageID,
		Reply:         reply.Text,
		Provider:      reply.Provider,
		Timestamp:     reply.Timestamp,
		Usage: dto.UsageResponse{
			InputTokens:  reply.Usage.InputTokens,
			OutputTokens: reply.Usage.OutputTokens,
			TotalTokens:  reply.Usage.TotalTokens,
		},
	}, nil
}

// ListMessages returns the transcript oldest first. A positive limit keeps
// only the latest limit messages.
func (cs *chatService) ListMessages(ctx context.Context, userId, sessionId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOwned(ctx, sessionId, userId)
	if err != nil {
		return nil, apperror.Persistence("load chat session", err)
	}
	if session == nil {
		return nil, apperror.NotFound("chat session %s not found", sessionId)
	}

	var messages []*entity.ChatMessage
	if limit > 0 {
		messages, err = uow.ChatMessageRepository().FindLatestBySession(ctx, sessionId, limit)
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	} else {
		messages, err = uow.ChatMessageRepository().FindBySession(ctx, sessionId)
	}
	if err != nil {
		return nil, apperror.Persistence("load chat messages", err)
	}

	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			Provider:  m.Provider,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOwned(ctx, sessionId, userId)
	if err != nil {
		return apperror.Persistence("load chat session", err)
	}
	if session == nil {
		return apperror.NotFound("chat session %s not found", sessionId)
	}

	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return apperror.Persistence("delete chat session", err)
	}
	return nil
}

func (cs *chatService) publish(ctx context.Context, event events.Event) {
	if cs.publisherService == nil {
		return
	}
	if err := cs.publisherService.Publish(ctx, event); err != nil {
		cs.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func pageBounds(req *dto.ListRequest) (int, int) {
	if req == nil {
		return defaultPageSize, 0
	}
	limit, offset := req.Limit, req.Offset
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func toSessionResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:               s.Id,
		Title:            s.Title,
		ConversationType: s.ConversationType,
		Provider:         s.Provider,
		CreatedAt:        s.CreatedAt,
		LastActivityAt:   s.LastActivityAt,
	}
}
