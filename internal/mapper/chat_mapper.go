package mapper

import (
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.ChatSession{
		Id:               s.Id,
		UserId:           s.UserId,
		Title:            s.Title,
		ConversationType: s.ConversationType,
		Provider:         s.Provider,
		CreatedAt:        s.CreatedAt,
		LastActivityAt:   s.LastActivityAt,
		DeletedAt:        deletedAt,
		IsDeleted:        s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.ChatSession{
		Id:               s.Id,
		UserId:           s.UserId,
		Title:            s.Title,
		ConversationType: s.ConversationType,
		Provider:         s.Provider,
		CreatedAt:        s.CreatedAt,
		LastActivityAt:   s.LastActivityAt,
		DeletedAt:        deletedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var provider string
	if msg.Provider != nil {
		provider = *msg.Provider
	}

	return &entity.ChatMessage{
		Id:               msg.Id,
		Seq:              msg.Seq,
		ChatSessionId:    msg.ChatSessionId,
		UserId:           msg.UserId,
		Role:             msg.Role,
		ConversationType: msg.ConversationType,
		Chat:             msg.Chat,
		Provider:         provider,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	// user turns carry no provider
	var provider *string
	if msg.Provider != "" {
		p := msg.Provider
		provider = &p
	}

	return &model.ChatMessage{
		Id:               msg.Id,
		Seq:              msg.Seq,
		ChatSessionId:    msg.ChatSessionId,
		UserId:           msg.UserId,
		Role:             msg.Role,
		ConversationType: msg.ConversationType,
		Chat:             msg.Chat,
		Provider:         provider,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
