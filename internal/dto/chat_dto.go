package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title            string `json:"title" validate:"max=200"`
	ConversationType string `json:"conversation_type" validate:"omitempty,oneof=default CBT MBT"`
	Provider         string `json:"provider" validate:"omitempty,oneof=gemini anthropic"`
}

type SessionResponse struct {
	Id               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	ConversationType string    `json:"conversation_type"`
	Provider         string    `json:"provider"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
}

type ListRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=8000"`
}

type UsageResponse struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type SendMessageResponse struct {
	ChatSessionId uuid.UUID     `json:"chat_session_id"`
	MessageId     uuid.UUID     `json:"message_id"`
	Reply         string        `json:"reply"`
	Provider      string        `json:"provider"`
	Timestamp     time.Time     `json:"timestamp"`
	Usage         UsageResponse `json:"usage"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
