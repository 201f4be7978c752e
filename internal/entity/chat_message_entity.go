package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only. Seq is assigned by the store and is the only
// ordering key within a session.
type ChatMessage struct {
	Id               uuid.UUID
	Seq              int64
	ChatSessionId    uuid.UUID
	UserId           uuid.UUID
	Role             string
	ConversationType string
	Chat             string
	Provider         string
	CreatedAt        time.Time
}
