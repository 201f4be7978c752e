package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSignal is a per-turn annotation written by the digest
// pipeline. The engine only reads it.
type ConversationSignal struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	SessionId          string
	Content            string
	Topics             []string
	Sentiment          string
	ConcernsIdentified []string
	TherapyType        string
	Embedding          []float32
	CreatedAt          time.Time
}
