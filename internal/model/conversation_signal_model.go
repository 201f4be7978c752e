package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ConversationSignal struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID                   `gorm:"type:uuid;not null;index:idx_signal_user_created"`
	SessionId          string                      `gorm:"type:varchar(64)"`
	Content            string                      `gorm:"type:text"`
	Topics             datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Sentiment          string                      `gorm:"type:varchar(16)"`
	ConcernsIdentified datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	TherapyType        string                      `gorm:"type:varchar(16)"`
	Embedding          *pgvector.Vector            `gorm:"type:vector(768)"`
	CreatedAt          time.Time                   `gorm:"index:idx_signal_user_created"`
}

func (ConversationSignal) TableName() string {
	return "conversation_signals"
}
