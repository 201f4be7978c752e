package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title            string         `gorm:"type:text;not null"`
	ConversationType string         `gorm:"type:varchar(16);not null;default:'default'"`
	Provider         string         `gorm:"type:varchar(32);not null;default:'gemini'"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	LastActivityAt   time.Time      `gorm:"not null;index"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type ChatMessage struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq              int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	ChatSessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Role             string    `gorm:"type:varchar(16);not null"`
	ConversationType string    `gorm:"type:varchar(16);not null"`
	Chat             string    `gorm:"type:text;not null"`
	Provider         *string   `gorm:"type:varchar(32)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
