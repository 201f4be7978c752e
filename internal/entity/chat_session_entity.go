package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Title            string
	ConversationType string
	Provider         string
	CreatedAt        time.Time
	LastActivityAt   time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
