package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DiaryEntry.EntryDate has date-only semantics; it is stored at midnight UTC.
type DiaryEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	Mood      string
	EntryDate time.Time
	EditCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DiaryAnalysis struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Mode       string
	Provider   string
	Result     json.RawMessage
	RiskLevel  string
	EntryCount int
	CreatedAt  time.Time
}
