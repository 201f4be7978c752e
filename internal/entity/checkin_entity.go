package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reading is one rated dimension of a daily check-in.
type Reading struct {
	Description string
	Value       int
}

type CheckIn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Physical  Reading
	Mood      Reading
	Sleep     Reading
	Energy    Reading
	Appetite  Reading
	EntryDate time.Time
	CreatedAt time.Time
}
