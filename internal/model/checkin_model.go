package model

import (
	"time"

	"github.com/google/uuid"
)

type Reading struct {
	Description string `gorm:"type:varchar(8);not null"`
	Value       int    `gorm:"not null"`
}

type CheckIn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_check_in_user_entry"`
	Physical  Reading   `gorm:"embedded;embeddedPrefix:physical_"`
	Mood      Reading   `gorm:"embedded;embeddedPrefix:mood_"`
	Sleep     Reading   `gorm:"embedded;embeddedPrefix:sleep_"`
	Energy    Reading   `gorm:"embedded;embeddedPrefix:energy_"`
	Appetite  Reading   `gorm:"embedded;embeddedPrefix:appetite_"`
	EntryDate time.Time `gorm:"not null;index:idx_check_in_user_entry,sort:desc"`
	CreatedAt time.Time
}

func (CheckIn) TableName() string {
	return "check_ins"
}
