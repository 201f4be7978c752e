package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiaryEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_diary_user_date"`
	Content   string         `gorm:"type:text;not null"`
	Mood      string         `gorm:"type:varchar(32);not null"`
	EntryDate time.Time      `gorm:"type:date;not null;index:idx_diary_user_date"`
	EditCount int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}

type DiaryAnalysis struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Mode       string         `gorm:"type:varchar(8);not null"`
	Provider   string         `gorm:"type:varchar(32);not null"`
	Result     datatypes.JSON `gorm:"type:jsonb;not null"`
	RiskLevel  string         `gorm:"type:varchar(16);not null"`
	EntryCount int            `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (DiaryAnalysis) TableName() string {
	return "diary_analyses"
}
