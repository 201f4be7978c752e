package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateDiaryEntryRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
	Mood    string `json:"mood" validate:"required,oneof=very_happy happy excited content calm neutral okay sad down anxious very_sad depressed"`
	// EntryDate is YYYY-MM-DD; empty means today.
	EntryDate string `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateDiaryEntryRequest struct {
	Id      uuid.UUID `json:"-"`
	Content *string   `json:"content" validate:"omitempty,max=10000"`
	Mood    *string   `json:"mood" validate:"omitempty,oneof=very_happy happy excited content calm neutral okay sad down anxious very_sad depressed"`
}

type DiaryEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	EntryDate string    `json:"entry_date"`
	EditCount int       `json:"edit_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EligibilityResponse struct {
	Eligible       bool       `json:"eligible"`
	DaysRemaining  int        `json:"days_remaining"`
	LastAnalysisAt *time.Time `json:"last_analysis_at"`
}

type AnalyzeDiaryRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=cbt mbt CBT MBT"`
	Provider string `json:"provider" validate:"omitempty,oneof=gemini anthropic"`
}

type DiaryAnalysisResponse struct {
	Id         uuid.UUID       `json:"id"`
	Mode       string          `json:"mode"`
	Provider   string          `json:"provider"`
	RiskLevel  string          `json:"risk_level"`
	EntryCount int             `json:"entry_count"`
	Result     json.RawMessage `json:"result"`
	CreatedAt  time.Time       `json:"created_at"`
}
