package dto

import (
	"time"

	"mindcare-be/pkg/advice"

	"github.com/google/uuid"
)

type Reading struct {
	Description string `json:"description" validate:"required,oneof=awful bad okay good great"`
	Value       int    `json:"value" validate:"required,min=20,max=100"`
}

type CreateCheckInRequest struct {
	Physical Reading `json:"physical"`
	Mood     Reading `json:"mood"`
	Sleep    Reading `json:"sleep"`
	Energy   Reading `json:"energy"`
	Appetite Reading `json:"appetite"`
}

type CheckInResponse struct {
	Id        uuid.UUID `json:"id"`
	Physical  Reading   `json:"physical"`
	Mood      Reading   `json:"mood"`
	Sleep     Reading   `json:"sleep"`
	Energy    Reading   `json:"energy"`
	Appetite  Reading   `json:"appetite"`
	EntryDate time.Time `json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
}

type DateRange struct {
	StartDate string `json:"start_date" query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" query:"end_date" validate:"required,datetime=2006-01-02"`
}

type HealthAdviceRequest struct {
	Range   DateRange       `json:"range"`
	Metrics *advice.Metrics `json:"metrics" validate:"required"`
}
