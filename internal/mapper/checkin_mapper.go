package mapper

import (
	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"
)

type CheckInMapper struct{}

func NewCheckInMapper() *CheckInMapper {
	return &CheckInMapper{}
}

func (m *CheckInMapper) ToEntity(c *model.CheckIn) *entity.CheckIn {
	if c == nil {
		return nil
	}

	return &entity.CheckIn{
		Id:        c.Id,
		UserId:    c.UserId,
		Physical:  entity.Reading(c.Physical),
		Mood:      entity.Reading(c.Mood),
		Sleep:     entity.Reading(c.Sleep),
		Energy:    entity.Reading(c.Energy),
		Appetite:  entity.Reading(c.Appetite),
		EntryDate: c.EntryDate,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CheckInMapper) ToModel(c *entity.CheckIn) *model.CheckIn {
	if c == nil {
		return nil
	}

	return &model.CheckIn{
		Id:        c.Id,
		UserId:    c.UserId,
		Physical:  model.Reading(c.Physical),
		Mood:      model.Reading(c.Mood),
		Sleep:     model.Reading(c.Sleep),
		Energy:    model.Reading(c.Energy),
		Appetite:  model.Reading(c.Appetite),
		EntryDate: c.EntryDate,
		CreatedAt: c.CreatedAt,
	}
}
