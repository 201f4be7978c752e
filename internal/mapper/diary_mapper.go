package mapper

import (
	"encoding/json"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"

	"gorm.io/datatypes"
)

type DiaryMapper struct{}

func NewDiaryMapper() *DiaryMapper {
	return &DiaryMapper{}
}

func (m *DiaryMapper) EntryToEntity(e *model.DiaryEntry) *entity.DiaryEntry {
	if e == nil {
		return nil
	}
	return &entity.DiaryEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Content:   e.Content,
		Mood:      e.Mood,
		EntryDate: e.EntryDate,
		EditCount: e.EditCount,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *DiaryMapper) EntryToModel(e *entity.DiaryEntry) *model.DiaryEntry {
	if e == nil {
		return nil
	}
	return &model.DiaryEntry{
		Id:        e.Id,
		UserId:    e.UserId,
		Content:   e.Content,
		Mood:      e.Mood,
		EntryDate: e.EntryDate,
		EditCount: e.EditCount,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *DiaryMapper) EntriesToEntities(entries []*model.DiaryEntry) []*entity.DiaryEntry {
	out := make([]*entity.DiaryEntry, len(entries))
	for i, e := range entries {
		out[i] = m.EntryToEntity(e)
	}
	return out
}

func (m *DiaryMapper) AnalysisToEntity(a *model.DiaryAnalysis) *entity.DiaryAnalysis {
	if a == nil {
		return nil
	}
	return &entity.DiaryAnalysis{
		Id:         a.Id,
		UserId:     a.UserId,
		Mode:       a.Mode,
		Provider:   a.Provider,
		Result:     json.RawMessage(a.Result),
		RiskLevel:  a.RiskLevel,
		EntryCount: a.EntryCount,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *DiaryMapper) AnalysisToModel(a *entity.DiaryAnalysis) *model.DiaryAnalysis {
	if a == nil {
		return nil
	}
	return &model.DiaryAnalysis{
		Id:         a.Id,
		UserId:     a.UserId,
		Mode:       a.Mode,
		Provider:   a.Provider,
		Result:     datatypes.JSON(a.Result),
		RiskLevel:  a.RiskLevel,
		EntryCount: a.EntryCount,
		CreatedAt:  a.CreatedAt,
	}
}
