package mapper

import (
	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type SignalMapper struct{}

func NewSignalMapper() *SignalMapper {
	return &SignalMapper{}
}

func (m *SignalMapper) ToEntity(s *model.ConversationSignal) *entity.ConversationSignal {
	if s == nil {
		return nil
	}

	var embedding []float32
	if s.Embedding != nil {
		embedding = s.Embedding.Slice()
	}

	return &entity.ConversationSignal{
		Id:                 s.Id,
		UserId:             s.UserId,
		SessionId:          s.SessionId,
		Content:            s.Content,
		Topics:             []string(s.Topics),
		Sentiment:          s.Sentiment,
		ConcernsIdentified: []string(s.ConcernsIdentified),
		TherapyType:        s.TherapyType,
		Embedding:          embedding,
		CreatedAt:          s.CreatedAt,
	}
}

func (m *SignalMapper) ToModel(s *entity.ConversationSignal) *model.ConversationSignal {
	if s == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(s.Embedding) > 0 {
		v := pgvector.NewVector(s.Embedding)
		embedding = &v
	}

	return &model.ConversationSignal{
		Id:                 s.Id,
		UserId:             s.UserId,
		SessionId:          s.SessionId,
		Content:            s.Content,
		Topics:             datatypes.JSONSlice[string](s.Topics),
		Sentiment:          s.Sentiment,
		ConcernsIdentified: datatypes.JSONSlice[string](s.ConcernsIdentified),
		TherapyType:        s.TherapyType,
		Embedding:          embedding,
		CreatedAt:          s.CreatedAt,
	}
}
