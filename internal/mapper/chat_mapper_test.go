package mapper

import (
	"testing"
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestChatSessionSoftDeleteMapping(t *testing.T) {
	m := NewChatMapper()
	deletedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	e := m.ChatSessionToEntity(&model.ChatSession{
		Id:        uuid.New(),
		DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true},
	})
	assert.True(t, e.IsDeleted)
	assert.Equal(t, deletedAt, *e.DeletedAt)

	active := m.ChatSessionToModel(&entity.ChatSession{Id: uuid.New()})
	assert.False(t, active.DeletedAt.Valid)

	flagged := m.ChatSessionToModel(&entity.ChatSession{Id: uuid.New(), IsDeleted: true})
	assert.True(t, flagged.DeletedAt.Valid)
}

func TestChatMessageProviderIsNullForUserTurns(t *testing.T) {
	m := NewChatMapper()

	userTurn := m.ChatMessageToModel(&entity.ChatMessage{Role: "user", Chat: "hi"})
	assert.Nil(t, userTurn.Provider)

	modelTurn := m.ChatMessageToModel(&entity.ChatMessage{Role: "model", Chat: "hello", Provider: "anthropic"})
	if assert.NotNil(t, modelTurn.Provider) {
		assert.Equal(t, "anthropic", *modelTurn.Provider)
	}
	assert.Equal(t, "anthropic", m.ChatMessageToEntity(modelTurn).Provider)
}

func TestSignalMapperEmbedding(t *testing.T) {
	m := NewSignalMapper()

	withoutVector := m.ToModel(&entity.ConversationSignal{Topics: []string{"sleep"}})
	assert.Nil(t, withoutVector.Embedding)
	assert.Equal(t, []string{"sleep"}, []string(withoutVector.Topics))

	withVector := m.ToModel(&entity.ConversationSignal{Embedding: []float32{0.1, 0.2}})
	assert.Equal(t, []float32{0.1, 0.2}, m.ToEntity(withVector).Embedding)
}
