// Package history decides how much of a chat session is replayed to the
// language model.
//
// A session that was active within ActiveWindow, or that is shorter than
// MaxFullHistory messages, is replayed in full. Anything else is trimmed to
// the last RecentWindow messages. The result is always oldest first.
package history

import (
	"context"
	"time"

	"mindcare-be/internal/entity"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	ActiveWindow   = 10 * time.Minute
	MaxFullHistory = 50
	RecentWindow   = 20
)

// MessageReader is the read side of the chat message store.
type MessageReader interface {
	CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error)
	FindBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	FindLatestBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}

type Selector struct {
	messages MessageReader
}

func NewSelector(messages MessageReader) *Selector {
	return &Selector{messages: messages}
}

// IsActive reports whether the session saw activity within ActiveWindow.
func IsActive(session *entity.ChatSession, now time.Time) bool {
	return now.Sub(session.LastActivityAt) <= ActiveWindow
}

func (s *Selector) Select(ctx context.Context, session *entity.ChatSession, now time.Time) ([]llm.Message, error) {
	count, err := s.messages.CountBySession(ctx, session.Id)
	if err != nil {
		return nil, apperror.Persistence("count session messages", err)
	}

	if IsActive(session, now) || count < MaxFullHistory {
		msgs, err := s.messages.FindBySession(ctx, session.Id)
		if err != nil {
			return nil, apperror.Persistence("load session history", err)
		}
		return toMessages(msgs), nil
	}

	latest, err := s.messages.FindLatestBySession(ctx, session.Id, RecentWindow)
	if err != nil {
		return nil, apperror.Persistence("load recent history", err)
	}
	for i, j := 0, len(latest)-1; i < j; i, j = i+1, j-1 {
		latest[i], latest[j] = latest[j], latest[i]
	}
	return toMessages(latest), nil
}

func toMessages(msgs []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, llm.Message{Role: m.Role, Content: m.Chat})
	}
	return out
}
