package unitofwork

import (
	"context"

	"mindcare-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	DiaryEntryRepository() contract.DiaryEntryRepository
	DiaryAnalysisRepository() contract.DiaryAnalysisRepository
	ConversationSignalRepository() contract.ConversationSignalRepository
	CheckInRepository() contract.CheckInRepository
}
