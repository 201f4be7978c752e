package unitofwork

import (
	"context"
	"fmt"

	"mindcare-be/internal/repository/contract"
	"mindcare-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // nil outside a transaction
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DiaryEntryRepository() contract.DiaryEntryRepository {
	return implementation.NewDiaryEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DiaryAnalysisRepository() contract.DiaryAnalysisRepository {
	return implementation.NewDiaryAnalysisRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationSignalRepository() contract.ConversationSignalRepository {
	return implementation.NewConversationSignalRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CheckInRepository() contract.CheckInRepository {
	return implementation.NewCheckInRepository(u.getDB())
}
