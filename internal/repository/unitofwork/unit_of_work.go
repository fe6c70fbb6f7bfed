package unitofwork

import (
	"context"

	"dms-backend/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	SmartFolderRepository() contract.SmartFolderRepository
	NotificationRepository() contract.NotificationRepository
}
