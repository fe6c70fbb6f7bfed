package contract

import (
	"context"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/specification"

	"github.com/google/uuid"
)

type SmartFolderRepository interface {
	Create(ctx context.Context, folder *entity.SmartFolder) error
	Update(ctx context.Context, folder *entity.SmartFolder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SmartFolder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SmartFolder, error)
}
