package contract

import (
	"context"

	"dms-backend/internal/entity"

	"github.com/google/uuid"
)

// DocumentIndexRepository is the boundary to the external full-text
// index service. SearchByText compiles the raw query (Boolean operators
// included) into a structured query before executing it.
type DocumentIndexRepository interface {
	SearchByText(ctx context.Context, query string, pageable entity.Pageable) (entity.DocumentIndexPage, error)
	FindAll(ctx context.Context, pageable entity.Pageable) (entity.DocumentIndexPage, error)
	SuggestByFileNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error)
	SuggestByOriginalNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error)
	FindByTagsContaining(ctx context.Context, substring string) ([]*entity.DocumentIndex, error)
	Save(ctx context.Context, doc *entity.DocumentIndex) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
