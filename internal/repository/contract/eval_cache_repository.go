package contract

import (
	"context"
	"fmt"

	"dms-backend/internal/entity"

	"github.com/google/uuid"
)

// EvalCacheKey is the composite identity of one smart folder evaluation.
// Any change to the folder definition bumps FolderUpdatedAt, so edited
// folders can never serve a stale page.
type EvalCacheKey struct {
	FolderId         uuid.UUID
	FolderUpdatedAt  int64 // unix seconds of the folder's updatedAt stamp
	ViewerId         uuid.UUID
	ViewerDepartment string
	Page             int
	Size             int
}

func (k EvalCacheKey) String() string {
	return fmt.Sprintf("%s:%d:%s:%s:%d:%d",
		k.FolderId, k.FolderUpdatedAt, k.ViewerId, k.ViewerDepartment, k.Page, k.Size)
}

// EvalCacheRepository is the pluggable store behind evaluation result
// memoization. Implementations own TTL and size-bounded eviction.
type EvalCacheRepository interface {
	Get(ctx context.Context, key EvalCacheKey) (entity.DocumentIndexPage, bool)
	Put(ctx context.Context, key EvalCacheKey, page entity.DocumentIndexPage)
	Evict(ctx context.Context, key EvalCacheKey)
	Flush(ctx context.Context)
}
