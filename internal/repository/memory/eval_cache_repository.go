package memory

import (
	"context"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type EvalCacheRepository struct {
	cache *cache.Cache
}

// NewEvalCacheRepository creates an in-process evaluation cache. Entries
// expire after ttl; the purge interval sweeps out keys orphaned by folder
// edits (the key embeds updatedAt, so stale entries are never read, only
// evicted).
func NewEvalCacheRepository(ttl, purgeInterval time.Duration) contract.EvalCacheRepository {
	return &EvalCacheRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

func (r *EvalCacheRepository) Get(ctx context.Context, key contract.EvalCacheKey) (entity.DocumentIndexPage, bool) {
	if x, found := r.cache.Get(key.String()); found {
		return x.(entity.DocumentIndexPage), true
	}
	return entity.DocumentIndexPage{}, false
}

func (r *EvalCacheRepository) Put(ctx context.Context, key contract.EvalCacheKey, page entity.DocumentIndexPage) {
	r.cache.Set(key.String(), page, cache.DefaultExpiration)
}

func (r *EvalCacheRepository) Evict(ctx context.Context, key contract.EvalCacheKey) {
	r.cache.Delete(key.String())
}

func (r *EvalCacheRepository) Flush(ctx context.Context) {
	r.cache.Flush()
}
