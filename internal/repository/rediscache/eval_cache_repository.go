package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dms:smartfolder:eval:"

// EvalCacheRepository stores evaluation pages in Redis so multiple
// instances share one cache. Values are JSON; Redis TTL bounds staleness.
type EvalCacheRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEvalCacheRepository(rdb *redis.Client, ttl time.Duration) contract.EvalCacheRepository {
	return &EvalCacheRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *EvalCacheRepository) Get(ctx context.Context, key contract.EvalCacheKey) (entity.DocumentIndexPage, bool) {
	data, err := r.rdb.Get(ctx, keyPrefix+key.String()).Bytes()
	if err != nil {
		return entity.DocumentIndexPage{}, false
	}
	var page entity.DocumentIndexPage
	if err := json.Unmarshal(data, &page); err != nil {
		return entity.DocumentIndexPage{}, false
	}
	return page, true
}

func (r *EvalCacheRepository) Put(ctx context.Context, key contract.EvalCacheKey, page entity.DocumentIndexPage) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	// Best effort: a failed write only costs a recomputation.
	r.rdb.Set(ctx, keyPrefix+key.String(), data, r.ttl)
}

func (r *EvalCacheRepository) Evict(ctx context.Context, key contract.EvalCacheKey) {
	r.rdb.Del(ctx, keyPrefix+key.String())
}

func (r *EvalCacheRepository) Flush(ctx context.Context) {
	iter := r.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		r.rdb.Del(ctx, iter.Val())
	}
}
