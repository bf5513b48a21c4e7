package names

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/platform/logger"
)

const cacheKeyPrefix = "display_name:"

// cachedResolver fronts another resolver with a redis TTL cache. Cache
// failures are logged and absorbed: the underlying resolver always wins.
type cachedResolver struct {
	inner Resolver
	rdb   *goredis.Client
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedResolver(inner Resolver, rdb *goredis.Client, ttl time.Duration, baseLog *logger.Logger) Resolver {
	if rdb == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &cachedResolver{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   baseLog.With("service", "CachedNameResolver"),
	}
}

func (c *cachedResolver) ResolveDisplayNames(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKeyPrefix + id.String()
	}

	var misses []uuid.UUID
	cached, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn("display name cache read failed", "error", err)
		misses = ids
	} else {
		for i, v := range cached {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			out[ids[i]] = s
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	resolved, err := c.inner.ResolveDisplayNames(ctx, tx, misses)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for id, name := range resolved {
		out[id] = name
		pipe.Set(ctx, cacheKeyPrefix+id.String(), name, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("display name cache write failed", "error", err)
	}
	return out, nil
}
