package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/model"
)

var errStaleCatalog = errors.New("catalog invalidated during read")

// CatalogCache keeps the public list of all courses in Redis.
// A nil Redis client disables it; every method is then a miss or a no-op.
// Cache failures are logged and never fail the request.
//
// Every invalidation bumps a generation counter. A catalog read from the store
// is only written back if the counter is unchanged since the cache miss.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{
		rdb: rdb,
		ttl: ttl,
		log: logger.Component(log, "catalog_cache"),
	}
}

// Enabled reports whether a Redis client backs the cache.
func (c *CatalogCache) Enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Get returns the cached catalog, the current generation and whether it was a hit.
// A negative generation means it could not be read, and Set will then skip the write.
func (c *CatalogCache) Get(ctx context.Context) ([]model.Course, int64, bool) {
	if !c.Enabled() {
		return nil, -1, false
	}

	vals, err := c.rdb.MGet(ctx, config.CacheKey.CourseCatalogKey(), config.CacheKey.CourseCatalogGenKey()).Result()
	if err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache read failed")
		return nil, -1, false
	}

	var gen int64
	if s, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(s, 10, 64); err != nil {
			c.log.Warn().Err(err).Msg("Catalog cache generation corrupt")
			return nil, -1, false
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}

	var courses []model.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache payload corrupt")
		return nil, gen, false
	}
	return courses, gen, true
}

// Set stores the catalog with the configured TTL, unless an invalidation
// happened after gen was read.
func (c *CatalogCache) Set(ctx context.Context, gen int64, courses []model.Course) {
	if !c.Enabled() || gen < 0 {
		return
	}

	raw, err := json.Marshal(courses)
	if err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache encode failed")
		return
	}

	genKey := config.CacheKey.CourseCatalogGenKey()
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleCatalog
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, config.CacheKey.CourseCatalogKey(), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleCatalog), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Int64("generation", gen).Msg("Catalog changed during read, skipping cache write")
	default:
		c.log.Warn().Err(err).Msg("Catalog cache write failed")
	}
}

// Invalidate drops the cached catalog after a course is created or changed.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, config.CacheKey.CourseCatalogGenKey())
		pipe.Del(ctx, config.CacheKey.CourseCatalogKey())
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
