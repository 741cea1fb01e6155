// internal/scoring/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"aso-keyword-service/internal/common/database"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/metrics"
)

// Kind separates the two score namespaces in Redis.
type Kind string

const (
	KindDifficulty Kind = "difficulty"
	KindTraffic    Kind = "traffic"
)

// ScoreCache stores computed score reports in Redis, keyed by keyword
// and snapshot date so a re-run within the same day reuses the same
// store snapshot. Cache failures are never fatal to an analysis; they
// degrade to a recompute.
type ScoreCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

// NewScoreCache wraps the shared Redis client with score-cache
// semantics.
func NewScoreCache(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *ScoreCache {
	return &ScoreCache{redis: rdb, ttl: ttl, logger: log}
}

func cacheKey(kind Kind, keyword string, snapshot time.Time) string {
	return fmt.Sprintf("aso:%s:%s:%s", kind, keyword, snapshot.Format("2006-01-02"))
}

// Get loads a cached report into dest. The boolean reports a usable
// hit; misses, stale JSON and Redis outages all come back false.
func (c *ScoreCache) Get(ctx context.Context, kind Kind, keyword string, snapshot time.Time, dest interface{}) bool {
	raw, err := c.redis.Get(ctx, cacheKey(kind, keyword, snapshot))
	if err == redis.Nil {
		metrics.CacheLookups.WithLabelValues(string(kind), "miss").Inc()
		return false
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(string(kind), "error").Inc()
		c.logger.WithError(err).Warn("score cache read failed", map[string]interface{}{
			"keyword": keyword,
			"kind":    string(kind),
		})
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.CacheLookups.WithLabelValues(string(kind), "error").Inc()
		c.logger.WithError(err).Warn("score cache entry corrupt, recomputing", nil)
		return false
	}
	metrics.CacheLookups.WithLabelValues(string(kind), "hit").Inc()
	return true
}

// Put stores a report under the keyword/snapshot key with the
// configured TTL. Write failures are logged and swallowed.
func (c *ScoreCache) Put(ctx context.Context, kind Kind, keyword string, snapshot time.Time, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).Warn("score cache marshal failed", nil)
		return
	}
	if err := c.redis.Set(ctx, cacheKey(kind, keyword, snapshot), payload, c.ttl); err != nil {
		c.logger.WithError(err).Warn("score cache write failed", map[string]interface{}{
			"keyword": keyword,
			"kind":    string(kind),
		})
	}
}
