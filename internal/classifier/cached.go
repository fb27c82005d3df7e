package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"retention-workers/internal/common/logger"
	"retention-workers/internal/common/metrics"
	"retention-workers/internal/models"
)

const cacheKeyPrefix = "dropout:score:"

// Cached memoizes another Classifier in redis. The classifier is
// deterministic for a fixed artifact, so entries only expire by TTL.
// Any cache failure falls through to the wrapped classifier.
type Cached struct {
	next   Classifier
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCached(next Classifier, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cached {
	return &Cached{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "classifier-cache"}),
	}
}

func (c *Cached) Score(ctx context.Context, record models.Record) (float64, error) {
	key, err := CacheKey(record)
	if err != nil {
		return c.next.Score(ctx, record)
	}

	if p, ok := c.lookup(ctx, key); ok {
		return p, nil
	}

	p, err := c.next.Score(ctx, record)
	if err != nil {
		return 0, err
	}

	if err := c.redis.Set(ctx, key, strconv.FormatFloat(p, 'g', -1, 64), c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache score", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return p, nil
}

func (c *Cached) lookup(ctx context.Context, key string) (float64, bool) {
	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.ClassifierCacheLookups.WithLabelValues("miss").Inc()
		return 0, false
	case err != nil:
		metrics.ClassifierCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("score cache unavailable, calling classifier directly", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, false
	}

	p, err := strconv.ParseFloat(val, 64)
	if err != nil || checkRange(p) != nil {
		metrics.ClassifierCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key, "value": val})
		return 0, false
	}
	metrics.ClassifierCacheLookups.WithLabelValues("hit").Inc()
	return p, true
}

// CacheKey hashes the record's feature columns. encoding/json sorts map keys,
// so equal records always produce the same key.
func CacheKey(record models.Record) (string, error) {
	data, err := json.Marshal(record.Features())
	if err != nil {
		return "", fmt.Errorf("encode features: %w", err)
	}
	sum := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
