// Package cache provides a redis-backed cache for generative analysis
// results.  Identical questionnaire submissions are a common pattern (users
// resubmitting the same form), and each generative run costs a paid model
// call, so replies are kept for a bounded TTL.  The deterministic path is
// never cached; it is cheaper than the round trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// keyPrefix namespaces report entries in a shared redis.
const keyPrefix = "profitleak:report:"

// DefaultTTL bounds how long a cached report can be served.
const DefaultTTL = 24 * time.Hour

// Config carries the redis connection settings.
type Config struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Addr     string `json:"addr" mapstructure:"addr"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
	TTL      string `json:"ttl" mapstructure:"ttl"`
}

// ParseTTL returns the configured entry lifetime, or DefaultTTL when unset or
// unparseable.
func (c *Config) ParseTTL() time.Duration {
	if c.TTL == "" {
		return DefaultTTL
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return DefaultTTL
	}
	return d
}

// ReportCache stores validated reports keyed by a digest of the submission.
type ReportCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewReportCache wires a cache over an existing redis client.
func NewReportCache(rdb *redis.Client, ttl time.Duration, logger logging.Logger) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ReportCache{rdb: rdb, ttl: ttl, logger: logger}
}

// NewRedisClient constructs the underlying client from config.
func NewRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Key derives the cache key for a submission: a SHA-256 digest of its
// canonical JSON encoding.  Two submissions with identical answers always
// collide, which is exactly the point.
func Key(a *assessment.Answers) (string, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "encoding answers for cache key")
	}
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached report for the submission, or (nil, nil) on a miss.
// Redis trouble is reported as an ErrCodeCacheError; callers treat it as a
// miss and continue.
func (c *ReportCache) Get(ctx context.Context, a *assessment.Answers) (*assessment.Report, error) {
	key, err := Key(a)
	if err != nil {
		return nil, err
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "reading cached report")
	}

	var report assessment.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		// A corrupt entry is dropped so the next run repopulates it.
		c.logger.Warn("dropping corrupt cache entry", logging.String("key", key), logging.Err(err))
		c.rdb.Del(ctx, key)
		return nil, nil
	}
	return &report, nil
}

// Set stores the report under the submission's digest for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, a *assessment.Answers, report *assessment.Report) error {
	key, err := Key(a)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encoding report for cache")
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "writing cached report")
	}
	return nil
}

// Ping verifies the redis connection, used by readiness probes.
func (c *ReportCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis ping failed")
	}
	return nil
}

//Personal.AI order the ending
