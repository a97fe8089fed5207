// Package middleware holds the gin middleware chain of the API server:
// request identity, structured request logging, CORS, metrics, and
// token-bucket rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
)

// RateLimitInfo is the current limiter state for one client key.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimitConfig tunes the middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained refill rate.
	RequestsPerSecond float64

	// BurstSize is the bucket capacity above the sustained rate.
	BurstSize int

	// KeyFunc extracts the limiter key; defaults to the client IP.
	KeyFunc func(c *gin.Context) string

	// SkipPaths bypass limiting entirely (probes, metrics).
	SkipPaths []string

	// CleanupInterval controls eviction of idle buckets.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the production defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		KeyFunc:           clientKey,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		CleanupInterval:   5 * time.Minute,
	}
}

// clientKey prefers proxy headers over the socket address.
func clientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return xri
	}
	return c.ClientIP()
}

// tokenBucket is the per-key limiter state.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// TokenBucketLimiter is an in-memory token bucket limiter with background
// eviction of idle keys.  Rate and burst can be adjusted at runtime via
// SetLimits.
type TokenBucketLimiter struct {
	mu        sync.RWMutex
	rate      float64
	burstSize int
	buckets   map[string]*tokenBucket

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewTokenBucketLimiter constructs a limiter and starts its cleanup loop when
// cleanupInterval is positive.
func NewTokenBucketLimiter(rate float64, burstSize int, cleanupInterval time.Duration) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		rate:        rate,
		burstSize:   burstSize,
		buckets:     make(map[string]*tokenBucket),
		stopCleanup: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go l.cleanupLoop(cleanupInterval)
	}
	return l
}

// SetLimits replaces the sustained rate and burst capacity, used for config
// hot reload.  Non-positive values are ignored; existing buckets keep their
// current tokens and refill against the new limits.
func (l *TokenBucketLimiter) SetLimits(rate float64, burstSize int) {
	if rate <= 0 || burstSize <= 0 {
		return
	}
	l.mu.Lock()
	l.rate = rate
	l.burstSize = burstSize
	l.mu.Unlock()
}

// Allow consumes one token for key when available.
func (l *TokenBucketLimiter) Allow(key string) (bool, RateLimitInfo) {
	l.mu.RLock()
	rate, burst := l.rate, l.burstSize
	l.mu.RUnlock()

	b := l.bucket(key, burst)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * rate
	if b.tokens > float64(burst) {
		b.tokens = float64(burst)
	}
	b.lastRefill = now

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	resetIn := time.Duration((float64(burst) - b.tokens) / rate * float64(time.Second))
	return allowed, RateLimitInfo{
		Limit:     burst,
		Remaining: int(b.tokens),
		ResetAt:   now.Add(resetIn),
	}
}

func (l *TokenBucketLimiter) bucket(key string, burst int) *tokenBucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok = l.buckets[key]; ok {
		return b
	}
	b = &tokenBucket{tokens: float64(burst), lastRefill: time.Now()}
	l.buckets[key] = b
	return b
}

// Stop terminates the cleanup loop.
func (l *TokenBucketLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

func (l *TokenBucketLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(interval)
		case <-l.stopCleanup:
			return
		}
	}
}

// evictIdle drops buckets untouched for longer than maxIdle.  A dropped key
// simply starts with a full bucket on its next request.
func (l *TokenBucketLimiter) evictIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastRefill.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// RateLimit returns the middleware.  Exceeded requests receive a 429 with the
// platform error body and standard X-RateLimit headers.
func RateLimit(limiter *TokenBucketLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientKey
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		allowed, info := limiter.Allow(cfg.KeyFunc(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(info.ResetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			appErr := errors.RateLimit("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    appErr.Code.String(),
				"message": appErr.Message,
			})
			return
		}
		c.Next()
	}
}

//Personal.AI order the ending
