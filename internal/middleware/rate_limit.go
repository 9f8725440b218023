package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/i18n"
)

const defaultNumShards = 16

// visitor is one client's fixed window.
type visitor struct {
	tokens    int
	lastReset time.Time
}

type rateLimiterShard struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// RateLimiter is a fixed-window limiter sharded by client identifier.
type RateLimiter struct {
	shards []*rateLimiterShard
	rate   int
	window time.Duration
	now    func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter allows rate requests per window for each client.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{visitors: make(map[string]*visitor)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) shard(identifier string) *rateLimiterShard {
	return rl.shards[xxhash.Sum64String(identifier)%uint64(len(rl.shards))]
}

// allow consumes one token for identifier.
func (rl *RateLimiter) allow(identifier string) (allowed bool, remaining int, reset time.Duration) {
	sh := rl.shard(identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	now := rl.now()
	v, ok := sh.visitors[identifier]
	if !ok || now.Sub(v.lastReset) >= rl.window {
		v = &visitor{tokens: rl.rate, lastReset: now}
		sh.visitors[identifier] = v
	}
	reset = rl.window - now.Sub(v.lastReset)

	if v.tokens <= 0 {
		return false, 0, reset
	}
	v.tokens--
	return true, v.tokens, reset
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// ActorRateLimit limits requests per authenticated actor, falling back to the
// client IP. It must run after the auth middleware.
func (rl *RateLimiter) ActorRateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		if actor := GetActor(c); actor != "" {
			return "actor:" + actor
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) handler(identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset := rl.allow(identify(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, i18n.T(c, i18n.ErrKeyRateLimitExceeded)).
					WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanupExpired() {
	now := rl.now()
	for _, sh := range rl.shards {
		sh.mu.Lock()
		for id, v := range sh.visitors {
			if now.Sub(v.lastReset) > 2*rl.window {
				delete(sh.visitors, id)
			}
		}
		sh.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Visitors returns the number of tracked clients.
func (rl *RateLimiter) Visitors() int {
	total := 0
	for _, sh := range rl.shards {
		sh.mu.Lock()
		total += len(sh.visitors)
		sh.mu.Unlock()
	}
	return total
}
