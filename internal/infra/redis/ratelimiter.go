package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ekusasirakwe/portfolio-api/internal/ratelimit"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultLimitPerMin int64 = 5
	windowSeconds      int64 = 60
)

var allowScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
  return 0
end
return 1
`)

var _ ratelimit.RateLimiter = (*SubmissionRateLimiter)(nil)

// SubmissionRateLimiter is a fixed-window per-key limiter backed by
// Redis, used to throttle the anonymous contact form per client IP.
type SubmissionRateLimiter struct {
	client      *goredis.Client
	limitPerMin int64
	now         func() time.Time
	script      *goredis.Script
}

func NewSubmissionRateLimiter(client *goredis.Client, limitPerMin int) (*SubmissionRateLimiter, error) {
	return newSubmissionRateLimiter(client, int64(limitPerMin), time.Now)
}

func newSubmissionRateLimiter(
	client *goredis.Client,
	limitPerMin int64,
	nowFn func() time.Time,
) (*SubmissionRateLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if limitPerMin <= 0 {
		limitPerMin = defaultLimitPerMin
	}
	if nowFn == nil {
		nowFn = time.Now
	}

	return &SubmissionRateLimiter{
		client:      client,
		limitPerMin: limitPerMin,
		now:         nowFn,
		script:      allowScript,
	}, nil
}

// Allow reports whether the key may submit within the current window.
func (r *SubmissionRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r == nil || r.client == nil || r.script == nil {
		return false, fmt.Errorf("rate limiter is not initialized")
	}

	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false, fmt.Errorf("rate limit key is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	window := r.now().UTC().Unix() / windowSeconds
	redisKey := fmt.Sprintf("ratelimit:contact:%s:%d", normalizedKey, window)
	result, err := r.script.Run(ctx, r.client, []string{redisKey}, r.limitPerMin, windowSeconds).Int()
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}

	return result == 1, nil
}
