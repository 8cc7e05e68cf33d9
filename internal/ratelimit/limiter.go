package ratelimit

import "context"

// RateLimiter caps how often a single key (a client IP) may submit
// the public contact form.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
