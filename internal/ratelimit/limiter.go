// Package ratelimit provides an injectable sliding-window request limiter.
// The default backing store is in-memory: counters do not survive process
// restarts and are not shared across instances. Swap the store for a
// distributed one without touching call sites.
package ratelimit

import (
	"context"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Limiter answers whether a keyed request is allowed within the window.
type Limiter interface {
	// Allow records one request for key and reports whether it is within
	// the configured limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// Config holds window parameters.
type Config struct {
	// Window is the sliding period.
	Window time.Duration
	// Limit is the maximum number of requests per key per window.
	Limit int64
}

// AccessRequestConfig is the policy for the public access-request endpoint:
// at most 3 submissions per source IP per 15 minutes.
func AccessRequestConfig() Config {
	return Config{Window: 15 * time.Minute, Limit: 3}
}

// WindowLimiter implements Limiter on top of a limiter.Store.
type WindowLimiter struct {
	instance *limiter.Limiter
}

// New creates a WindowLimiter over the given store.
func New(store limiter.Store, cfg Config) *WindowLimiter {
	rate := limiter.Rate{Period: cfg.Window, Limit: cfg.Limit}
	return &WindowLimiter{instance: limiter.New(store, rate)}
}

// NewInMemory creates a WindowLimiter with a process-local store.
func NewInMemory(cfg Config) *WindowLimiter {
	return New(memory.NewStore(), cfg)
}

// Allow implements Limiter.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := l.instance.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return !res.Reached, nil
}
