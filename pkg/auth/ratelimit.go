package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter checks whether a request should be allowed based on
// the identity's service tier.
type RateLimiter interface {
	Allow(ctx context.Context, identity *Identity) error
}

// InProcessLimiter is a fixed-window rate limiter that tracks
// request counts per subject in memory.
type InProcessLimiter struct {
	tiers      map[string]int
	defaultRPM int
	now        func() time.Time

	mu       sync.Mutex
	counters map[string]*counter
}

type counter struct {
	count    int
	windowAt time.Time
}

// NewInProcessLimiter creates a rate limiter with per-tier requests per
// minute. Tiers missing from the map use defaultRPM; zero means unlimited.
func NewInProcessLimiter(tiers map[string]int, defaultRPM int) *InProcessLimiter {
	return &InProcessLimiter{
		tiers:      tiers,
		defaultRPM: defaultRPM,
		now:        time.Now,
		counters:   make(map[string]*counter),
	}
}

// Allow checks if the request is within the rate limit.
func (l *InProcessLimiter) Allow(_ context.Context, identity *Identity) error {
	tier := tierOf(identity)

	rpm := l.defaultRPM
	if v, ok := l.tiers[tier]; ok {
		rpm = v
	}
	if rpm <= 0 {
		return nil
	}

	key := identity.Subject + ":" + tier

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowAt) >= time.Minute {
		l.counters[key] = &counter{count: 1, windowAt: now}
		return nil
	}

	c.count++
	if c.count > rpm {
		return ErrTooManyRequests
	}
	return nil
}
