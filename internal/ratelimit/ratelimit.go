// Package ratelimit spaces out requests to the same host so a scan over
// many feeds from one publisher does not hammer it.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// HostLimiter enforces a minimum interval between requests per host.
// A zero interval disables limiting entirely.
type HostLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	next        map[string]time.Time
}

// NewHostLimiter creates a limiter with the given per-host interval.
func NewHostLimiter(minInterval time.Duration) *HostLimiter {
	return &HostLimiter{
		minInterval: minInterval,
		next:        make(map[string]time.Time),
	}
}

// reserve books the next slot for host and returns how long to wait for it.
func (l *HostLimiter) reserve(host string, now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	at, ok := l.next[host]
	if !ok || at.Before(now) {
		at = now
	}
	l.next[host] = at.Add(l.minInterval)
	return at.Sub(now)
}

// Wait blocks until the caller may contact host, or until ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil || l.minInterval <= 0 || host == "" {
		return nil
	}
	wait := l.reserve(host, time.Now())
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
