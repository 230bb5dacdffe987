// Package ratelimit implements per-identity token-bucket admission control
// for the query endpoints.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultCapacity is the burst size of each bucket.
	DefaultCapacity = 60
	// DefaultRefillTokens tokens are added per DefaultRefillWindow.
	DefaultRefillTokens = 6
	// DefaultRefillWindow is the refill accounting window.
	DefaultRefillWindow = time.Minute
)

// timeNow is an indirection for tests to control the clock.
var timeNow = time.Now

// bucket tracks the admission state of one client identity.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// Limiter gates requests per client identity using a token bucket with
// greedy continuous refill: tokens accrue proportionally to elapsed time
// rather than resetting at window boundaries.
//
// Buckets are created lazily on first sight of an identity and live for the
// process lifetime. Allow never blocks; a denied request is for the boundary
// layer to translate into a rejection.
type Limiter struct {
	capacity     float64
	refillPerSec float64

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a Limiter with the given burst capacity and refill of
// refillTokens per window. Non-positive arguments fall back to the defaults.
func NewLimiter(capacity int, refillTokens int, window time.Duration) *Limiter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refillTokens <= 0 {
		refillTokens = DefaultRefillTokens
	}
	if window <= 0 {
		window = DefaultRefillWindow
	}
	return &Limiter{
		capacity:     float64(capacity),
		refillPerSec: float64(refillTokens) / window.Seconds(),
		buckets:      make(map[string]*bucket),
	}
}

// Allow consumes one token from the identity's bucket if at least one is
// available and reports whether the request is admitted. A denied request
// consumes nothing.
func (l *Limiter) Allow(identity string) bool {
	b := l.resolve(identity)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := timeNow()
	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens += elapsed.Seconds() * l.refillPerSec
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// resolve returns the identity's bucket, creating a full one on first use.
func (l *Limiter) resolve(identity string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, last: timeNow()}
		l.buckets[identity] = b
	}
	return b
}
