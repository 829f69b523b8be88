// Package ratelimit provides per-client token bucket rate limiting. The AI
// endpoints get a much tighter budget than plain CRUD because each request
// holds an upstream model call open for up to two minutes.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Per-minute budgets by endpoint class.
const (
	DefaultLimit = 120
	AILimit      = 10
)

// aiPrefixes are the endpoint paths that fan out to AI backends.
var aiPrefixes = []string{
	"/api/v1/recommendations",
	"/api/v1/guide",
	"/api/v1/resume",
}

type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) take(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter tracks a token bucket per client and endpoint class.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a Limiter and starts its idle-bucket cleanup loop.
func NewLimiter() *Limiter {
	l := &Limiter{
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request from clientID to path may proceed, and the
// remaining budget for the limit headers.
func (l *Limiter) Allow(clientID, path string) (allowed bool, limit, remaining int) {
	limit = DefaultLimit
	class := "default"
	for _, prefix := range aiPrefixes {
		if strings.HasPrefix(path, prefix) {
			limit = AILimit
			class = "ai"
			break
		}
	}

	key := clientID + ":" + class
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			capacity:   float64(limit),
			refillRate: float64(limit) / 60,
			tokens:     float64(limit),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	l.lastSeen[key] = now

	allowed = b.take(now)
	return allowed, limit, int(b.tokens)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastSeen, key)
		}
	}
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
