// Package ratelimit enforces per-client request budgets with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// idleExpiry is how long a client's bucket survives without traffic
// before the sweeper drops it.
const idleExpiry = time.Hour

// bucket is a token bucket refilled continuously at rate tokens/second.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	cap    float64
	rate   float64
	last   time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		tokens: float64(capacity),
		cap:    float64(capacity),
		rate:   rate,
		last:   time.Now(),
	}
}

// take consumes one token when available. It reports whether the request
// may proceed, the whole tokens left, and when the bucket is full again.
func (b *bucket) take() (ok bool, remaining int, full time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = math.Min(b.cap, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	full = now
	if b.tokens < b.cap {
		full = now.Add(time.Duration((b.cap - b.tokens) / b.rate * float64(time.Second)))
	}
	return ok, remaining, full
}

// Info describes the budget applied to a request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// client pairs a bucket with its last access time for idle sweeping.
type client struct {
	b        *bucket
	lastSeen time.Time
}

// Limiter tracks one bucket per client and route.
type Limiter struct {
	cfg *Config

	mu      sync.Mutex
	clients map[string]*client

	sweep *time.Ticker
	done  chan struct{}
}

// NewLimiter creates a limiter. A nil config means the default budget
// with no route rules.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			SweepInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		cfg:     cfg,
		clients: make(map[string]*client),
	}

	if cfg.Enabled && cfg.SweepInterval > 0 {
		l.sweep = time.NewTicker(cfg.SweepInterval)
		l.done = make(chan struct{})
		go l.runSweeper()
	}

	return l
}

// Allow reports whether a request from clientID to the given route may
// proceed, and the budget that applied.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Allowlist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.cfg.Denylist[clientID] {
		return false, Info{}
	}

	rule := l.cfg.Match(path, method)
	if rule == nil {
		rule = &Rule{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}
	}
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	// One bucket per client and route, keyed like a mux pattern.
	b := l.bucketFor(clientID+" "+method+" "+path, rule)

	ok, remaining, reset := b.take()
	info := Info{
		Allowed:   ok,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

func (l *Limiter) bucketFor(key string, rule *Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		c = &client{b: newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.b
}

func (l *Limiter) runSweeper() {
	for {
		select {
		case <-l.sweep.C:
			l.sweepIdle()
		case <-l.done:
			return
		}
	}
}

// sweepIdle drops buckets that have seen no traffic within idleExpiry.
func (l *Limiter) sweepIdle() {
	cutoff := time.Now().Add(-idleExpiry)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Stop halts the idle sweeper.
func (l *Limiter) Stop() {
	if l.sweep != nil {
		l.sweep.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
