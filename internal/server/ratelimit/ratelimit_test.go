package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreRouteConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/resume/score", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		},
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(scoreRouteConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/resume/score", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 30, info.Limit)
	}
}

func TestLimiter_DeniesWhenBurstExhausted(t *testing.T) {
	l := NewLimiter(scoreRouteConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
		require.True(t, allowed)
	}

	allowed, info := l.Allow("10.0.0.1", "/resume/score", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	cfg := &Config{
		Enabled: true,
		Rules: []Rule{
			// 100 per second refills a drained bucket within ~10ms
			{Path: "/resume/score", Method: "POST", Limit: 100, Window: time.Second, Burst: 1},
		},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/resume/score", "POST")
	require.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, _ = l.Allow("10.0.0.1", "/resume/score", "POST")
	assert.True(t, allowed, "bucket should refill after the window elapses")
}

func TestLimiter_ClientsHaveSeparateBudgets(t *testing.T) {
	l := NewLimiter(scoreRouteConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/resume/score", "POST")
	assert.True(t, allowed, "a different client keeps its own bucket")
}

func TestLimiter_RoutesHaveSeparateBudgets(t *testing.T) {
	cfg := scoreRouteConfig()
	cfg.Rules = append(cfg.Rules,
		Rule{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 2})
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
	require.False(t, allowed)

	allowed, info := l.Allow("10.0.0.1", "/auth/login", "POST")
	assert.True(t, allowed, "exhausting the score budget must not touch login")
	assert.Equal(t, 20, info.Limit)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Allowlist(t *testing.T) {
	cfg := scoreRouteConfig()
	cfg.Allowlist = map[string]bool{"10.0.0.1": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/resume/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Denylist(t *testing.T) {
	cfg := scoreRouteConfig()
	cfg.Denylist = map[string]bool{"10.0.0.9": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.9", "/resume/score", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)

	allowed, _ = l.Allow("10.0.0.1", "/resume/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_DefaultBudgetForUnmatchedRoute(t *testing.T) {
	cfg := scoreRouteConfig()
	cfg.DefaultLimit = 2
	cfg.DefaultWindow = time.Hour
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/something-else", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = l.Allow("10.0.0.1", "/something-else", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/something-else", "GET")
	assert.False(t, allowed)
}

func TestLimiter_SweepDropsIdleClients(t *testing.T) {
	l := NewLimiter(scoreRouteConfig())
	defer l.Stop()

	l.Allow("10.0.0.1", "/resume/score", "POST")
	l.Allow("10.0.0.2", "/resume/score", "POST")

	l.mu.Lock()
	require.Len(t, l.clients, 2)
	for _, c := range l.clients {
		c.lastSeen = time.Now().Add(-2 * idleExpiry)
	}
	l.mu.Unlock()

	l.sweepIdle()

	l.mu.Lock()
	assert.Empty(t, l.clients)
	l.mu.Unlock()
}
