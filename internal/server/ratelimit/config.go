package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule assigns a request budget to a route: Limit requests per Window,
// with Burst as the bucket capacity (defaults to Limit). A zero Limit
// means unlimited. A Path ending in "/" matches as a prefix, so
// "/reports/" covers "/reports/{id}/pdf".
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	SweepInterval time.Duration
	Allowlist     map[string]bool
	Denylist      map[string]bool
	Rules         []Rule
}

// Match returns the rule governing a route, preferring an exact path
// match over a prefix one, or nil when only the default budget applies.
// Health checks are never limited.
func (c *Config) Match(path, method string) *Rule {
	if path == "/health" {
		return &Rule{}
	}

	var prefix *Rule
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method != method {
			continue
		}
		if r.Path == path {
			return r
		}
		if prefix == nil && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			prefix = r
		}
	}
	return prefix
}

// LoadConfig reads limiter settings from the environment.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{}
	}

	return &Config{
		Enabled:       true,
		DefaultLimit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		SweepInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allowlist:     clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Denylist:      clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:         DefaultRules(),
	}
}

// DefaultRules returns the per-route budgets. Scoring parses the upload
// and hits the database, and a PDF download spins up a headless browser,
// so both get a tight hourly budget; auth routes are throttled against
// brute force.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/resume/score", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/reports/", Method: "GET", Limit: 60, Window: time.Hour, Burst: 5},

		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/forgot-password", Method: "POST", Limit: 5, Window: time.Hour, Burst: 2},
		{Path: "/auth/reset-password", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// clientSet parses a comma-separated list of client IPs.
func clientSet(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
